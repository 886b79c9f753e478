// Package chunk splits long text into bounded fragments for independent
// summarization.
package chunk

// DefaultSize is the default chunk budget in characters.
const DefaultSize = 3000

// Split divides text into consecutive, non-overlapping fragments of at most
// size characters each, in document order. No characters are dropped or
// duplicated: concatenating the result reproduces text exactly. The final
// fragment may be shorter. Sizes are measured in runes so multi-byte
// characters are never cut mid-sequence. Empty input yields nil; size <= 0
// falls back to DefaultSize.
func Split(text string, size int) []string {
	if text == "" {
		return nil
	}
	if size <= 0 {
		size = DefaultSize
	}

	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// Count returns how many fragments Split would produce without allocating
// them.
func Count(text string, size int) int {
	if text == "" {
		return 0
	}
	if size <= 0 {
		size = DefaultSize
	}
	n := 0
	for range text {
		n++
	}
	return (n + size - 1) / size
}
