package retrieval

import (
	"context"
	"strings"
	"testing"
)

const sampleDoc = `The mitochondria is the powerhouse of the cell, generating most of
the chemical energy needed to power biochemical reactions. Photosynthesis in
plants converts light energy into chemical energy stored in glucose. The
citric acid cycle releases stored energy through oxidation of acetyl-CoA.
Ribosomes are the sites of protein synthesis in all living cells.`

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewIndex()
	if err != nil {
		t.Fatalf("NewIndex() error: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

// ============================================================================
// 1. Indexing
// ============================================================================

func TestAddDocument(t *testing.T) {
	idx := newTestIndex(t)

	passages, err := idx.AddDocument(context.Background(), sampleDoc, 120)
	if err != nil {
		t.Fatalf("AddDocument() error: %v", err)
	}
	if len(passages) < 2 {
		t.Fatalf("got %d passages, want several", len(passages))
	}

	seen := map[string]bool{}
	for i, p := range passages {
		if p.ID == "" {
			t.Errorf("passage %d has no ID", i)
		}
		if seen[p.ID] {
			t.Errorf("duplicate passage ID %q", p.ID)
		}
		seen[p.ID] = true
		if p.Position != i {
			t.Errorf("passage %d Position = %d", i, p.Position)
		}
	}

	// Passages carry the normalized text losslessly.
	joined := ""
	for _, p := range passages {
		joined += p.Text
	}
	if !strings.Contains(joined, "powerhouse of the cell") {
		t.Error("indexed passages lost document content")
	}
	if strings.Contains(joined, "\n") {
		t.Error("passages should hold normalized text")
	}
}

func TestAddDocumentEmpty(t *testing.T) {
	idx := newTestIndex(t)
	passages, err := idx.AddDocument(context.Background(), "", 100)
	if err != nil {
		t.Fatalf("AddDocument() error: %v", err)
	}
	if len(passages) != 0 {
		t.Errorf("got %d passages for empty document, want 0", len(passages))
	}
}

// ============================================================================
// 2. Search
// ============================================================================

func TestSearch(t *testing.T) {
	idx := newTestIndex(t)
	if _, err := idx.AddDocument(context.Background(), sampleDoc, 120); err != nil {
		t.Fatalf("AddDocument() error: %v", err)
	}

	hits, err := idx.Search(context.Background(), "where does protein synthesis happen", 3)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("Search() returned no passages")
	}
	if !strings.Contains(hits[0].Text, "protein synthesis") {
		t.Errorf("best passage = %q, want the ribosome passage", hits[0].Text)
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].Score > hits[i-1].Score {
			t.Error("passages not ordered best first")
		}
	}
}

func TestSearchNoMatch(t *testing.T) {
	idx := newTestIndex(t)
	if _, err := idx.AddDocument(context.Background(), sampleDoc, 120); err != nil {
		t.Fatalf("AddDocument() error: %v", err)
	}

	hits, err := idx.Search(context.Background(), "quarterly revenue forecast spreadsheet", 3)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("got %d passages for an unrelated query, want 0", len(hits))
	}
}

func TestBestPassage(t *testing.T) {
	idx := newTestIndex(t)
	if _, err := idx.AddDocument(context.Background(), sampleDoc, 120); err != nil {
		t.Fatalf("AddDocument() error: %v", err)
	}

	best, err := idx.BestPassage(context.Background(), "photosynthesis light energy")
	if err != nil {
		t.Fatalf("BestPassage() error: %v", err)
	}
	if !strings.Contains(best, "Photosynthesis") {
		t.Errorf("BestPassage() = %q, want the photosynthesis passage", best)
	}

	best, err = idx.BestPassage(context.Background(), "unrelated financial jargon")
	if err != nil {
		t.Fatalf("BestPassage() error: %v", err)
	}
	if best != "" {
		t.Errorf("BestPassage() = %q, want empty for no match", best)
	}
}
