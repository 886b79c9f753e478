package extract

import (
	"context"
	"testing"

	"github.com/askdoc/askdoc/errors"
)

// ============================================================================
// 1. Plain text extraction
// ============================================================================

func TestPlainTextExtract(t *testing.T) {
	e := NewPlainText()

	got, err := e.Extract(context.Background(), []byte("Page 42   hello\n\nworld"))
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if got != "hello world" {
		t.Errorf("Extract() = %q, want %q", got, "hello world")
	}
}

func TestPlainTextExtractRejects(t *testing.T) {
	e := NewPlainText()
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"invalid utf8", []byte{0xff, 0xfe, 0x41}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Extract(context.Background(), tt.data)
			if err == nil {
				t.Fatal("expected extraction error")
			}
			if errors.CodeOf(err) != errors.ErrCodeExtraction {
				t.Errorf("CodeOf() = %v, want %v", errors.CodeOf(err), errors.ErrCodeExtraction)
			}
			// Extraction messages are user visible by contract.
			pipeErr, _ := errors.AsPipelineError(err)
			if pipeErr.UserMessage() != pipeErr.Error() {
				t.Error("extraction message should pass through to the caller")
			}
		})
	}
}

func TestPlainTextSupportedFormats(t *testing.T) {
	got := NewPlainText().SupportedFormats()
	want := map[string]bool{"txt": true, "md": true}
	for _, f := range got {
		if !want[f] {
			t.Errorf("unexpected format %q", f)
		}
		delete(want, f)
	}
	if len(want) != 0 {
		t.Errorf("missing formats: %v", want)
	}
}

// ============================================================================
// 2. Format dispatch
// ============================================================================

func TestRun(t *testing.T) {
	extractors := []Extractor{NewPlainText()}

	got, err := Run(context.Background(), extractors, "txt", []byte("some   text"))
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got != "some text" {
		t.Errorf("Run() = %q, want %q", got, "some text")
	}

	_, err = Run(context.Background(), extractors, "pdf", []byte("%PDF-1.4"))
	if err == nil {
		t.Fatal("expected error for an unhandled format")
	}
	if errors.CodeOf(err) != errors.ErrCodeExtraction {
		t.Errorf("CodeOf() = %v, want %v", errors.CodeOf(err), errors.ErrCodeExtraction)
	}
}
