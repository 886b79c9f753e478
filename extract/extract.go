// Package extract defines the document-text extraction boundary. The
// pipeline consumes extracted text; how bytes become text is the
// collaborator's problem, and format-specific parsers (PDF and friends)
// plug in behind the Extractor interface.
package extract

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/askdoc/askdoc/errors"
	"github.com/askdoc/askdoc/normalize"
)

// Extractor turns a document's bytes into normalized text.
type Extractor interface {
	// Extract returns the document's text, already normalized.
	Extract(ctx context.Context, data []byte) (string, error)

	// SupportedFormats returns the formats this extractor handles.
	SupportedFormats() []string
}

// PlainText extracts UTF-8 text documents. It exists so the pipeline has a
// working extractor without any binary-format dependency; richer formats
// implement Extractor elsewhere.
type PlainText struct{}

// NewPlainText creates a plain-text extractor.
func NewPlainText() *PlainText {
	return &PlainText{}
}

// Extract validates the bytes as UTF-8 and normalizes the text. Failures
// carry the underlying message; that message is shown to callers.
func (e *PlainText) Extract(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.Extraction("document is empty")
	}
	if !utf8.Valid(data) {
		return "", errors.Extraction("document is not valid UTF-8 text")
	}
	return normalize.Clean(string(data)), nil
}

// SupportedFormats implements Extractor.
func (e *PlainText) SupportedFormats() []string {
	return []string{"txt", "md"}
}

// Run dispatches data to the first extractor supporting format, wrapping
// unexpected failures into the extraction taxonomy.
func Run(ctx context.Context, extractors []Extractor, format string, data []byte) (string, error) {
	for _, ex := range extractors {
		for _, f := range ex.SupportedFormats() {
			if f == format {
				text, err := ex.Extract(ctx, data)
				if err != nil {
					if _, ok := errors.AsPipelineError(err); ok {
						return "", err
					}
					return "", errors.Extraction(fmt.Sprintf("extracting %s document", format),
						errors.WithCause(err))
				}
				return text, nil
			}
		}
	}
	return "", errors.Extraction(fmt.Sprintf("no extractor for format %q", format))
}
