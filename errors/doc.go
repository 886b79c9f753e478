// Package errors provides the structured error taxonomy for the askdoc
// question-answering pipeline. Every failure that crosses a component
// boundary carries a code and a category so the calling layer can decide,
// without string matching, what to log and what to show the end caller.
//
// # Error Categories
//
// Errors are classified into five categories:
//
//   - Input: The caller supplied an invalid request; no gateway call was made.
//   - Provider: The completion endpoint answered with an application-level
//     failure (auth, quota, invalid request, unusable response body).
//   - Transport: The completion endpoint never usefully answered (network
//     failure, timeout, 5xx).
//   - Extraction: The document-text extraction collaborator failed.
//   - Internal: A bug or unexpected state inside the pipeline.
//
// Provider and transport failures are distinguished for logging and
// observability, but both collapse to the same generic message at the
// caller boundary; see (*Error).UserMessage.
//
// # Usage
//
// Create a new error:
//
//	err := errors.RateLimited("chunk summarization throttled")
//
// Wrap an existing error with context:
//
//	wrapped := errors.Wrap(err, "reducing context")
//
// Classify at the boundary:
//
//	if errors.IsGateway(err) {
//	    // generic 5xx-equivalent envelope
//	}
//
// # JSON Serialization
//
// Errors marshal to JSON for structured logging:
//
//	data, _ := json.Marshal(pipeErr)
package errors
