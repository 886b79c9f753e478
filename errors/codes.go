package errors

// ErrorCategory classifies errors by where in the pipeline they originate.
type ErrorCategory string

// Error categories define how the calling layer should present a failure.
const (
	// CategoryInput indicates the caller supplied an invalid request.
	// Surfaced as a 4xx-equivalent rejection; no gateway call was made.
	CategoryInput ErrorCategory = "input"

	// CategoryProvider indicates the completion endpoint rejected or failed
	// the request at the application level: auth, quota, invalid request,
	// malformed response body.
	CategoryProvider ErrorCategory = "provider"

	// CategoryTransport indicates the completion endpoint could not be
	// reached or did not answer: connection failures, timeouts, 5xx.
	CategoryTransport ErrorCategory = "transport"

	// CategoryExtraction indicates the document-text extraction collaborator
	// failed (corrupt or unreadable input).
	CategoryExtraction ErrorCategory = "extraction"

	// CategoryInternal indicates a bug or unexpected state in the pipeline.
	CategoryInternal ErrorCategory = "internal"
)

// String returns the string representation of the category.
func (c ErrorCategory) String() string {
	return string(c)
}

// UserVisible reports whether the underlying message may be shown to the
// end caller. Input errors carry short actionable messages; extraction
// errors include the collaborator's message (accepted looseness). Gateway
// and internal errors collapse to a generic failure.
func (c ErrorCategory) UserVisible() bool {
	switch c {
	case CategoryInput, CategoryExtraction:
		return true
	default:
		return false
	}
}

// ErrorCode identifies specific failure types within categories.
type ErrorCode string

// Error codes for the question-answering pipeline.
const (
	// Input errors
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT" // Required field missing or malformed

	// Provider errors (the endpoint answered, unhappily)
	ErrCodeUnauthorized      ErrorCode = "UNAUTHORIZED"       // API key rejected
	ErrCodeRateLimit         ErrorCode = "RATE_LIMITED"       // Rate limit exceeded
	ErrCodeQuotaExceeded     ErrorCode = "QUOTA_EXCEEDED"     // Billing/quota exhausted
	ErrCodeBadRequest        ErrorCode = "BAD_REQUEST"        // Provider rejected the request shape
	ErrCodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE" // Response lacked a usable completion

	// Transport errors (the endpoint never usefully answered)
	ErrCodeTimeout     ErrorCode = "TIMEOUT"     // Call exceeded the transport deadline
	ErrCodeUnavailable ErrorCode = "UNAVAILABLE" // Endpoint unreachable or 5xx
	ErrCodeCanceled    ErrorCode = "CANCELED"    // Request context canceled

	// Extraction errors
	ErrCodeExtraction ErrorCode = "EXTRACTION_FAILED" // Document text extraction failed

	// Internal errors
	ErrCodeInternal ErrorCode = "INTERNAL" // Unexpected internal error
)

// String returns the string representation of the error code.
func (c ErrorCode) String() string {
	return string(c)
}

// DefaultCategory returns the default category for an error code.
func (c ErrorCode) DefaultCategory() ErrorCategory {
	switch c {
	case ErrCodeInvalidInput:
		return CategoryInput
	case ErrCodeUnauthorized, ErrCodeRateLimit, ErrCodeQuotaExceeded,
		ErrCodeBadRequest, ErrCodeMalformedResponse:
		return CategoryProvider
	case ErrCodeTimeout, ErrCodeUnavailable, ErrCodeCanceled:
		return CategoryTransport
	case ErrCodeExtraction:
		return CategoryExtraction
	default:
		return CategoryInternal
	}
}

// codeDescriptions provides human-readable descriptions for error codes.
var codeDescriptions = map[ErrorCode]string{
	ErrCodeInvalidInput:      "invalid input provided",
	ErrCodeUnauthorized:      "authentication with the completion endpoint failed",
	ErrCodeRateLimit:         "completion endpoint rate limit exceeded",
	ErrCodeQuotaExceeded:     "completion endpoint quota exhausted",
	ErrCodeBadRequest:        "completion endpoint rejected the request",
	ErrCodeMalformedResponse: "completion endpoint returned no usable completion",
	ErrCodeTimeout:           "completion call timed out",
	ErrCodeUnavailable:       "completion endpoint unavailable",
	ErrCodeCanceled:          "request canceled",
	ErrCodeExtraction:        "document text extraction failed",
	ErrCodeInternal:          "internal error",
}

// Description returns a human-readable description for the error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}
