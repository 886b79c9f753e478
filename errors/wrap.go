package errors

import (
	"context"
	"errors"
	"fmt"
)

// Wrap wraps an error with additional context while preserving the error chain.
// If err is nil, Wrap returns nil.
// If err is already a pipeline Error, its classification is preserved.
// Otherwise the error is classified from context sentinels or defaults to internal.
func Wrap(err error, message string, opts ...Option) *Error {
	if err == nil {
		return nil
	}

	var pipeErr *Error
	if errors.As(err, &pipeErr) {
		wrapped := &Error{
			code:     pipeErr.code,
			category: pipeErr.category,
			message:  message,
			cause:    err,
			metadata: pipeErr.Metadata(),
			provider: pipeErr.provider,
			model:    pipeErr.model,
		}
		for _, opt := range opts {
			opt(wrapped)
		}
		return wrapped
	}

	// Context errors map to transport codes
	if errors.Is(err, context.DeadlineExceeded) {
		return New(ErrCodeTimeout, message, append(opts, WithCause(err))...)
	}
	if errors.Is(err, context.Canceled) {
		return New(ErrCodeCanceled, message, append(opts, WithCause(err))...)
	}

	return New(ErrCodeInternal, message, append(opts, WithCause(err))...)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific error code.
func WrapWithCode(err error, code ErrorCode, message string, opts ...Option) *Error {
	if err == nil {
		return nil
	}
	opts = append(opts, WithCause(err))
	return New(code, message, opts...)
}

// AsPipelineError extracts a pipeline Error from an error chain.
func AsPipelineError(err error) (*Error, bool) {
	var pipeErr *Error
	if errors.As(err, &pipeErr) {
		return pipeErr, true
	}
	return nil, false
}

// CodeOf returns the error code of err, or ErrCodeInternal when err carries
// no pipeline classification.
func CodeOf(err error) ErrorCode {
	if pipeErr, ok := AsPipelineError(err); ok {
		return pipeErr.Code()
	}
	return ErrCodeInternal
}

// CategoryOf returns the category of err, or CategoryInternal when err
// carries no pipeline classification.
func CategoryOf(err error) ErrorCategory {
	if pipeErr, ok := AsPipelineError(err); ok {
		return pipeErr.Category()
	}
	return CategoryInternal
}

// IsInput reports whether err is an input rejection.
func IsInput(err error) bool {
	return CategoryOf(err) == CategoryInput
}

// IsGateway reports whether err originated at the LLM gateway, on either
// side of the wire.
func IsGateway(err error) bool {
	cat := CategoryOf(err)
	return cat == CategoryProvider || cat == CategoryTransport
}
