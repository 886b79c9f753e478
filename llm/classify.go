package llm

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/askdoc/askdoc/errors"
)

// Classify maps an SDK error into the pipeline taxonomy. Provider-side
// failures (auth, quota, rate limit, rejected request) and transport-side
// failures (timeout, unreachable, 5xx) get distinct codes for logging;
// both surface identically to the end caller.
//
// Classification is by message inspection since the SDKs do not share an
// error model. Unrecognized errors default to the transport category.
func Classify(err error, provider, model string) *errors.Error {
	if err == nil {
		return nil
	}

	opts := []errors.Option{
		errors.WithCause(err),
		errors.WithProvider(provider),
		errors.WithModel(model),
	}

	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.New(errors.ErrCodeTimeout, provider+" completion call timed out", opts...)
	}
	if stderrors.Is(err, context.Canceled) {
		return errors.New(errors.ErrCodeCanceled, provider+" completion call canceled", opts...)
	}

	msg := strings.ToLower(err.Error())

	switch {
	case isAuthError(msg):
		return errors.New(errors.ErrCodeUnauthorized, provider+" rejected the API key", opts...)
	case isQuotaError(msg):
		return errors.New(errors.ErrCodeQuotaExceeded, provider+" quota or billing failure", opts...)
	case isRateLimitError(msg):
		return errors.New(errors.ErrCodeRateLimit, provider+" rate limited the request", opts...)
	case isBadRequestError(msg):
		return errors.New(errors.ErrCodeBadRequest, provider+" rejected the request", opts...)
	case isServerError(msg):
		return errors.New(errors.ErrCodeUnavailable, provider+" endpoint unavailable", opts...)
	case isTimeoutError(msg):
		return errors.New(errors.ErrCodeTimeout, provider+" completion call timed out", opts...)
	default:
		return errors.New(errors.ErrCodeUnavailable, provider+" completion call failed", opts...)
	}
}

func isAuthError(msg string) bool {
	return strings.Contains(msg, "401") ||
		strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "invalid api key") ||
		strings.Contains(msg, "incorrect api key") ||
		strings.Contains(msg, "authentication")
}

func isQuotaError(msg string) bool {
	return strings.Contains(msg, "billing") ||
		strings.Contains(msg, "payment") ||
		strings.Contains(msg, "credits") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "insufficient") ||
		strings.Contains(msg, "402")
}

func isRateLimitError(msg string) bool {
	return strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "429") ||
		strings.Contains(msg, "overloaded")
}

func isBadRequestError(msg string) bool {
	return strings.Contains(msg, "400") ||
		strings.Contains(msg, "invalid request") ||
		strings.Contains(msg, "invalid_request") ||
		strings.Contains(msg, "context length") ||
		strings.Contains(msg, "maximum context")
}

func isServerError(msg string) bool {
	return strings.Contains(msg, "500") ||
		strings.Contains(msg, "502") ||
		strings.Contains(msg, "503") ||
		strings.Contains(msg, "504") ||
		strings.Contains(msg, "internal server error") ||
		strings.Contains(msg, "bad gateway") ||
		strings.Contains(msg, "service unavailable") ||
		strings.Contains(msg, "gateway timeout") ||
		strings.Contains(msg, "temporarily unavailable")
}

func isTimeoutError(msg string) bool {
	return strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "timed out") ||
		strings.Contains(msg, "deadline exceeded")
}
