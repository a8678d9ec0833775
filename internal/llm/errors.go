// Package llm classifies failures from the external generative-model and
// embedding capabilities into a small taxonomy the orchestrator can map to
// user-facing messages.
package llm

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// Capability failure categories.
var (
	// ErrAuthentication indicates invalid or missing API credentials.
	ErrAuthentication = errors.New("llm: invalid credentials")

	// ErrRateLimited indicates the provider's rate limit was exceeded.
	ErrRateLimited = errors.New("llm: rate limit exceeded")

	// ErrQuotaExhausted indicates the account's quota is spent.
	ErrQuotaExhausted = errors.New("llm: quota exhausted")

	// ErrMalformedOutput indicates the model returned output that failed
	// strict schema validation.
	ErrMalformedOutput = errors.New("llm: malformed model output")
)

// Classify maps a raw capability error onto one of the taxonomy sentinels,
// or returns it unchanged when no category applies. HTTP status codes are
// checked first; the provider's error text is sniffed as a fallback because
// not every failure surfaces as a *googleapi.Error.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrAuthentication) || errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrQuotaExhausted) || errors.Is(err, ErrMalformedOutput) {
		return err
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return errors.Join(ErrAuthentication, err)
		case http.StatusTooManyRequests:
			if strings.Contains(strings.ToLower(gerr.Message), "quota") {
				return errors.Join(ErrQuotaExhausted, err)
			}
			return errors.Join(ErrRateLimited, err)
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key") || strings.Contains(msg, "api_key") ||
		strings.Contains(msg, "unauthenticated") || strings.Contains(msg, "authentication"):
		return errors.Join(ErrAuthentication, err)
	case strings.Contains(msg, "insufficient_quota") || strings.Contains(msg, "quota"):
		return errors.Join(ErrQuotaExhausted, err)
	case strings.Contains(msg, "rate limit") || strings.Contains(msg, "resource_exhausted") ||
		strings.Contains(msg, "resource exhausted"):
		return errors.Join(ErrRateLimited, err)
	}

	return err
}

// UserMessage renders a classified error as an actionable, human-readable
// message. Internal error strings never reach the user.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrAuthentication):
		return "The AI service rejected our credentials. Please check the configured API key."
	case errors.Is(err, ErrRateLimited):
		return "The AI service rate limit was exceeded. Please try again in a moment."
	case errors.Is(err, ErrQuotaExhausted):
		return "The AI service quota has been exhausted. Please check the account billing."
	case errors.Is(err, ErrMalformedOutput):
		return "The AI service returned an unexpected response. Please try again."
	default:
		return "The AI service is currently unavailable. Please try again later."
	}
}
