package llm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"401 is authentication", &googleapi.Error{Code: 401, Message: "unauthorized"}, ErrAuthentication},
		{"403 is authentication", &googleapi.Error{Code: 403, Message: "forbidden"}, ErrAuthentication},
		{"429 is rate limit", &googleapi.Error{Code: 429, Message: "too many requests"}, ErrRateLimited},
		{"429 quota message is quota", &googleapi.Error{Code: 429, Message: "quota exceeded for project"}, ErrQuotaExhausted},
		{"api key text", errors.New("API key not valid"), ErrAuthentication},
		{"quota text", errors.New("insufficient_quota for request"), ErrQuotaExhausted},
		{"rate limit text", errors.New("rate limit hit, slow down"), ErrRateLimited},
		{"already classified passes through", fmt.Errorf("wrapped: %w", ErrMalformedOutput), ErrMalformedOutput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestClassify_UnknownStaysUnchanged(t *testing.T) {
	raw := errors.New("connection reset by peer")
	got := Classify(raw)
	assert.Equal(t, raw, got)
	assert.NotErrorIs(t, got, ErrAuthentication)
}

func TestUserMessage(t *testing.T) {
	assert.Contains(t, UserMessage(ErrAuthentication), "API key")
	assert.Contains(t, UserMessage(ErrRateLimited), "rate limit")
	assert.Contains(t, UserMessage(ErrQuotaExhausted), "quota")
	assert.Contains(t, UserMessage(ErrMalformedOutput), "unexpected response")
	assert.Contains(t, UserMessage(errors.New("boom")), "unavailable")
}
