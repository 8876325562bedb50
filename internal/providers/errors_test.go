package providers

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks Registry,ReportCreator

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderError(t *testing.T) {
	t.Run("retryable categories", func(t *testing.T) {
		assert.True(t, NewProviderError(ErrorTimeout, ProviderCourt, "slow", nil).Retryable)
		assert.True(t, NewProviderError(ErrorProviderOutage, ProviderCourt, "down", nil).Retryable)
		assert.False(t, NewProviderError(ErrorBadData, ProviderCourt, "garbled", nil).Retryable)
	})

	t.Run("category and message survive wrapping", func(t *testing.T) {
		underlying := errors.New("connection refused")
		err := fmt.Errorf("fetch: %w", NewProviderError(ErrorProviderOutage, ProviderBankruptcy, "registry unavailable", underlying))

		assert.Equal(t, ErrorProviderOutage, GetCategory(err))
		assert.True(t, IsRetryable(err))
		assert.ErrorIs(t, err, underlying)
		assert.Equal(t, "registry unavailable", UserMessage(err))
		assert.Contains(t, err.Error(), "provider bankruptcy [provider_outage]")
	})

	t.Run("foreign errors", func(t *testing.T) {
		err := errors.New("boom")
		assert.Equal(t, ErrorInternal, GetCategory(err))
		assert.False(t, IsRetryable(err))
		assert.Equal(t, "lookup failed", UserMessage(err))
		assert.Empty(t, UserMessage(nil))
	})
}
