package llmprovider

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrAllProvidersFailed    = errors.New("all providers failed")
	ErrNoProvidersConfigured = errors.New("no providers configured")
	// ErrEmptyResponse means the provider answered without text. Retrying
	// the same provider rarely helps, so the manager moves on.
	ErrEmptyResponse = errors.New("empty response")
)

// ProviderError tags an error with the provider that produced it.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func retryable(err error) bool {
	return !errors.Is(err, ErrEmptyResponse) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}
