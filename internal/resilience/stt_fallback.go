package resilience

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/oae-tools/vozform/pkg/provider/stt"
)

// STTFallback implements [stt.Provider] with automatic failover across
// multiple recognition backends. Each backend has its own circuit breaker.
//
// Silence ([stt.ErrNoSpeech]) and context cancellation are outcomes of the
// conversation, not of the backend: they neither trip a breaker nor trigger
// failover, and are returned to the caller as-is.
type STTFallback struct {
	group *FallbackGroup[stt.Provider]
}

var _ stt.Provider = (*STTFallback)(nil)

// NewSTTFallback creates an [STTFallback] with primary as the preferred
// backend.
func NewSTTFallback(primary stt.Provider, primaryName string, cfg FallbackConfig) *STTFallback {
	return &STTFallback{
		group: NewFallbackGroup(primary, primaryName, cfg),
	}
}

// AddFallback registers an additional STT provider as a fallback.
func (f *STTFallback) AddFallback(name string, provider stt.Provider) {
	f.group.AddFallback(name, provider)
}

// Listen requests a transcript from the first healthy backend. On a backend
// failure the next entry is tried with the same options.
func (f *STTFallback) Listen(ctx context.Context, opts stt.Options) (stt.Result, error) {
	var lastErr error
	for i := range f.group.entries {
		entry := &f.group.entries[i]

		var res stt.Result
		var benign error
		err := entry.breaker.Execute(func() error {
			r, err := entry.value.Listen(ctx, opts)
			if err != nil && (errors.Is(err, stt.ErrNoSpeech) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
				benign = err
				return nil
			}
			res = r
			return err
		})
		if err == nil {
			if benign != nil {
				return stt.Result{}, benign
			}
			return res, nil
		}
		lastErr = err
		if errors.Is(err, ErrCircuitOpen) {
			slog.Debug("skipping stt backend (circuit open)", "backend", entry.name)
		} else {
			slog.Warn("stt backend failed, trying next", "backend", entry.name, "error", err)
		}
	}
	return stt.Result{}, fmt.Errorf("%w: %v", ErrAllFailed, lastErr)
}
