// Package mock provides a test double for the tts package interface.
package mock

import (
	"context"
	"sync"

	"github.com/oae-tools/vozform/pkg/provider/tts"
)

// Provider is a mock implementation of tts.Provider. The zero value is ready
// to use and records every spoken utterance.
type Provider struct {
	mu sync.Mutex

	// SpeakFunc, if non-nil, is called after recording; its error is
	// returned. When nil, Speak returns ctx.Err().
	SpeakFunc func(ctx context.Context, text string) error

	// Spoken records every utterance passed to Speak, in order.
	Spoken []string
}

var _ tts.Provider = (*Provider)(nil)

// Speak records the utterance.
func (p *Provider) Speak(ctx context.Context, text string) error {
	p.mu.Lock()
	p.Spoken = append(p.Spoken, text)
	fn := p.SpeakFunc
	p.mu.Unlock()
	if fn != nil {
		return fn(ctx, text)
	}
	return ctx.Err()
}

// Reset clears recorded utterances. Thread-safe.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Spoken = nil
}

// Last returns the most recent utterance, or "" when none was spoken.
func (p *Provider) Last() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.Spoken) == 0 {
		return ""
	}
	return p.Spoken[len(p.Spoken)-1]
}
