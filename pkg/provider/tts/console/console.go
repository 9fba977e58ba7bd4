// Package console implements [tts.Provider] by printing utterances to a
// writer, normally standard output. It pairs with the console STT provider
// for audio-free interview sessions.
package console

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/oae-tools/vozform/pkg/provider/tts"
)

// Provider writes utterances as prefixed lines.
type Provider struct {
	mu sync.Mutex
	w  io.Writer
}

var _ tts.Provider = (*Provider)(nil)

// New returns a provider printing to w.
func New(w io.Writer) *Provider {
	return &Provider{w: w}
}

// Speak writes the utterance. Write failures complete silently per the
// Provider contract; only context cancellation is reported.
func (p *Provider) Speak(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "🔊 %s\n", text)
	return nil
}
