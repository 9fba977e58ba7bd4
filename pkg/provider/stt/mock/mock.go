// Package mock provides a test double for the stt package interface.
//
// Queue transcripts with Enqueue (or EnqueueErr) and the mock returns them in
// order; inspect ListenCalls to verify the options the caller used.
//
// Example:
//
//	p := &mock.Provider{}
//	p.Enqueue(stt.Result{Text: "vinte e cinco"})
//	p.EnqueueErr(stt.ErrNoSpeech)
package mock

import (
	"context"
	"io"
	"sync"

	"github.com/oae-tools/vozform/pkg/provider/stt"
)

// ListenCall records a single invocation of Provider.Listen.
type ListenCall struct {
	// Ctx is the context passed to Listen.
	Ctx context.Context
	// Opts is the Options value passed to Listen.
	Opts stt.Options
}

type queued struct {
	result stt.Result
	err    error
}

// Provider is a mock implementation of stt.Provider. The zero value is ready
// to use; an empty queue reports io.EOF.
type Provider struct {
	mu sync.Mutex

	// ListenFunc, if non-nil, handles Listen entirely, bypassing the queue.
	ListenFunc func(ctx context.Context, opts stt.Options) (stt.Result, error)

	// ListenCalls records every call to Listen.
	ListenCalls []ListenCall

	queue []queued
}

var _ stt.Provider = (*Provider)(nil)

// Enqueue appends a successful recognition to the reply queue.
func (p *Provider) Enqueue(r stt.Result) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queue = append(p.queue, queued{result: r})
}

// EnqueueErr appends a failing recognition to the reply queue.
func (p *Provider) EnqueueErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queue = append(p.queue, queued{err: err})
}

// Listen records the call and pops the next queued reply. Interim callbacks
// receive the primary transcript first when set.
func (p *Provider) Listen(ctx context.Context, opts stt.Options) (stt.Result, error) {
	p.mu.Lock()
	p.ListenCalls = append(p.ListenCalls, ListenCall{Ctx: ctx, Opts: opts})
	if p.ListenFunc != nil {
		fn := p.ListenFunc
		p.mu.Unlock()
		return fn(ctx, opts)
	}
	if len(p.queue) == 0 {
		p.mu.Unlock()
		return stt.Result{}, io.EOF
	}
	next := p.queue[0]
	p.queue = p.queue[1:]
	p.mu.Unlock()

	if next.err != nil {
		return stt.Result{}, next.err
	}
	if opts.OnInterim != nil {
		opts.OnInterim(next.result.Text)
	}
	return next.result, nil
}

// Reset clears recorded calls and any remaining queue. Thread-safe.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ListenCalls = nil
	p.queue = nil
}
