// Package stt defines the Provider interface for speech-to-text backends.
//
// An STT provider captures one utterance per call and resolves it to a final
// transcript with ranked alternatives. The contract is single-outstanding-
// request: starting a new listen supersedes any prior one, so implementations
// never have two recognitions in flight for the same provider instance.
//
// Implementations must be safe for concurrent use.
package stt

import (
	"context"
	"errors"
	"time"
)

// DefaultSilenceTimeout is how long a listen waits for speech before giving
// up when Options.SilenceTimeout is zero.
const DefaultSilenceTimeout = 10 * time.Second

// ErrNoSpeech is returned when the silence window elapses without a usable
// utterance. Callers treat it as a re-prompt signal, not a failure.
var ErrNoSpeech = errors.New("stt: no speech detected")

// Options configures a single listen call.
type Options struct {
	// Language is the BCP-47 recognition language tag (e.g., "pt-BR"). An
	// empty string uses the provider's default.
	Language string

	// SilenceTimeout bounds how long the provider waits for a final
	// transcript. Zero means DefaultSilenceTimeout.
	SilenceTimeout time.Duration

	// OnInterim, when non-nil, receives low-latency partial transcripts as
	// the provider makes preliminary guesses. Suitable for UI feedback only;
	// the authoritative text arrives in the Result.
	OnInterim func(text string)
}

// Result is a final recognition outcome.
type Result struct {
	// Text is the primary transcript.
	Text string

	// Alternatives are further hypotheses, best first, excluding Text.
	Alternatives []string

	// Confidence is the provider's score for Text in [0, 1]. Zero when the
	// provider does not report confidence.
	Confidence float64
}

// Provider is the abstraction over any STT backend.
type Provider interface {
	// Listen blocks until a final transcript is available, the silence window
	// elapses (ErrNoSpeech), or ctx is done (ctx.Err()). At most one Listen
	// per provider instance runs at a time; a new call supersedes the
	// previous one.
	Listen(ctx context.Context, opts Options) (Result, error)
}
