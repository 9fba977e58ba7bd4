// Package tts defines the Provider interface for text-to-speech backends.
//
// A TTS provider renders one utterance per call and resolves when playback
// ends. The contract is single-outstanding-request: starting new speech
// supersedes any prior one. Synthesis failure is deliberately indistinguishable
// from silent completion — Speak never fails for provider-side reasons, so a
// broken audio path can never wedge the interview loop. The only error a
// caller sees is its own context's.
//
// Implementations must be safe for concurrent use.
package tts

import "context"

// Provider is the abstraction over any TTS backend.
type Provider interface {
	// Speak renders text and blocks until playback completes or ctx is done.
	// Provider-side synthesis failures complete silently; the returned error
	// is non-nil only when ctx is cancelled.
	Speak(ctx context.Context, text string) error
}
