// Package interview runs the spoken dialogue that fills one inspection
// record: it asks the flow engine for the current question, speaks the
// prompt, listens for a transcript, parses it against the question type and
// advances (or rewinds) the engine.
//
// The engine itself is single-threaded; Session serialises all access to it
// from the Run loop and publishes a point-in-time [admin.Progress] snapshot
// for the admin endpoint.
package interview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/oae-tools/vozform/internal/admin"
	"github.com/oae-tools/vozform/internal/answer"
	"github.com/oae-tools/vozform/internal/flow"
	"github.com/oae-tools/vozform/internal/observe"
	"github.com/oae-tools/vozform/internal/script"
	"github.com/oae-tools/vozform/pkg/provider/stt"
	"github.com/oae-tools/vozform/pkg/provider/tts"
)

// goBackPhrases trigger a rewind to the previous question. Matched against
// the normalized transcript as whole words.
var goBackPhrases = []string{"voltar", "volta", "anterior", "corrigir", "corrige"}

// Spoken feedback lines. pt-BR like the rest of the dialogue.
const (
	msgRetry    = "Não entendi. Tente de novo."
	msgNoSpeech = "Não ouvi nada."
	msgDone     = "Todos os campos preenchidos!"
	msgBack     = "Voltando."
)

// Config carries the tunable parts of a session.
type Config struct {
	// Language is the recognition language passed to the STT provider.
	// Empty defaults to "pt-BR".
	Language string

	// SilenceTimeout bounds each listen. Zero uses the provider default.
	SilenceTimeout time.Duration

	// Confirm enables the confirmation turn for questions that carry a
	// confirmation template. When false the template is ignored and answers
	// are accepted directly.
	Confirm bool
}

// Session drives one interview from the first question to a complete record.
type Session struct {
	cfg     Config
	engine  *flow.Engine
	stt     stt.Provider
	tts     tts.Provider
	log     *slog.Logger
	metrics *observe.Metrics

	// mu guards the progress snapshot; Run updates it once per turn.
	mu   sync.Mutex
	prog admin.Progress
}

var _ admin.ProgressSource = (*Session)(nil)

// Option is a functional option for New.
type Option func(*Session)

// WithLogger sets the session logger. Defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithMetrics sets the metrics sink. Defaults to observe.DefaultMetrics.
func WithMetrics(m *observe.Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// New creates a Session over an already-constructed engine and speech
// providers.
func New(cfg Config, engine *flow.Engine, sp stt.Provider, tp tts.Provider, opts ...Option) *Session {
	if cfg.Language == "" {
		cfg.Language = "pt-BR"
	}
	s := &Session{
		cfg:    cfg,
		engine: engine,
		stt:    sp,
		tts:    tp,
	}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.metrics == nil {
		s.metrics = observe.DefaultMetrics()
	}
	s.updateProgress()
	return s
}

// Progress returns the latest snapshot of the interview state.
func (s *Session) Progress() admin.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prog
}

// Run executes the dialogue until the engine reports completion, the input
// stream ends, or ctx is cancelled. It always returns the flat answer
// snapshot collected so far; the error is non-nil only when the session
// ended before completion.
func (s *Session) Run(ctx context.Context) (map[string]string, error) {
	s.metrics.ActiveSessions.Add(ctx, 1)
	defer s.metrics.ActiveSessions.Add(ctx, -1)

	failures := 0
	feedback := ""
	for {
		q, ok := s.engine.Current()
		if !ok {
			break
		}
		s.updateProgress()
		s.log.Info("asking question",
			"id", q.ID, "section", q.SectionID, "index", s.engine.Index(), "total", s.engine.Len())

		line := q.Prompt
		if feedback != "" {
			line = feedback + " " + line
			feedback = ""
		}
		turnStart := time.Now()
		if err := s.speak(ctx, line); err != nil {
			return s.engine.FlatAnswers(), err
		}

		res, err := s.listen(ctx)
		switch {
		case err == nil:
		case errors.Is(err, stt.ErrNoSpeech):
			s.metrics.RecordTurn(ctx, "timeout")
			feedback = msgNoSpeech
			continue
		case errors.Is(err, io.EOF):
			s.log.Warn("input exhausted before completion", "answered", s.engine.AnsweredCount())
			return s.engine.FlatAnswers(), fmt.Errorf("interview: listen: %w", err)
		default:
			return s.engine.FlatAnswers(), fmt.Errorf("interview: listen: %w", err)
		}

		text := res.Text
		s.log.Debug("transcript", "id", q.ID, "text", text, "confidence", res.Confidence)

		if isGoBack(text) {
			_, value, undone := s.engine.Previous()
			if !undone {
				feedback = "Não há pergunta anterior."
				continue
			}
			s.metrics.RecordTurn(ctx, "undo")
			failures = 0
			feedback = msgBack
			if value != nil {
				feedback += " O valor anterior era " + displayValue(value) + "."
			}
			continue
		}

		if answer.IsRepeatRequest(text) {
			s.metrics.RecordTurn(ctx, "repeat")
			if q.Hint != "" {
				feedback = q.Hint
			}
			continue
		}

		parsed := answer.Parse(text, answer.Type(q.Type), q.Options, res.Alternatives...)
		if !parsed.Valid {
			failures++
			s.metrics.RecordTurn(ctx, "rejected")
			s.metrics.RecordParseFailure(ctx, string(q.Type))
			s.log.Info("transcript rejected", "id", q.ID, "type", q.Type, "text", text)
			feedback = msgRetry
			if failures >= 2 && len(q.Options) > 0 {
				failures = 0
				feedback = "Opções: " + strings.Join(q.Options, ", ") + "."
			}
			continue
		}

		if s.cfg.Confirm && q.ConfirmTemplate != "" {
			accepted, err := s.confirm(ctx, q, parsed.Display)
			if err != nil {
				return s.engine.FlatAnswers(), err
			}
			if !accepted {
				s.metrics.RecordTurn(ctx, "rejected")
				continue
			}
		}

		failures = 0
		s.engine.Next(parsed.Value)
		s.metrics.RecordTurn(ctx, "accepted")
		s.metrics.TurnDuration.Record(ctx, time.Since(turnStart).Seconds())
		s.log.Info("answer accepted", "id", q.ID, "value", parsed.Display)
	}

	s.updateProgress()
	if err := s.speak(ctx, msgDone); err != nil {
		return s.engine.FlatAnswers(), err
	}
	return s.engine.FlatAnswers(), nil
}

// confirm runs one confirmation turn. The answer is accepted on an
// affirmative, sent back for re-asking on a negative, and on anything
// unclear the confirmation is repeated once before accepting.
func (s *Session) confirm(ctx context.Context, q script.Question, display string) (bool, error) {
	line := strings.ReplaceAll(q.ConfirmTemplate, "{value}", display)
	for attempt := 0; ; attempt++ {
		if err := s.speak(ctx, line); err != nil {
			return false, err
		}
		res, err := s.listen(ctx)
		if err != nil {
			if errors.Is(err, stt.ErrNoSpeech) {
				return true, nil
			}
			return false, fmt.Errorf("interview: confirm: %w", err)
		}
		value, decisive := answer.ParseBoolean(res.Text)
		if decisive {
			return value, nil
		}
		if attempt >= 1 {
			return true, nil
		}
	}
}

// speak plays one line, recording its latency. Only context errors propagate;
// synthesis failures are treated as silent completion by the provider.
func (s *Session) speak(ctx context.Context, text string) error {
	start := time.Now()
	err := s.tts.Speak(ctx, text)
	s.metrics.SpeakDuration.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("interview: speak: %w", err)
	}
	return nil
}

// listen captures one transcript, recording its latency.
func (s *Session) listen(ctx context.Context) (stt.Result, error) {
	start := time.Now()
	res, err := s.stt.Listen(ctx, stt.Options{
		Language:       s.cfg.Language,
		SilenceTimeout: s.cfg.SilenceTimeout,
	})
	s.metrics.ListenDuration.Record(ctx, time.Since(start).Seconds())
	return res, err
}

func (s *Session) updateProgress() {
	p := admin.Progress{
		Index:    s.engine.Index(),
		Total:    s.engine.Len(),
		Answered: s.engine.AnsweredCount(),
		Complete: s.engine.IsComplete(),
	}
	if q, ok := s.engine.Current(); ok {
		p.QuestionID = q.ID
		p.Prompt = q.Prompt
		p.Section = q.SectionLabel
	}
	s.mu.Lock()
	s.prog = p
	s.mu.Unlock()
}

// isGoBack reports whether the transcript is a correction request. Matching
// is per whole word so option values containing these substrings do not
// trigger a rewind.
func isGoBack(text string) bool {
	for _, w := range strings.Fields(answer.Normalize(text)) {
		for _, p := range goBackPhrases {
			if w == p {
				return true
			}
		}
	}
	return false
}

// displayValue renders a stored answer for read-back.
func displayValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprint(t)
	}
}
