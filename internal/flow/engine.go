// Package flow implements the interview navigation engine.
//
// An [Engine] owns a mutable queue of questions built from a script, the set
// of collected answers and an undo history. Answering the current question
// with [Engine.Next] may trigger a generation rule that splices dynamic
// questions into the queue or forces dependent answers; [Engine.Previous]
// undoes the last answer, including any dynamic questions it created.
//
// The engine is instance-scoped and single-turn: exactly one call runs at a
// time, driven by the interview loop, so no locking is done here. Create one
// engine per session.
package flow

import (
	"fmt"
	"strconv"

	"github.com/oae-tools/vozform/internal/script"
)

type historyEntry struct {
	index      int
	questionID string
	value      any
	forced     []forcedAnswer
}

// forcedAnswer remembers what a rule's forced write replaced, so undoing the
// triggering answer can put the answer set back exactly.
type forcedAnswer struct {
	id   string
	prev any
	had  bool
}

// Engine is the navigation state machine over an interview's question queue.
type Engine struct {
	queue   []script.Question
	answers map[string]any
	cursor  int
	history []historyEntry
	rules   map[string]Rule
}

// Option configures an [Engine].
type Option func(*Engine)

// WithRule registers a generation rule under the given name, replacing any
// default rule with that name.
func WithRule(name string, r Rule) Option {
	return func(e *Engine) {
		e.rules[name] = r
	}
}

// New builds an engine over the given script. The queue starts as the
// flattened script order; dynamic questions are inserted later by rules. The
// default rule set handles span and girder generation.
func New(s *script.Script, opts ...Option) *Engine {
	e := &Engine{
		queue:   s.Flatten(),
		answers: make(map[string]any),
		rules:   defaultRules(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Current returns the question at the cursor, or false when the interview is
// complete.
func (e *Engine) Current() (script.Question, bool) {
	if e.cursor >= len(e.queue) {
		return script.Question{}, false
	}
	return e.queue[e.cursor], true
}

// Index returns the cursor position.
func (e *Engine) Index() int { return e.cursor }

// Len returns the current queue length, dynamic questions included.
func (e *Engine) Len() int { return len(e.queue) }

// AnsweredCount returns how many answers are currently held.
func (e *Engine) AnsweredCount() int { return len(e.answers) }

// IsComplete reports whether the cursor has moved past the last question.
func (e *Engine) IsComplete() bool { return e.cursor >= len(e.queue) }

// Questions returns a snapshot of the current queue.
func (e *Engine) Questions() []script.Question {
	out := make([]script.Question, len(e.queue))
	copy(out, e.queue)
	return out
}

// Answer returns the stored answer for a question id.
func (e *Engine) Answer(id string) (any, bool) {
	v, ok := e.answers[id]
	return v, ok
}

// Next records value as the answer to the current question and advances to
// the next eligible question. A rule attached to the question runs first, so
// the questions it inserts are visible before the cursor moves. Returns false
// when the interview is already complete.
func (e *Engine) Next(value any) bool {
	q, ok := e.Current()
	if !ok {
		return false
	}

	e.answers[q.ID] = value
	entry := historyEntry{
		index:      e.cursor,
		questionID: q.ID,
		value:      value,
	}

	if q.OnConfirm != "" {
		if rule, ok := e.rules[q.OnConfirm]; ok {
			eff := rule(value, e.snapshot())
			for id := range eff.Forced {
				prev, had := e.answers[id]
				entry.forced = append(entry.forced, forcedAnswer{id: id, prev: prev, had: had})
			}
			e.apply(eff)
		}
	}
	e.history = append(e.history, entry)

	e.cursor++
	e.skipIneligible()
	return true
}

// Previous undoes the last confirmed answer: dynamic questions inserted after
// that point are removed along with their answers, answers forced by the
// question's rule are rolled back to their prior state, the cursor returns to
// the undone question and its answer is cleared. The undone question and its
// former value are returned so the caller can offer them back to the speaker.
// ok is false when there is nothing to undo.
func (e *Engine) Previous() (q script.Question, previous any, ok bool) {
	if len(e.history) == 0 {
		return script.Question{}, nil, false
	}

	last := e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]

	e.purgeDynamicAfter(last.index)
	e.cursor = last.index
	delete(e.answers, last.questionID)
	for _, f := range last.forced {
		if f.had {
			e.answers[f.id] = f.prev
		} else {
			delete(e.answers, f.id)
		}
	}

	return e.queue[last.index], last.value, true
}

// skipIneligible advances the cursor over questions whose condition does not
// hold, clearing any stale answer a skipped question may have from an earlier
// pass.
func (e *Engine) skipIneligible() {
	for e.cursor < len(e.queue) {
		q := e.queue[e.cursor]
		if e.shouldAsk(q) {
			return
		}
		delete(e.answers, q.ID)
		e.cursor++
	}
}

// purgeDynamicAfter removes dynamic questions positioned after index and
// deletes their answers.
func (e *Engine) purgeDynamicAfter(index int) {
	kept := e.queue[:index+1]
	for _, q := range e.queue[index+1:] {
		if q.Dynamic {
			delete(e.answers, q.ID)
			continue
		}
		kept = append(kept, q)
	}
	e.queue = kept
}

// shouldAsk evaluates a question's condition against the collected answers.
// Questions without a condition and conditions with an unknown operator are
// always asked; script authors rely on the fail-open default.
func (e *Engine) shouldAsk(q script.Question) bool {
	c := q.Condition
	if c == nil {
		return true
	}

	var result bool
	switch c.Operator {
	case script.OpAnyNotEquals:
		for _, f := range c.Fields {
			v, ok := e.answers[f]
			if s := stringify(v); ok && truthy(s) && s != c.Value {
				result = true
				break
			}
		}
	case script.OpEquals:
		v := e.answers[c.Field]
		result = stringify(v) == c.Value
	case script.OpNotEquals:
		v, ok := e.answers[c.Field]
		s := stringify(v)
		result = ok && s != "" && s != c.Value
	case script.OpGreaterThan:
		a, aok := e.numericAnswer(c.Field)
		b, bok := parseNumber(c.Value)
		result = aok && bok && a > b
	case script.OpLessThan:
		a, aok := e.numericAnswer(c.Field)
		b, bok := parseNumber(c.Value)
		result = aok && bok && a < b
	default:
		return true
	}

	if c.Negate {
		return !result
	}
	return result
}

func (e *Engine) numericAnswer(field string) (float64, bool) {
	v, ok := e.answers[field]
	if !ok {
		return 0, false
	}
	return parseNumber(stringify(v))
}

// truthy reports whether an exported answer value counts as present for
// aggregate conditions. Empty, zero and FALSE answers do not.
func truthy(s string) bool {
	return s != "" && s != "0" && s != "FALSE"
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// stringify renders an answer value the way it is exported: floats without
// trailing zeros, booleans as TRUE/FALSE.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		if t {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprint(t)
	}
}
