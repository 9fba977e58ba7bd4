package flow

import (
	"fmt"
	"math"

	"github.com/oae-tools/vozform/internal/script"
)

// State is the read-only view of the engine handed to rules.
type State struct {
	e *Engine
}

// Answer returns the stored answer for a question id.
func (s State) Answer(id string) (any, bool) { return s.e.Answer(id) }

// Index returns the cursor position at the time the rule runs.
func (s State) Index() int { return s.e.cursor }

// Rule is a generation rule attached to a question via OnConfirm. It receives
// the freshly confirmed value and returns the queue mutations and forced
// answers to apply. Rules must be pure: all state changes go through the
// returned [Effect].
type Rule func(value any, st State) Effect

// Effect is the outcome of a rule.
type Effect struct {
	// Insertions are applied in order against the live queue, so a later
	// insertion's anchor sees the questions inserted before it.
	Insertions []Insertion

	// Forced sets answers for other questions directly. The engine records
	// each replaced value on the triggering question's history entry, so
	// undoing that question rolls the forced answers back as well.
	Forced map[string]any
}

// Insertion places a batch of questions at an anchor.
type Insertion struct {
	Questions []script.Question
	At        Anchor
}

// Anchor designates a queue position. Resolution order: AfterCurrent wins,
// then BeforeID when a question with that id exists, then the first question
// of SectionID, then the end of the queue.
type Anchor struct {
	AfterCurrent bool
	BeforeID     string
	SectionID    string
}

// AfterCurrent anchors right after the question being confirmed.
func AfterCurrent() Anchor { return Anchor{AfterCurrent: true} }

// Before anchors in front of the question with the given id, falling back to
// the start of the section and then to the end of the queue.
func Before(id, sectionID string) Anchor {
	return Anchor{BeforeID: id, SectionID: sectionID}
}

func (e *Engine) snapshot() State { return State{e: e} }

func (e *Engine) apply(eff Effect) {
	for _, ins := range eff.Insertions {
		if len(ins.Questions) == 0 {
			continue
		}
		at := e.resolveAnchor(ins.At)
		e.queue = append(e.queue[:at], append(ins.Questions, e.queue[at:]...)...)
	}
	for id, v := range eff.Forced {
		e.answers[id] = v
	}
}

func (e *Engine) resolveAnchor(a Anchor) int {
	if a.AfterCurrent {
		return e.cursor + 1
	}
	if a.BeforeID != "" {
		for i, q := range e.queue {
			if q.ID == a.BeforeID {
				return i
			}
		}
	}
	if a.SectionID != "" {
		for i, q := range e.queue {
			if q.SectionID == a.SectionID {
				return i
			}
		}
	}
	return len(e.queue)
}

func defaultRules() map[string]Rule {
	return map[string]Rule{
		script.RuleTramosApoios: tramosApoiosRule,
		script.RuleLongarinas:   longarinasRule,
	}
}

// tramosApoiosRule fans out per-span length questions right after the span
// count, and per-support dimension questions ahead of the pillar section. N
// spans produce N length questions and, for N > 1, N-1 supports with three
// questions each.
func tramosApoiosRule(value any, _ State) Effect {
	n := intValue(value, 1)
	if n < 1 {
		n = 1
	}

	tramos := make([]script.Question, 0, n)
	for i := 1; i <= n; i++ {
		tramos = append(tramos, script.Question{
			ID:              fmt.Sprintf("tramo-%d", i),
			Label:           fmt.Sprintf("TRAMO %d", i),
			Prompt:          fmt.Sprintf("Qual é o comprimento do tramo %d?", i),
			Hint:            "Responda em metros",
			ConfirmTemplate: fmt.Sprintf("{value} metros para o tramo %d, correto?", i),
			Type:            script.TypeNumber,
			Required:        true,
			Dynamic:         true,
			DynamicGroup:    "tramos",
			SectionID:       "dimensoes",
			SectionLabel:    "Dimensões",
		})
	}

	var apoios []script.Question
	if n > 1 {
		apoios = make([]script.Question, 0, (n-1)*3)
		for i := 1; i <= n-1; i++ {
			apoios = append(apoios,
				supportQuestion(fmt.Sprintf("apoio-altura-%d", i),
					fmt.Sprintf("ALTURA APOIO %d", i),
					fmt.Sprintf("Qual é a altura do apoio %d?", i),
					fmt.Sprintf("{value} metros para o apoio %d, correto?", i)),
				supportQuestion(fmt.Sprintf("apoio-larg-%d", i),
					fmt.Sprintf("LARGURA PILAR %d", i),
					fmt.Sprintf("Qual é a largura do pilar no apoio %d?", i),
					"{value} metros, correto?"),
				supportQuestion(fmt.Sprintf("apoio-comp-%d", i),
					fmt.Sprintf("COMPRIMENTO PILAR %d", i),
					fmt.Sprintf("Qual é o comprimento do pilar no apoio %d?", i),
					"{value} metros, correto?"),
			)
		}
	}

	eff := Effect{
		Insertions: []Insertion{
			{Questions: tramos, At: AfterCurrent()},
		},
	}
	if len(apoios) > 0 {
		eff.Insertions = append(eff.Insertions, Insertion{
			Questions: apoios,
			At:        Before(script.FieldQtdPilares, script.SectionPilares),
		})
	}
	return eff
}

func supportQuestion(id, label, prompt, confirm string) script.Question {
	return script.Question{
		ID:              id,
		Label:           label,
		Prompt:          prompt,
		Hint:            "Responda em metros",
		ConfirmTemplate: confirm,
		Type:            script.TypeNumber,
		Dynamic:         true,
		DynamicGroup:    "apoios",
		SectionID:       script.SectionPilares,
		SectionLabel:    "Pilares",
	}
}

// longarinasRule forces the girder thickness to 1 for single-girder (box
// section) decks, where the thickness question is skipped.
func longarinasRule(value any, _ State) Effect {
	if intValue(value, 0) == 1 {
		return Effect{Forced: map[string]any{script.FieldEspessuraLongarina: "1"}}
	}
	return Effect{}
}

func intValue(v any, fallback int) int {
	switch t := v.(type) {
	case int:
		return t
	case float64:
		return int(math.Round(t))
	case string:
		if f, ok := parseNumber(t); ok {
			return int(math.Round(f))
		}
	}
	return fallback
}
