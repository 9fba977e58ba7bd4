// Package script defines the interview script document for vozform.
//
// A script is an ordered list of sections, each holding an ordered list of
// questions. The document is static configuration: it is loaded once per
// session ([LoadFile], [LoadFromReader]) and never persisted back. Dynamic
// questions (per-span lengths, per-support dimensions) are generated at
// runtime by the flow engine and never appear in a script file.
package script

// Type classifies how a spoken answer to a question is interpreted.
type Type string

const (
	// TypeText accepts any non-empty transcript as-is.
	TypeText Type = "text"

	// TypeNumber accepts decimal numbers, spoken or in digits.
	TypeNumber Type = "number"

	// TypeInteger accepts whole numbers; fractional spoken values are rounded.
	TypeInteger Type = "integer"

	// TypeSelect fuzzy-matches the transcript against the question's Options.
	TypeSelect Type = "select"

	// TypeBoolean accepts yes/no style answers and yields "TRUE"/"FALSE".
	TypeBoolean Type = "boolean"

	// TypeDate accepts D/M/YYYY digits or a spoken pt-BR date.
	TypeDate Type = "date"
)

// IsValid reports whether t is a recognised question type.
func (t Type) IsValid() bool {
	switch t {
	case TypeText, TypeNumber, TypeInteger, TypeSelect, TypeBoolean, TypeDate:
		return true
	}
	return false
}

// Condition is an eligibility rule evaluated against prior answers. A question
// with a nil condition is always asked.
//
// Unknown operators evaluate as eligible. This fail-open policy is deliberate:
// script authors rely on a question with a typo'd operator still being asked
// rather than silently vanishing from the interview.
type Condition struct {
	// Operator selects the comparison: "equals", "notEquals", "greaterThan",
	// "lessThan", or "anyNotEquals".
	Operator string `yaml:"operator"`

	// Field is the answered question id compared against Value. Used by all
	// operators except anyNotEquals.
	Field string `yaml:"field,omitempty"`

	// Fields lists the question ids inspected by anyNotEquals: the condition
	// holds when at least one of them has a non-empty answer different from
	// Value.
	Fields []string `yaml:"fields,omitempty"`

	// Value is the comparison operand. Comparisons are performed on the
	// stringified answer.
	Value string `yaml:"value,omitempty"`

	// Negate inverts the result of a known operator. Unknown operators stay
	// fail-open even when negated.
	Negate bool `yaml:"negate,omitempty"`
}

const (
	OpEquals       = "equals"
	OpNotEquals    = "notEquals"
	OpGreaterThan  = "greaterThan"
	OpLessThan     = "lessThan"
	OpAnyNotEquals = "anyNotEquals"
)

// Question is one interview step. Questions are immutable templates; identity
// is the ID field, which doubles as the export field name for static
// questions.
type Question struct {
	// ID uniquely identifies the question within a session.
	ID string `yaml:"id"`

	// Label is the short display name (e.g. "QTD TRAMOS").
	Label string `yaml:"label,omitempty"`

	// Prompt is the spoken question text.
	Prompt string `yaml:"prompt"`

	// Hint is an optional clarification spoken on a repeat request
	// (e.g. "Responda em metros").
	Hint string `yaml:"hint,omitempty"`

	// ConfirmTemplate is an optional confirmation phrase; the placeholder
	// "{value}" is replaced with the parsed answer's display form.
	ConfirmTemplate string `yaml:"confirm_template,omitempty"`

	// Type selects the answer interpretation strategy.
	Type Type `yaml:"type"`

	// Required marks the question as blocking for a complete record. The flow
	// engine does not enforce it at runtime; it is advisory metadata for
	// validation layers.
	Required bool `yaml:"required,omitempty"`

	// Options lists the allowed values for TypeSelect questions.
	Options []string `yaml:"options,omitempty"`

	// Dynamic is true for questions generated at runtime. Never set in script
	// files; [Validate] rejects it.
	Dynamic bool `yaml:"-"`

	// DynamicGroup tags dynamically generated questions that are purged and
	// re-created together.
	DynamicGroup string `yaml:"-"`

	// SectionID and SectionLabel record which section the question came from.
	// They are carried along for UI grouping and anchor fallback lookup; the
	// engine does not otherwise interpret them.
	SectionID    string `yaml:"-"`
	SectionLabel string `yaml:"-"`

	// Condition gates whether the question is asked. Nil means always.
	Condition *Condition `yaml:"condition,omitempty"`

	// OnConfirm names a generation rule executed when this question is
	// answered (e.g. span fan-out). Empty for most questions.
	OnConfirm string `yaml:"on_confirm,omitempty"`
}

// Section groups consecutive questions under a label, mirroring the form tabs
// of the surveying application the records feed into.
type Section struct {
	ID        string     `yaml:"id"`
	Label     string     `yaml:"label"`
	Questions []Question `yaml:"questions"`
}

// Script is the root interview document.
type Script struct {
	// Name is a display name for the script.
	Name string `yaml:"name,omitempty"`

	Sections []Section `yaml:"sections"`
}

// Flatten returns all questions in script order with their section provenance
// stamped in. The result is a fresh slice; mutating it does not affect the
// script.
func (s *Script) Flatten() []Question {
	var out []Question
	for _, sec := range s.Sections {
		for _, q := range sec.Questions {
			q.SectionID = sec.ID
			q.SectionLabel = sec.Label
			out = append(out, q)
		}
	}
	return out
}
