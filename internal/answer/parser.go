// Package answer interprets pt-BR speech transcripts as typed form values.
//
// The entry point is [Parse], which dispatches on the question type: free
// text, decimal and integer numbers (spoken out in words or in digits),
// select options resolved by staged fuzzy matching, yes/no answers and
// dates. [ParseBoolean] and [IsRepeatRequest] are exposed separately because
// the interview loop consults them outside of a question's own type, for
// confirmation turns and "say that again" handling.
//
// Package functions are pure and safe for concurrent use.
package answer

import (
	"math"
	"strconv"
	"strings"
)

// Result is the outcome of interpreting one transcript.
type Result struct {
	// Value is the typed value: string, float64, int, or the strings
	// "TRUE"/"FALSE" for booleans. Empty string when Valid is false.
	Value any

	// Display is the human-readable form used in confirmation prompts. On an
	// invalid parse it carries the raw transcript so the failure can be read
	// back to the speaker.
	Display string

	// Valid reports whether the transcript produced a usable value.
	Valid bool
}

// Type mirrors the question types the parser understands. It is a plain
// string so script definitions can be passed through without conversion.
type Type string

const (
	TypeText    Type = "text"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeSelect  Type = "select"
	TypeBoolean Type = "boolean"
	TypeDate    Type = "date"
)

// Boolean word lists, pre-normalized. Matching is per word with two-way
// prefix compatibility so clipped recognizer output ("corret", "afirma")
// still lands.
var (
	booleanTrue  = []string{"sim", "yes", "correto", "certo", "pode", "isso", "afirmativo", "verdadeiro", "manter", "ok"}
	booleanFalse = []string{"nao", "errado", "negativo", "errar", "corrige", "corrigir", "falso", "trocar", "mudar"}
)

var repeatPhrases = []string{"repete", "repetir", "nao entendi", "nao entendeu", "nao ouvi", "oque", "o que"}

// Parse interprets text as a value of the given type. For selects, options
// lists the allowed values. alternatives carries extra recognizer hypotheses
// tried in order when the primary transcript does not parse; they apply to
// number, integer and select types.
func Parse(text string, typ Type, options []string, alternatives ...string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Value: "", Display: "", Valid: false}
	}

	switch typ {
	case TypeText:
		v := strings.TrimSpace(text)
		return Result{Value: v, Display: v, Valid: v != ""}

	case TypeNumber:
		for _, t := range candidates(text, alternatives) {
			norm := normalizeNumeric(t)
			if v, ok := parseFloatPrefix(norm); ok {
				return Result{Value: v, Display: formatNumber(v), Valid: true}
			}
			if v, ok := WordsToNumber(norm); ok {
				return Result{Value: v, Display: formatNumber(v), Valid: true}
			}
		}
		return Result{Value: "", Display: text, Valid: false}

	case TypeInteger:
		for _, t := range candidates(text, alternatives) {
			norm := normalizeNumeric(t)
			if v, ok := parseIntPrefix(norm); ok {
				return Result{Value: v, Display: strconv.Itoa(v), Valid: true}
			}
			if v, ok := WordsToNumber(norm); ok {
				n := int(math.Round(v))
				return Result{Value: n, Display: strconv.Itoa(n), Valid: true}
			}
		}
		return Result{Value: "", Display: text, Valid: false}

	case TypeSelect:
		for _, t := range candidates(text, alternatives) {
			if match, ok := MatchOption(t, options); ok {
				return Result{Value: match, Display: match, Valid: true}
			}
		}
		return Result{Value: "", Display: text, Valid: false}

	case TypeBoolean:
		if v, ok := ParseBoolean(text); ok {
			if v {
				return Result{Value: "TRUE", Display: "Sim", Valid: true}
			}
			return Result{Value: "FALSE", Display: "Não", Valid: true}
		}
		return Result{Value: "", Display: text, Valid: false}

	case TypeDate:
		d := ParseDate(text)
		return Result{Value: d, Display: d, Valid: d != ""}

	default:
		v := strings.TrimSpace(text)
		return Result{Value: v, Display: v, Valid: true}
	}
}

// ParseBoolean reads a yes/no answer. ok is false when no word of the
// transcript is recognizably affirmative or negative. Affirmative words win
// within a single word check, and the first decisive word in the transcript
// decides, so "sim, não precisa" is affirmative.
func ParseBoolean(text string) (value, ok bool) {
	for _, w := range strings.Fields(Normalize(text)) {
		if matchesAny(w, booleanTrue) {
			return true, true
		}
		if matchesAny(w, booleanFalse) {
			return false, true
		}
	}
	return false, false
}

// IsRepeatRequest reports whether the transcript asks for the question to be
// repeated.
func IsRepeatRequest(text string) bool {
	norm := Normalize(text)
	for _, k := range repeatPhrases {
		if strings.Contains(norm, k) {
			return true
		}
	}
	return false
}

func matchesAny(word string, list []string) bool {
	for _, w := range list {
		if strings.HasPrefix(word, w) || strings.HasPrefix(w, word) {
			return true
		}
	}
	return false
}

func candidates(text string, alternatives []string) []string {
	return append([]string{text}, alternatives...)
}
