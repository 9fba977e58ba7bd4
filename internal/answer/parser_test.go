package answer_test

import (
	"testing"

	"github.com/oae-tools/vozform/internal/answer"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"Vírgula", "virgula"},
		{"  TRÊS  metros ", "tres metros"},
		{"sim, pode!", "sim pode"},
		{"não; entendi?", "nao entendi"},
	}
	for _, tt := range tests {
		if got := answer.Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWordsToNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float64
	}{
		{"vinte e cinco", 25},
		{"cento e doze", 112},
		{"dois mil e trezentos", 2300},
		{"mil", 1000},
		{"dez ponto cinco", 10.5},
		{"menos dez ponto cinco", -10.5},
		{"três vírgula vinte e cinco", 3.25},
		{"12,5", 12.5},
		{"7", 7},
		{"quinhentas e quarenta", 540},
	}
	for _, tt := range tests {
		got, ok := answer.WordsToNumber(tt.in)
		if !ok {
			t.Errorf("WordsToNumber(%q) not ok", tt.in)
			continue
		}
		if got != tt.want {
			t.Errorf("WordsToNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, ok := answer.WordsToNumber("talvez amanha"); ok {
		t.Error("WordsToNumber accepted non-numeric text")
	}
}

func TestParseNumber(t *testing.T) {
	t.Parallel()

	r := answer.Parse("vinte e cinco", answer.TypeNumber, nil)
	if !r.Valid || r.Value != 25.0 || r.Display != "25" {
		t.Errorf("Parse(vinte e cinco) = %+v", r)
	}

	r = answer.Parse("12.5 metros", answer.TypeNumber, nil)
	if !r.Valid || r.Value != 12.5 {
		t.Errorf("Parse(12.5 metros) = %+v", r)
	}

	r = answer.Parse("menos dez ponto cinco", answer.TypeNumber, nil)
	if !r.Valid || r.Value != -10.5 || r.Display != "-10.5" {
		t.Errorf("Parse(menos dez ponto cinco) = %+v", r)
	}

	r = answer.Parse("sei la", answer.TypeNumber, nil)
	if r.Valid {
		t.Errorf("Parse(sei la) unexpectedly valid: %+v", r)
	}
	if r.Display != "sei la" {
		t.Errorf("invalid parse should echo transcript, got %q", r.Display)
	}
}

func TestParseNumberAlternatives(t *testing.T) {
	t.Parallel()

	r := answer.Parse("hmm", answer.TypeNumber, nil, "nada", "quarenta e dois")
	if !r.Valid || r.Value != 42.0 {
		t.Errorf("alternatives not consulted: %+v", r)
	}
}

func TestParseInteger(t *testing.T) {
	t.Parallel()

	r := answer.Parse("três ponto sete", answer.TypeInteger, nil)
	if !r.Valid || r.Value != 4 {
		t.Errorf("integer rounding: got %+v, want 4", r)
	}

	r = answer.Parse("3 tramos", answer.TypeInteger, nil)
	if !r.Valid || r.Value != 3 {
		t.Errorf("Parse(3 tramos) = %+v", r)
	}
}

func TestParseSelect(t *testing.T) {
	t.Parallel()

	options := []string{"Nenhum", "ENCONTRO LAJE", "ENCONTRO DE CONCRETO ARMADO"}

	r := answer.Parse("encontro laje", answer.TypeSelect, options)
	if !r.Valid || r.Value != "ENCONTRO LAJE" {
		t.Errorf("exact select: %+v", r)
	}

	r = answer.Parse("laje", answer.TypeSelect, options)
	if !r.Valid || r.Value != "ENCONTRO LAJE" {
		t.Errorf("substring select: %+v", r)
	}

	r = answer.Parse("concreto", answer.TypeSelect, options)
	if !r.Valid || r.Value != "ENCONTRO DE CONCRETO ARMADO" {
		t.Errorf("token select: %+v", r)
	}

	r = answer.Parse("xyzzy", answer.TypeSelect, options)
	if r.Valid {
		t.Errorf("nonsense select unexpectedly valid: %+v", r)
	}
}

func TestMatchOptionJaroWinkler(t *testing.T) {
	t.Parallel()

	// Close misrecognition with no exact, substring or token overlap.
	got, ok := answer.MatchOption("neoprema", []string{"NEOPRENE", "BERÇO"})
	if !ok || got != "NEOPRENE" {
		t.Errorf("MatchOption(neoprema) = %q, %v", got, ok)
	}
}

func TestParseBoolean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in    string
		want  bool
		valid bool
	}{
		{"sim", true, true},
		{"sim, pode manter", true, true},
		{"não", false, true},
		{"nao", false, true},
		{"negativo", false, true},
		{"correto", true, true},
		{"banana", false, false},
	}
	for _, tt := range tests {
		got, ok := answer.ParseBoolean(tt.in)
		if ok != tt.valid || (ok && got != tt.want) {
			t.Errorf("ParseBoolean(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.valid)
		}
	}

	r := answer.Parse("sim", answer.TypeBoolean, nil)
	if !r.Valid || r.Value != "TRUE" || r.Display != "Sim" {
		t.Errorf("Parse(sim, boolean) = %+v", r)
	}
	r = answer.Parse("errado", answer.TypeBoolean, nil)
	if !r.Valid || r.Value != "FALSE" || r.Display != "Não" {
		t.Errorf("Parse(errado, boolean) = %+v", r)
	}
}

func TestIsRepeatRequest(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"repete por favor", "não entendi", "o que?", "pode repetir"} {
		if !answer.IsRepeatRequest(in) {
			t.Errorf("IsRepeatRequest(%q) = false, want true", in)
		}
	}
	if answer.IsRepeatRequest("quinze metros") {
		t.Error("IsRepeatRequest(quinze metros) = true, want false")
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"15/03/2024", "15/03/2024"},
		{"a vistoria foi em 5-3-2024", "05/03/2024"},
		{"quinze de março de dois mil e vinte e quatro", "15/03/2024"},
		{"primeiro semestre", "primeiro semestre"},
	}
	for _, tt := range tests {
		if got := answer.ParseDate(tt.in); got != tt.want {
			t.Errorf("ParseDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	r := answer.Parse("15/03/2024", answer.TypeDate, nil)
	if !r.Valid || r.Value != "15/03/2024" {
		t.Errorf("Parse(date) = %+v", r)
	}
}

func TestParseEmpty(t *testing.T) {
	t.Parallel()

	r := answer.Parse("   ", answer.TypeText, nil)
	if r.Valid {
		t.Errorf("blank transcript unexpectedly valid: %+v", r)
	}
}
