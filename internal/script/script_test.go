package script_test

import (
	"strings"
	"testing"

	"github.com/oae-tools/vozform/internal/script"
)

func TestLoadFromReader(t *testing.T) {
	t.Parallel()

	doc := `
name: Teste
sections:
  - id: info
    label: Informações
    questions:
      - id: CODIGO
        prompt: Código da obra?
        type: text
        required: true
      - id: TIPO ENCONTRO
        prompt: Tipo de encontro?
        type: select
        options: [Nenhum, ENCONTRO LAJE]
      - id: COMPRIMENTO ENCONTRO LAJE
        prompt: Comprimento do encontro laje?
        type: number
        condition:
          operator: equals
          field: TIPO ENCONTRO
          value: ENCONTRO LAJE
`
	s, err := script.LoadFromReader(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadFromReader() error: %v", err)
	}
	qs := s.Flatten()
	if len(qs) != 3 {
		t.Fatalf("got %d questions, want 3", len(qs))
	}
	if qs[0].SectionID != "info" || qs[0].SectionLabel != "Informações" {
		t.Errorf("section provenance not stamped: %q/%q", qs[0].SectionID, qs[0].SectionLabel)
	}
	cond := qs[2].Condition
	if cond == nil || cond.Operator != script.OpEquals || cond.Field != "TIPO ENCONTRO" {
		t.Errorf("condition not decoded: %+v", cond)
	}
}

func TestLoadFromReaderUnknownField(t *testing.T) {
	t.Parallel()

	doc := `
sections:
  - id: info
    label: Info
    questions:
      - id: A
        prompt: A?
        type: text
        bogus: true
`
	if _, err := script.LoadFromReader(strings.NewReader(doc)); err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	t.Parallel()

	s := &script.Script{Sections: []script.Section{
		{
			ID:    "a",
			Label: "A",
			Questions: []script.Question{
				{ID: "X", Prompt: "x?", Type: script.TypeText},
				{ID: "X", Prompt: "dup?", Type: script.TypeText},
				{ID: "Y", Prompt: "y?", Type: "mystery"},
				{ID: "Z", Prompt: "z?", Type: script.TypeSelect},
			},
		},
	}}
	err := script.Validate(s)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	for _, want := range []string{"duplicate question id", "unknown type", "select without options"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestDefaultScriptIsValid(t *testing.T) {
	t.Parallel()

	s := script.Default()
	if err := script.Validate(s); err != nil {
		t.Fatalf("Validate(Default()) error: %v", err)
	}

	byID := make(map[string]script.Question)
	for _, q := range s.Flatten() {
		byID[q.ID] = q
	}
	if q := byID[script.FieldQtdTramos]; q.OnConfirm != script.RuleTramosApoios {
		t.Errorf("%s OnConfirm = %q, want %q", script.FieldQtdTramos, q.OnConfirm, script.RuleTramosApoios)
	}
	if q := byID[script.FieldQtdLongarinas]; q.OnConfirm != script.RuleLongarinas {
		t.Errorf("%s OnConfirm = %q, want %q", script.FieldQtdLongarinas, q.OnConfirm, script.RuleLongarinas)
	}
	if q := byID[script.FieldQtdPilares]; q.SectionID != script.SectionPilares {
		t.Errorf("%s section = %q, want %q", script.FieldQtdPilares, q.SectionID, script.SectionPilares)
	}
}
