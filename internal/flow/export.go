package flow

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/oae-tools/vozform/internal/script"
)

// perIndexKey matches the per-span and per-support answer ids. Any such key
// still present after aggregation (the count answer failed to parse, or
// undercounts the generated questions) must not reach the flat record.
var perIndexKey = regexp.MustCompile(`^(tramo|apoio-(altura|larg|comp))-\d+$`)

// FlatAnswers assembles the collected answers into the flat record format the
// store and exporters consume. Per-span and per-support answers are folded
// into semicolon-joined aggregate fields keyed by the count fields, with "0"
// filling unanswered positions:
//
//	tramo-1..N            -> COMPRIMENTO TRAMOS "10;9;11"
//	apoio-altura-1..N-1   -> ALTURA APOIO
//	apoio-larg-1..N-1     -> LARGURA PILAR
//	apoio-comp-1..N-1     -> COMPRIMENTO PILARES
//
// Per-index keys the count-driven folding did not consume are dropped.
// Boolean fields export as "TRUE"/"FALSE" and the superstructure type
// defaults to "ENGASTADA" when unanswered.
func (e *Engine) FlatAnswers() map[string]string {
	flat := make(map[string]string, len(e.answers))
	for id, v := range e.answers {
		flat[id] = stringify(v)
	}

	n := 0
	if v, ok := flat[script.FieldQtdTramos]; ok {
		if f, fok := parseNumber(v); fok {
			n = int(f)
		}
	}

	if n > 0 {
		vals := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			id := fmt.Sprintf("tramo-%d", i)
			vals = append(vals, orZero(flat, id))
			delete(flat, id)
		}
		flat["COMPRIMENTO TRAMOS"] = strings.Join(vals, ";")
	}

	if n > 1 {
		alturas := make([]string, 0, n-1)
		larguras := make([]string, 0, n-1)
		comprimentos := make([]string, 0, n-1)
		for i := 1; i <= n-1; i++ {
			ha := fmt.Sprintf("apoio-altura-%d", i)
			la := fmt.Sprintf("apoio-larg-%d", i)
			ca := fmt.Sprintf("apoio-comp-%d", i)
			alturas = append(alturas, orZero(flat, ha))
			larguras = append(larguras, orZero(flat, la))
			comprimentos = append(comprimentos, orZero(flat, ca))
			delete(flat, ha)
			delete(flat, la)
			delete(flat, ca)
		}
		flat["ALTURA APOIO"] = strings.Join(alturas, ";")
		flat["LARGURA PILAR"] = strings.Join(larguras, ";")
		flat["COMPRIMENTO PILARES"] = strings.Join(comprimentos, ";")
	}

	for id := range flat {
		if perIndexKey.MatchString(id) {
			delete(flat, id)
		}
	}

	if flat[script.FieldTipoSuper] == "" {
		flat[script.FieldTipoSuper] = "ENGASTADA"
	}

	return flat
}

func orZero(m map[string]string, key string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return "0"
}
