package export_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/oae-tools/vozform/internal/export"
	"github.com/oae-tools/vozform/internal/record"
)

var testTime = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func TestFilename(t *testing.T) {
	t.Parallel()

	if got := export.Filename("BR-101-042", "json", testTime); got != "OAE_BR-101-042_2026-08-31.json" {
		t.Errorf("Filename() = %q", got)
	}
	if got := export.Filename("", "csv", testTime); got != "OAE_obra_2026-08-31.csv" {
		t.Errorf("Filename() fallback = %q", got)
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	b := record.FromFlat(map[string]string{
		"CODIGO":             "BR-101-042",
		"COMPRIMENTO TRAMOS": "10;9;11",
	})

	var buf bytes.Buffer
	if err := export.WriteJSON(&buf, []record.Bridge{b}, testTime); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}

	var p export.Payload
	if err := json.Unmarshal(buf.Bytes(), &p); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if p.ExportVersion != "1.0" || p.ExportSource != "vozform" || p.TotalBridges != 1 {
		t.Errorf("payload envelope = %+v", p)
	}
	if p.ExportDate != "2026-08-31T12:00:00Z" {
		t.Errorf("ExportDate = %q", p.ExportDate)
	}
	if len(p.Bridges) != 1 || p.Bridges[0]["COMPRIMENTO TRAMOS"] != "10;9;11" {
		t.Errorf("Bridges = %+v", p.Bridges)
	}
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	b := record.FromFlat(map[string]string{
		"CODIGO": "BR-101-042",
		"NOME":   `Ponte "Nova", BR-101`,
		"ALTURA": "8.5",
	})

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, b); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("CSV has %d lines, want 2:\n%s", len(lines), buf.String())
	}
	if lines[0] != "ALTURA,CODIGO,NOME" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], `"Ponte ""Nova"", BR-101"`) {
		t.Errorf("row quoting = %q", lines[1])
	}
}
