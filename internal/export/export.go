// Package export writes completed inspection records in the interchange
// formats of the surveying application: a versioned JSON payload holding one
// or more records, and a one-record CSV of flat fields.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/oae-tools/vozform/internal/record"
)

const (
	// Version is the payload format version stamped into JSON exports.
	Version = "1.0"

	// Source identifies this application in exported payloads.
	Source = "vozform"
)

// Payload is the JSON export envelope. Field names are part of the import
// contract of the consuming application and must not change.
type Payload struct {
	ExportDate    string              `json:"ExportDate"`
	ExportVersion string              `json:"ExportVersion"`
	ExportSource  string              `json:"ExportSource"`
	TotalBridges  int                 `json:"TotalBridges"`
	Bridges       []map[string]string `json:"Bridges"`
}

// Filename builds the conventional export file name for a record:
// OAE_<code>_<yyyy-mm-dd>.<ext>. An empty code falls back to "obra".
func Filename(code, ext string, now time.Time) string {
	if code == "" {
		code = "obra"
	}
	return fmt.Sprintf("OAE_%s_%s.%s", code, now.UTC().Format("2006-01-02"), ext)
}

// WriteJSON writes the records as an indented JSON payload.
func WriteJSON(w io.Writer, bridges []record.Bridge, now time.Time) error {
	p := Payload{
		ExportDate:    now.UTC().Format(time.RFC3339),
		ExportVersion: Version,
		ExportSource:  Source,
		TotalBridges:  len(bridges),
		Bridges:       make([]map[string]string, 0, len(bridges)),
	}
	for _, b := range bridges {
		p.Bridges = append(p.Bridges, b.Fields)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("export: write json: %w", err)
	}
	return nil
}

// WriteCSV writes one record as a two-line CSV: a header of field names and a
// row of values, columns sorted by field name so the output is stable.
func WriteCSV(w io.Writer, b record.Bridge) error {
	keys := make([]string, 0, len(b.Fields))
	for k := range b.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([]string, len(keys))
	for i, k := range keys {
		values[i] = b.Fields[k]
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(keys); err != nil {
		return fmt.Errorf("export: write csv header: %w", err)
	}
	if err := cw.Write(values); err != nil {
		return fmt.Errorf("export: write csv row: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: write csv: %w", err)
	}
	return nil
}
