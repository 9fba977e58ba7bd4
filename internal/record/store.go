// Package record persists completed inspection records.
//
// A record is the flat field map produced at the end of an interview, keyed
// by the work's unique code. Stores do whole-record upserts: the interview
// loop exports a full snapshot, never partial field updates.
package record

import (
	"context"
	"errors"
	"time"
)

// CodeField is the flat field holding a record's unique key.
const CodeField = "CODIGO"

// ErrNotFound is returned by Get and Delete when no record has the requested
// code.
var ErrNotFound = errors.New("record not found")

// ErrMissingCode is returned by Upsert when the record has no code field.
var ErrMissingCode = errors.New("record has no " + CodeField + " field")

// Bridge is one stored inspection record.
type Bridge struct {
	// Code is the unique work code, mirrored from Fields[CodeField].
	Code string `json:"code"`

	// Fields is the flat field map exported by the interview engine.
	Fields map[string]string `json:"fields"`

	// CreatedAt and UpdatedAt are maintained by the store.
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromFlat builds a Bridge from an exported flat field map.
func FromFlat(fields map[string]string) Bridge {
	return Bridge{Code: fields[CodeField], Fields: fields}
}

// Store persists inspection records.
//
// All implementations must be safe for concurrent use.
type Store interface {
	// Upsert inserts the record or fully replaces the stored one with the
	// same code. Returns [ErrMissingCode] when b.Code is empty.
	Upsert(ctx context.Context, b Bridge) error

	// Get retrieves a record by code.
	// Returns [ErrNotFound] when no record with that code exists.
	Get(ctx context.Context, code string) (Bridge, error)

	// List returns all records ordered by code.
	List(ctx context.Context) ([]Bridge, error)

	// Delete removes a record by code.
	// Returns [ErrNotFound] when no record with that code exists.
	Delete(ctx context.Context, code string) error
}
