package script

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads and validates a script document from a YAML file.
func LoadFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("script: open %q: %w", path, err)
	}
	defer f.Close()
	s, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("script: load %q: %w", path, err)
	}
	return s, nil
}

// LoadFromReader decodes and validates a script document from YAML. Unknown
// fields are rejected so that typos in question definitions surface at load
// time instead of as silently missing behavior.
func LoadFromReader(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("script: decode: %w", err)
	}
	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks structural integrity of a script: non-empty sections,
// unique question ids, valid types, options present on selects and condition
// fields referring to questions that exist earlier or later in the script.
// All problems are reported at once.
func Validate(s *Script) error {
	var errs []error
	if len(s.Sections) == 0 {
		errs = append(errs, errors.New("script: no sections defined"))
	}

	ids := make(map[string]bool)
	for _, sec := range s.Sections {
		if sec.ID == "" {
			errs = append(errs, errors.New("script: section with empty id"))
		}
		if len(sec.Questions) == 0 {
			errs = append(errs, fmt.Errorf("script: section %q has no questions", sec.ID))
		}
		for _, q := range sec.Questions {
			if q.ID == "" {
				errs = append(errs, fmt.Errorf("script: section %q: question with empty id", sec.ID))
				continue
			}
			if ids[q.ID] {
				errs = append(errs, fmt.Errorf("script: duplicate question id %q", q.ID))
			}
			ids[q.ID] = true
			if q.Prompt == "" {
				errs = append(errs, fmt.Errorf("script: question %q: empty prompt", q.ID))
			}
			if !q.Type.IsValid() {
				errs = append(errs, fmt.Errorf("script: question %q: unknown type %q", q.ID, q.Type))
			}
			if q.Type == TypeSelect && len(q.Options) == 0 {
				errs = append(errs, fmt.Errorf("script: question %q: select without options", q.ID))
			}
			if q.Dynamic {
				errs = append(errs, fmt.Errorf("script: question %q: dynamic flag not allowed in script files", q.ID))
			}
			if c := q.Condition; c != nil {
				switch c.Operator {
				case OpAnyNotEquals:
					if len(c.Fields) == 0 {
						errs = append(errs, fmt.Errorf("script: question %q: anyNotEquals without fields", q.ID))
					}
				default:
					if c.Field == "" {
						errs = append(errs, fmt.Errorf("script: question %q: condition without field", q.ID))
					}
				}
			}
		}
	}
	return errors.Join(errs...)
}
