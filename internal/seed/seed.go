// Package seed loads sample signatures for a fresh database.
//
// Seed entries use the same field names as the signature form and go through
// the same validation and sanitization before they are stored.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/JonMunkholm/petition/internal/core"
	"gopkg.in/yaml.v3"
)

//go:embed signatures.yaml
var defaultSeed []byte

// Entry is one seed signature as written in the YAML file.
type Entry struct {
	Name       string `yaml:"name"`
	NationalID string `yaml:"nationalId"`
	Comment    string `yaml:"comment"`
	ALista     string `yaml:"aLista"`
}

type file struct {
	Signatures []Entry `yaml:"signatures"`
}

// Default returns the embedded sample entries.
func Default() ([]Entry, error) {
	return Parse(bytes.NewReader(defaultSeed))
}

// Parse reads seed entries from r. Unknown keys are rejected.
func Parse(r io.Reader) ([]Entry, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return f.Signatures, nil
}

func (e Entry) values() url.Values {
	return url.Values{
		core.FieldName:       {e.Name},
		core.FieldNationalID: {e.NationalID},
		core.FieldComment:    {e.Comment},
		core.FieldALista:     {e.ALista},
	}
}

// Load submits every entry through svc. It stops at the first entry that is
// invalid or cannot be stored and returns how many were stored before it.
func Load(ctx context.Context, svc *core.Service, entries []Entry) (int, error) {
	for i, e := range entries {
		sub, err := svc.Submit(ctx, e.values())
		if err != nil {
			return i, fmt.Errorf("seed entry %d: %w", i+1, err)
		}
		if sub.Stage == core.StageInvalid {
			return i, fmt.Errorf("seed entry %d (%q): %w", i+1, e.Name, errors.Join(validationErrs(sub.Errors)...))
		}
	}
	return len(entries), nil
}

func validationErrs(errs []core.ValidationError) []error {
	out := make([]error, len(errs))
	for i, e := range errs {
		out[i] = e
	}
	return out
}
