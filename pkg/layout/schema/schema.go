// Package schema validates layout documents against the bundled layout
// schema before any field is read from them.
//
// The schema is versioned and compiled into the binary; it is not user
// editable. A document that fails validation is rejected as a whole.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/matzehuels/stenoboard/pkg/errors"
)

// ID is the schema's identifier; its last path element carries the version.
const ID = "https://github.com/matzehuels/stenoboard/schema/layout-v1.json"

// Version is the layout format version the bundled schema describes.
const Version = 1

//go:embed layout.schema.json
var document []byte

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// Document returns the raw schema document.
func Document() []byte {
	return bytes.Clone(document)
}

func layoutSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft7
		if err := c.AddResource(ID, bytes.NewReader(document)); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(ID)
	})
	return compiled, compileErr
}

// Decode parses data as a single JSON value, keeping numbers exact.
// Trailing content after the value is an error.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidJSON, err, "parse layout")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidJSON, "parse layout: unexpected data after top-level value")
	}
	return v, nil
}

// Validate checks a decoded JSON value against the layout schema.
func Validate(v any) error {
	s, err := layoutSchema()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "compile layout schema")
	}
	if err := s.Validate(v); err != nil {
		return errors.Wrap(errors.ErrCodeSchemaViolation, err, "layout does not match schema v%d", Version)
	}
	return nil
}

// ValidateBytes decodes and validates a raw layout document.
func ValidateBytes(data []byte) error {
	v, err := Decode(data)
	if err != nil {
		return err
	}
	return Validate(v)
}
