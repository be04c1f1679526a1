package workspace

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/arthur-debert/labws/pkg/document"
	"github.com/arthur-debert/labws/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema/code-workspace.schema.json
var workspaceSchema string

const schemaURL = "code-workspace.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(schemaURL, strings.NewReader(workspaceSchema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// Validate checks that doc has the shape of a multi-root workspace.
func Validate(doc *yaml.Node) error {
	schema, err := loadSchema()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "workspace schema does not compile")
	}

	data, err := document.EncodeJSON(doc, 0)
	if err != nil {
		return err
	}
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to decode encoded workspace")
	}

	err = schema.Validate(v)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return errors.Wrap(err, errors.ErrSchemaInvalid, "workspace does not match the schema")
	}

	problems := leafProblems(ve, nil)
	e := errors.Newf(errors.ErrSchemaInvalid, "workspace does not match the schema: %s", strings.Join(problems, "; "))
	if len(ve.Causes) == 0 {
		e.WithDetail("location", ve.InstanceLocation)
	} else {
		e.WithDetail("location", firstLeaf(ve).InstanceLocation)
	}
	return e.WithDetail("problems", len(problems))
}

func leafProblems(ve *jsonschema.ValidationError, acc []string) []string {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return append(acc, fmt.Sprintf("%s: %s", loc, ve.Message))
	}
	for _, c := range ve.Causes {
		acc = leafProblems(c, acc)
	}
	return acc
}

func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}
