package domain

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// minDescriptionLength is the shortest description accepted for worlds and
// locations.
const minDescriptionLength = 100

type schemaConstraint func(*jsonschema.Schema) error

// mustInputSchema infers the schema for T and applies the constraints that
// struct tags cannot express. It panics on a bad field name.
func mustInputSchema[T any](constraints ...schemaConstraint) *jsonschema.Schema {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		panic(fmt.Sprintf("infer input schema for %T: %v", *new(T), err))
	}
	for _, constrain := range constraints {
		if err := constrain(schema); err != nil {
			panic(fmt.Sprintf("constrain input schema for %T: %v", *new(T), err))
		}
	}
	return schema
}

func property(schema *jsonschema.Schema, field string) (*jsonschema.Schema, error) {
	prop, ok := schema.Properties[field]
	if !ok || prop == nil {
		return nil, fmt.Errorf("unknown property %q", field)
	}
	return prop, nil
}

func minLength(field string, n int) schemaConstraint {
	return func(schema *jsonschema.Schema) error {
		prop, err := property(schema, field)
		if err != nil {
			return err
		}
		prop.MinLength = &n
		return nil
	}
}

func minimum(field string, v float64) schemaConstraint {
	return func(schema *jsonschema.Schema) error {
		prop, err := property(schema, field)
		if err != nil {
			return err
		}
		prop.Minimum = &v
		return nil
	}
}
