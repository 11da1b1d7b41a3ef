package content

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaCache caches compiled schemas by content type.
var schemaCache sync.Map // map[Type]*jsonschema.Schema

// DecodeLesson validates raw against the lesson schema and decodes it.
func DecodeLesson(raw json.RawMessage) (*Lesson, error) {
	if err := validate(TypeLesson, raw); err != nil {
		return nil, err
	}
	var l Lesson
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, &InvalidError{Type: TypeLesson, Payload: raw, Err: err}
	}
	return &l, nil
}

// DecodeExercise validates raw against the exercise schema and decodes it.
func DecodeExercise(raw json.RawMessage) (*Exercise, error) {
	if err := validate(TypeExercise, raw); err != nil {
		return nil, err
	}
	var e Exercise
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, &InvalidError{Type: TypeExercise, Payload: raw, Err: err}
	}
	return &e, nil
}

// validate checks raw JSON against the schema registered for t.
func validate(t Type, raw json.RawMessage) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &InvalidError{Type: t, Payload: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := compiledSchema(t)
	if err != nil {
		return &InvalidError{Type: t, Payload: raw, Err: fmt.Errorf("compile schema: %w", err)}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &InvalidError{Type: t, Payload: raw, Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}

func compiledSchema(t Type) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(t); ok {
		return cached.(*jsonschema.Schema), nil
	}

	var def map[string]any
	switch t {
	case TypeLesson:
		def = lessonSchema
	case TypeExercise:
		def = exerciseSchema
	default:
		return nil, fmt.Errorf("no schema for content type %q", t)
	}

	// The compiler wants a plain decoded JSON value, so round-trip the
	// Go literal through encoding/json.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", t)
	if err := c.AddResource(url, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(t, compiled)
	return compiled, nil
}
