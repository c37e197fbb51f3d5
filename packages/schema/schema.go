// Package schema generates the JSON Schema of the docsite descriptor and
// validates raw config documents against it before they are decoded.
package schema

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/abdul-hamid-achik/docsite/packages/core/config"
	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

const (
	// ID is the canonical identifier of the generated schema.
	ID = "https://github.com/abdul-hamid-achik/docsite/docsite.schema.json"

	draft07 = "http://json-schema.org/draft-07/schema#"
)

var (
	compileOnce sync.Once
	compiled    *gojsonschema.Schema
	compileErr  error
)

// Generate reflects the descriptor types into a JSON Schema document.
func Generate() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}
	s := r.Reflect(&config.SiteConfig{})

	s.Version = draft07
	s.ID = jsonschema.ID(ID)
	s.Title = "docsite configuration"
	s.Description = "Site Configuration Descriptor consumed by the docsite build"
	return s
}

// JSON returns the indented schema document.
func JSON() ([]byte, error) {
	data, err := json.MarshalIndent(Generate(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return append(data, '\n'), nil
}

func compile() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		data, err := JSON()
		if err != nil {
			compileErr = err
			return
		}
		compiled, compileErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if compileErr != nil {
			compileErr = fmt.Errorf("failed to compile schema: %w", compileErr)
		}
	})
	return compiled, compileErr
}

// Validate checks a raw YAML or JSON document against the schema. Violations
// are returned as a *config.ConfigurationError; a document that cannot be
// parsed at all is also a configuration error.
func Validate(data []byte, format config.Format) error {
	doc, err := decode(data, format)
	if err != nil {
		return &config.ConfigurationError{Err: err}
	}

	s, err := compile()
	if err != nil {
		return err
	}

	result, err := s.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	violations := make([]config.Violation, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		violations = append(violations, config.Violation{
			Field:   re.Field(),
			Value:   re.Value(),
			Message: re.Description(),
		})
	}
	return &config.ConfigurationError{Violations: violations}
}

func decode(data []byte, format config.Format) (any, error) {
	var doc any
	switch format {
	case config.FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case config.FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	if doc == nil {
		return nil, fmt.Errorf("empty configuration document")
	}
	return doc, nil
}
