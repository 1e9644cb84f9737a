// Package openapi exports page form schemas as an OpenAPI 3 document: one
// component schema per form and a POST operation per form route.
package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-eventforms/pkg/model"
	"github.com/goliatone/go-eventforms/pkg/pages"
)

// Extension keys carried on exported schemas.
const (
	ExtFutureDate = "x-future-date"
	ExtMessages   = "x-messages"
	ExtFormat     = "x-format"
)

// Shared component names.
const (
	ResultSchema = "SubmissionResult"
	ErrorsSchema = "ValidationErrors"
)

// Option configures an export.
type Option func(*exporter)

type exporter struct {
	title   string
	version string
	servers []string
}

// WithInfo sets the document title and version.
func WithInfo(title, version string) Option {
	return func(e *exporter) {
		if title != "" {
			e.title = title
		}
		if version != "" {
			e.version = version
		}
	}
}

// WithServer adds a server URL.
func WithServer(url string) Option {
	return func(e *exporter) {
		if url != "" {
			e.servers = append(e.servers, url)
		}
	}
}

// Document builds and validates the OpenAPI document for the given pages.
// Static pages are skipped.
func Document(ctx context.Context, list []pages.Page, options ...Option) (*openapi3.T, error) {
	e := &exporter{title: "Event forms", version: "1.0.0"}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info:    &openapi3.Info{Title: e.title, Version: e.version},
		Paths:   openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				ResultSchema: openapi3.NewSchemaRef("", resultSchema()),
				ErrorsSchema: openapi3.NewSchemaRef("", errorsSchema()),
			},
		},
	}
	for _, url := range e.servers {
		doc.Servers = append(doc.Servers, &openapi3.Server{URL: url})
	}

	exported := 0
	for _, page := range list {
		if page.Static() {
			continue
		}
		schema := *page.Schema
		if err := schema.Check(); err != nil {
			return nil, fmt.Errorf("openapi: %w", err)
		}
		doc.Components.Schemas[schema.ID] = openapi3.NewSchemaRef("", FormSchema(schema))
		doc.Paths.Set(page.Route, &openapi3.PathItem{Post: operation(schema)})
		exported++
	}
	if exported == 0 {
		return nil, errors.New("openapi: no form pages to export")
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	return doc, nil
}

// FormSchema converts a form declaration into an object schema.
func FormSchema(form model.FormSchema) *openapi3.Schema {
	obj := openapi3.NewObjectSchema()
	obj.Title = form.Title
	for _, field := range form.Fields {
		obj.WithProperty(field.Name, FieldSchema(field))
		if field.Mandatory() {
			obj.Required = append(obj.Required, field.Name)
		}
	}
	return obj
}

// FieldSchema converts one field, mapping constraints to their JSON Schema
// keywords and keeping the inline messages under x-messages.
func FieldSchema(field model.Field) *openapi3.Schema {
	var s *openapi3.Schema
	switch field.Type {
	case model.FieldTypeInteger:
		s = openapi3.NewInt64Schema()
	case model.FieldTypeNumber:
		s = openapi3.NewFloat64Schema()
	case model.FieldTypeDate:
		s = openapi3.NewDateTimeSchema()
	default:
		s = openapi3.NewStringSchema()
	}
	s.Title = field.DisplayLabel()
	s.Description = field.Description

	messages := make(map[string]any)
	for _, c := range field.Constraints {
		switch c.Kind {
		case model.ConstraintMinLength:
			s.WithMinLength(int64(c.Length))
		case model.ConstraintMaxLength:
			s.WithMaxLength(int64(c.Length))
		case model.ConstraintNumericMin:
			s.WithMin(c.Min)
		case model.ConstraintFutureDate:
			s.Extensions = setExtension(s.Extensions, ExtFutureDate, true)
		}
		if _, seen := messages[string(c.Kind)]; !seen {
			messages[string(c.Kind)] = c.Describe()
		}
	}
	if len(messages) > 0 {
		s.Extensions = setExtension(s.Extensions, ExtMessages, messages)
	}
	if field.Format != "" {
		s.Extensions = setExtension(s.Extensions, ExtFormat, field.Format)
	}

	if len(field.Enum) > 0 {
		values := make([]any, 0, len(field.Enum))
		for _, v := range field.Enum {
			values = append(values, v)
		}
		s.WithEnum(values...)
	}
	if def := exportDefault(field); def != nil {
		s.Default = def
	}
	return s
}

func setExtension(ext map[string]any, key string, value any) map[string]any {
	if ext == nil {
		ext = make(map[string]any)
	}
	ext[key] = value
	return ext
}

// exportDefault drops empty defaults and widens integers so the default
// validates against its own schema.
func exportDefault(field model.Field) any {
	switch v := field.Default.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return v
	}
}

func operation(form model.FormSchema) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = "submit-" + form.ID
	op.Summary = form.SubmitLabel
	op.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().
			WithRequired(true).
			WithJSONSchemaRef(componentRef(form.ID)),
	}
	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription("Submission accepted").
				WithJSONSchemaRef(componentRef(ResultSchema)),
		}),
		openapi3.WithStatus(422, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription("Field validation failed").
				WithJSONSchemaRef(componentRef(ErrorsSchema)),
		}),
		openapi3.WithStatus(502, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription("Action failed").
				WithJSONSchemaRef(componentRef(ResultSchema)),
		}),
	)
	return op
}

func componentRef(name string) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("#/components/schemas/"+name, nil)
}

func resultSchema() *openapi3.Schema {
	status := openapi3.NewStringSchema().WithEnum("success", "validation_failed", "action_failed")
	obj := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewUUIDSchema()).
		WithProperty("status", status).
		WithProperty("title", openapi3.NewStringSchema()).
		WithProperty("message", openapi3.NewStringSchema()).
		WithProperty("redirect", openapi3.NewStringSchema())
	obj.Required = []string{"id", "status"}
	return obj
}

func errorsSchema() *openapi3.Schema {
	item := openapi3.NewObjectSchema().
		WithProperty("field", openapi3.NewStringSchema()).
		WithProperty("message", openapi3.NewStringSchema())
	item.Required = []string{"field", "message"}
	obj := openapi3.NewObjectSchema().
		WithProperty("errors", openapi3.NewArraySchema().WithItems(item))
	obj.Required = []string{"errors"}
	return obj
}

// MarshalJSON renders the document as indented JSON.
func MarshalJSON(doc *openapi3.T) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("openapi: document is nil")
	}
	return json.MarshalIndent(doc, "", "  ")
}

// MarshalYAML renders the document as YAML with sorted keys.
func MarshalYAML(doc *openapi3.T) ([]byte, error) {
	raw, err := MarshalJSON(doc)
	if err != nil {
		return nil, err
	}
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("openapi: decode json: %w", err)
	}
	return yaml.Marshal(generic)
}
