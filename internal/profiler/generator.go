package profiler

import (
	"context"
	"errors"

	"github.com/google/generative-ai-go/genai"
)

var (
	// ErrMissingCredential means the service access key was not set when the call was made.
	ErrMissingCredential = errors.New("generative service credential is not configured")
	// ErrEmptyResponse means the service answered without any text.
	ErrEmptyResponse = errors.New("no content generated")
	// ErrInvalidResponse means the answer was not JSON or violated the declared schema.
	ErrInvalidResponse = errors.New("invalid response from generative service")
)

// Request is one structured-output call to a generative service.
type Request struct {
	System string
	Prompt string
	Schema *Schema
}

// Generator produces a JSON document that should match Request.Schema.
type Generator interface {
	Name() string
	GenerateJSON(ctx context.Context, req Request) (string, error)
}

// SchemaType names a JSON schema type.
type SchemaType string

const (
	TypeString SchemaType = "string"
	TypeNumber SchemaType = "number"
	TypeArray  SchemaType = "array"
	TypeObject SchemaType = "object"
)

// Schema is a provider-neutral description of the expected response.
type Schema struct {
	Type       SchemaType         `json:"type"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Items      *Schema            `json:"items,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

func stringArray() *Schema {
	return &Schema{Type: TypeArray, Items: &Schema{Type: TypeString}}
}

func (s *Schema) genai() *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{Required: s.Required}
	switch s.Type {
	case TypeString:
		out.Type = genai.TypeString
	case TypeNumber:
		out.Type = genai.TypeNumber
	case TypeArray:
		out.Type = genai.TypeArray
	case TypeObject:
		out.Type = genai.TypeObject
	}
	if s.Items != nil {
		out.Items = s.Items.genai()
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = prop.genai()
		}
	}
	return out
}
