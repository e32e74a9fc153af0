package llm

import "context"

// Schema is a minimal JSON-schema description used to constrain structured
// responses. It keeps callers decoupled from any provider SDK types.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
}

// Request describes one model invocation. A nil ResponseSchema yields plain
// text; otherwise the reply is JSON shaped by the schema. UseSearch asks the
// provider to ground the answer with live internet context.
type Request struct {
	Prompt         string
	UseSearch      bool
	ResponseSchema *Schema
}

// Client invokes the hosted language model. One attempt per call; callers
// surface failures to the user as a generic message and never retry.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}
