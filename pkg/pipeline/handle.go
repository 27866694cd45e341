package pipeline

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// The engine computes dataframes, models, samples and column expressions
// remotely; the client only ever holds a handle carrying the identifier the
// engine knows the value by. The handles are deliberately opaque.

// Dataframe is a handle on a tabular result held by the engine.
type Dataframe struct {
	ID string
}

type dataframePayload struct {
	DfID string `json:"dfId"`
}

func (d *Dataframe) toWire() ([]byte, error) {
	return json.Marshal(dataframePayload{DfID: d.ID})
}

// DataframeFromWire rebuilds a dataframe handle from its wire payload.
func DataframeFromWire(payload json.RawMessage) (*Dataframe, error) {
	var p dataframePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, errors.Wrap(err, "unable to decode dataframe payload")
	}

	return &Dataframe{ID: p.DfID}, nil
}

// Model is a handle on a trained model held by the engine, along with the
// training inputs and metadata the engine reported.
type Model struct {
	ID       string
	Inputs   map[string]any
	Metadata map[string]any
}

type modelPayload struct {
	ModelID  string         `json:"modelId"`
	Inputs   map[string]any `json:"inputs,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (m *Model) toWire() ([]byte, error) {
	return json.Marshal(modelPayload{ModelID: m.ID, Inputs: m.Inputs, Metadata: m.Metadata})
}

// ModelFromWire rebuilds a model handle from its wire payload.
func ModelFromWire(payload json.RawMessage) (*Model, error) {
	var p modelPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, errors.Wrap(err, "unable to decode model payload")
	}

	return &Model{ID: p.ModelID, Inputs: p.Inputs, Metadata: p.Metadata}, nil
}

// Sample is a materialized slice of a dataframe: the schema and rows as the
// engine serialized them. The client does not interpret either.
type Sample struct {
	Schema json.RawMessage
	Data   json.RawMessage
}

type samplePayload struct {
	Schema json.RawMessage `json:"schema"`
	Data   json.RawMessage `json:"data"`
}

func (s *Sample) toWire() ([]byte, error) {
	return json.Marshal(samplePayload{Schema: s.Schema, Data: s.Data})
}

// SampleFromWire rebuilds a sample from its wire payload.
func SampleFromWire(payload json.RawMessage) (*Sample, error) {
	var p samplePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, errors.Wrap(err, "unable to decode sample payload")
	}

	return &Sample{Schema: p.Schema, Data: p.Data}, nil
}

// Column is a handle on a column expression. The expression tree is engine
// territory and travels as raw JSON.
type Column struct {
	Name string
	Expr json.RawMessage
}

type columnPayload struct {
	Name string          `json:"name"`
	Expr json.RawMessage `json:"expr"`
}

func (c *Column) toWire() ([]byte, error) {
	return json.Marshal(columnPayload{Name: c.Name, Expr: c.Expr})
}

// ColumnFromWire rebuilds a column handle from its wire payload.
func ColumnFromWire(payload json.RawMessage) (*Column, error) {
	var p columnPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, errors.Wrap(err, "unable to decode column payload")
	}

	return &Column{Name: p.Name, Expr: p.Expr}, nil
}
