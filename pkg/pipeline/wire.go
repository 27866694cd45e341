package pipeline

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Message is the tagged wire form of a slot value: a two-element JSON array
// holding the kind tag and the kind-specific payload.
type Message struct {
	Tag     string
	Payload json.RawMessage
}

// MarshalJSON encodes the message as ["<tag>", <payload>].
func (m Message) MarshalJSON() ([]byte, error) {
	payload := m.Payload
	if payload == nil {
		payload = json.RawMessage("null")
	}

	b, err := json.Marshal([]json.RawMessage{mustMarshal(m.Tag), payload})
	if err != nil {
		return nil, errors.Wrap(err, "unable to marshal message")
	}

	return b, nil
}

// UnmarshalJSON decodes the ["<tag>", <payload>] pair.
func (m *Message) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return errors.Wrap(err, "unable to unmarshal message")
	}
	if len(parts) != 2 {
		return errors.Wrapf(ErrProtocol, "message must have 2 elements, got %d", len(parts))
	}
	if err := json.Unmarshal(parts[0], &m.Tag); err != nil {
		return errors.Wrap(err, "unable to unmarshal message tag")
	}
	m.Payload = parts[1]

	return nil
}

func mustMarshal(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}

	return b
}

// OutputRef identifies one output port of one stage on the wire.
type OutputRef struct {
	StageName  string `json:"stageName"`
	OutputName string `json:"outputName"`
}

// StageWire is the serialized form of a single stage.
type StageWire struct {
	Name       string              `json:"name"`
	StageClass string              `json:"stageClass"`
	Inputs     map[string]*Message `json:"inputs"`
	Outputs    map[string]*Message `json:"outputs"`
}

// PipelineWire is the serialized form of a full pipeline. The id is null until
// the engine has assigned one.
type PipelineWire struct {
	ID     *string      `json:"id"`
	Stages []*StageWire `json:"stages"`
}

// RunRequest is the body of a pipeline execution request. Timeout is in
// seconds; a negative value means wait indefinitely.
type RunRequest struct {
	Pipeline *PipelineWire       `json:"pipeline"`
	Feeds    map[string]*Message `json:"feeds"`
	Outputs  []OutputRef         `json:"outputs"`
	Timeout  float64             `json:"timeout"`
}

// RunResult is one (port, tagged value) pair of an execution response,
// serialized as a two-element JSON array.
type RunResult struct {
	Ref     OutputRef
	Message *Message
}

func (r RunResult) MarshalJSON() ([]byte, error) {
	ref, err := json.Marshal(r.Ref)
	if err != nil {
		return nil, errors.Wrap(err, "unable to marshal result ref")
	}
	msg, err := json.Marshal(r.Message)
	if err != nil {
		return nil, errors.Wrap(err, "unable to marshal result message")
	}

	b, err := json.Marshal([]json.RawMessage{ref, msg})
	if err != nil {
		return nil, errors.Wrap(err, "unable to marshal result")
	}

	return b, nil
}

func (r *RunResult) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return errors.Wrap(err, "unable to unmarshal result")
	}
	if len(parts) != 2 {
		return errors.Wrapf(ErrProtocol, "result must have 2 elements, got %d", len(parts))
	}
	if err := json.Unmarshal(parts[0], &r.Ref); err != nil {
		return errors.Wrap(err, "unable to unmarshal result ref")
	}
	if err := json.Unmarshal(parts[1], &r.Message); err != nil {
		return errors.Wrap(err, "unable to unmarshal result message")
	}

	return nil
}

// RunResponse is the engine's answer to a RunRequest. Results are not required
// to preserve the request order.
type RunResponse struct {
	PipelineID string      `json:"pipelineId"`
	Results    []RunResult `json:"results"`
}
