package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// Engine is the external collaborator that executes a submitted graph and
// returns tagged per-port results. Implementations own transport, auth and
// timeouts beyond the request-level one.
type Engine interface {
	RunPipeline(ctx context.Context, req *RunRequest) (*RunResponse, error)
}

// Feeds maps input ports to run-time override values. A placeholder's output
// descriptor is accepted as a key and resolved to its input side; any other
// output-direction key is rejected.
type Feeds map[*SlotDescriptor]any

// RunSpec describes one execution: the output ports to fetch, the feeds to
// apply, and an optional timeout. A zero timeout falls back to the pipeline
// default; zero or negative means wait indefinitely.
type RunSpec struct {
	Outputs []*SlotDescriptor
	Feeds   Feeds
	Timeout time.Duration
}

// Run submits the complete current graph to the engine and returns the value
// of every requested output, in the order requested. The engine may return
// results in any order; they are matched back by port identity, never by
// position.
//
// Every call submits the whole graph as a fresh submission: the serialized
// pipeline id is always null, and the id the engine assigns is persisted on
// the pipeline afterwards.
func (p *Pipeline) Run(ctx context.Context, eng Engine, spec RunSpec) ([]any, error) {
	if eng == nil {
		return nil, ErrEngineMustBeSet
	}
	if len(spec.Outputs) == 0 {
		return nil, ErrNoOutputs
	}

	start := time.Now()
	req, err := p.buildRequest(spec)
	if err != nil {
		return nil, err
	}
	encodeElapsed := time.Since(start)

	p.logger.Debug("submitting pipeline",
		"stages", len(req.Pipeline.Stages),
		"outputs", len(req.Outputs),
		"feeds", len(req.Feeds),
	)

	startCall := time.Now()
	resp, err := eng.RunPipeline(ctx, req)
	callElapsed := time.Since(startCall)
	if err != nil {
		return nil, errors.Wrap(err, "unable to run pipeline")
	}

	p.setID(resp.PipelineID)

	startDecode := time.Now()
	values, err := demultiplex(spec.Outputs, resp.Results)
	if err != nil {
		return nil, err
	}

	if p.measure != nil {
		mt := p.measure.AddRun(resp.PipelineID)
		mt.SetEncodeDuration(encodeElapsed)
		mt.SetRoundTripDuration(callElapsed)
		mt.SetDecodeDuration(time.Since(startDecode))
		mt.SetOutputCount(len(values))
	}

	return values, nil
}

// RunOne is the single-output convenience form of Run. The spec's Outputs are
// ignored in favour of the given output; its feeds and timeout apply as usual.
func (p *Pipeline) RunOne(ctx context.Context, eng Engine, output *SlotDescriptor, spec RunSpec) (any, error) {
	spec.Outputs = []*SlotDescriptor{output}
	values, err := p.Run(ctx, eng, spec)
	if err != nil {
		return nil, err
	}

	return values[0], nil
}

// buildRequest validates and serializes everything locally, before any
// network traffic.
func (p *Pipeline) buildRequest(spec RunSpec) (*RunRequest, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	refs := make([]OutputRef, 0, len(spec.Outputs))
	for _, o := range spec.Outputs {
		if o == nil || o.IsInput() {
			return nil, errors.Wrapf(ErrNotOutput, "requested output %v", o)
		}
		if !p.Contains(o.Stage()) {
			return nil, errors.Wrapf(ErrDetached, "requested output %v", o)
		}
		refs = append(refs, o.ToWire())
	}

	feeds := make(map[string]*Message, len(spec.Feeds))
	for key, v := range spec.Feeds {
		d, err := p.resolveFeedKey(key)
		if err != nil {
			return nil, err
		}
		t := d.MessageType()
		if !t.IsValid(v) {
			return nil, errors.Wrapf(ErrInvalidValue, "feed for slot %s rejects value of type %T", d.FullName(), v)
		}
		msg, err := t.Encode(v)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to encode feed for slot %s", d.FullName())
		}
		feeds[d.FullName()] = msg
	}

	wire, err := p.ToWire()
	if err != nil {
		return nil, err
	}
	// the engine must treat every run as a fresh submission
	wire.ID = nil

	timeout := spec.Timeout
	if timeout == 0 {
		timeout = p.defaultTimeout
	}
	seconds := timeout.Seconds()
	if seconds <= 0 {
		seconds = -1
	}

	return &RunRequest{
		Pipeline: wire,
		Feeds:    feeds,
		Outputs:  refs,
		Timeout:  seconds,
	}, nil
}

// resolveFeedKey normalizes a feed key to the input slot it fills. Feeds
// always key by input slot full name on the wire; the output side of a
// passthrough stage is translated to its input side as a convenience.
func (p *Pipeline) resolveFeedKey(d *SlotDescriptor) (*SlotDescriptor, error) {
	if d == nil {
		return nil, errors.Wrap(ErrNotInput, "nil feed key")
	}
	if !d.IsInput() {
		slot, ok := d.Stage().schema.valueInput()
		if !ok {
			return nil, errors.Wrapf(ErrNotInput, "feed key %v", d)
		}
		d = d.Stage().MustInput(slot.Name)
	}
	if !p.Contains(d.Stage()) {
		return nil, errors.Wrapf(ErrDetached, "feed key %v", d)
	}

	return d, nil
}

// demultiplex matches the tagged results back to the requested ports, in the
// original request order, and decodes each through its port's declared type so
// a mistyped result is caught as a protocol violation.
func demultiplex(outputs []*SlotDescriptor, results []RunResult) ([]any, error) {
	if len(results) != len(outputs) {
		return nil, errors.Wrapf(ErrProtocol, "requested %d outputs, engine returned %d results", len(outputs), len(results))
	}

	values := make([]any, 0, len(outputs))
	for _, o := range outputs {
		ref := o.ToWire()

		var (
			msg   *Message
			found bool
		)
		for _, r := range results {
			if r.Ref == ref {
				msg = r.Message
				found = true

				break
			}
		}
		if !found {
			return nil, errors.Wrapf(ErrProtocol, "no result for output %s:%s", ref.StageName, ref.OutputName)
		}

		v, err := o.MessageType().DecodeAs(msg)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to decode result for output %s:%s", ref.StageName, ref.OutputName)
		}
		values = append(values, v)
	}

	return values, nil
}
