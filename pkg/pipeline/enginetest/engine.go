// Package enginetest provides an in-memory Engine for tests. It records every
// request it receives and answers from scripted per-port results, so tests
// can assert both what was sent and how responses are demultiplexed.
package enginetest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/askiada/go-pipeline-client/pkg/pipeline"
)

// FakeEngine implements pipeline.Engine without any transport.
type FakeEngine struct {
	mu       sync.Mutex
	requests []*pipeline.RunRequest

	pipelineID string
	results    []pipeline.RunResult
	err        error
	respondFn  func(req *pipeline.RunRequest) (*pipeline.RunResponse, error)
}

// New creates a fake engine that assigns a fresh pipeline id on first use.
func New() *FakeEngine {
	return &FakeEngine{pipelineID: uuid.NewString()}
}

// PipelineID returns the id this engine assigns to submissions.
func (f *FakeEngine) PipelineID() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.pipelineID
}

// ScriptResult queues one (port, message) pair for the next response. Results
// are returned in scripting order, which tests deliberately scramble to
// exercise identity-based matching.
func (f *FakeEngine) ScriptResult(ref pipeline.OutputRef, msg *pipeline.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, pipeline.RunResult{Ref: ref, Message: msg})
}

// ScriptError makes every call fail with the given error.
func (f *FakeEngine) ScriptError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// ScriptResponse installs a full custom responder.
func (f *FakeEngine) ScriptResponse(fn func(req *pipeline.RunRequest) (*pipeline.RunResponse, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.respondFn = fn
}

// RunPipeline records the request and replies with the scripted results. With
// nothing scripted it fabricates a dataframe handle per requested output, the
// way a real engine answers a transform-only graph.
func (f *FakeEngine) RunPipeline(_ context.Context, req *pipeline.RunRequest) (*pipeline.RunResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)

	if f.err != nil {
		return nil, f.err
	}
	if f.respondFn != nil {
		return f.respondFn(req)
	}

	results := f.results
	if results == nil {
		for _, ref := range req.Outputs {
			msg, err := pipeline.DataframeType.Encode(&pipeline.Dataframe{ID: uuid.NewString()})
			if err != nil {
				return nil, err
			}
			results = append(results, pipeline.RunResult{Ref: ref, Message: msg})
		}
	}

	return &pipeline.RunResponse{PipelineID: f.pipelineID, Results: results}, nil
}

// CallCount returns how many requests reached the engine.
func (f *FakeEngine) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.requests)
}

// LastRequest returns the most recent request, or nil.
func (f *FakeEngine) LastRequest() *pipeline.RunRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.requests) == 0 {
		return nil
	}

	return f.requests[len(f.requests)-1]
}

var _ pipeline.Engine = (*FakeEngine)(nil)
