package pipeline

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"

	"github.com/askiada/go-pipeline-client/internal/store"
	"github.com/askiada/go-pipeline-client/pkg/pipeline/measure"
)

// Pipeline is an ordered, uniquely named collection of stages forming the
// computation graph handed to the execution engine.
//
// Construction is plain and synchronous; a Pipeline is not safe for concurrent
// mutation. The engine-assigned id is guarded so concurrent Run calls over a
// finished graph (see RunBatch) stay safe.
type Pipeline struct {
	mu     sync.Mutex
	id     string
	stages []*Stage

	logger         *slog.Logger
	measure        measure.Measure
	defaultTimeout time.Duration
}

// New creates an empty pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// ID returns the engine-assigned pipeline id, empty until the first successful
// run. The id is opaque.
func (p *Pipeline) ID() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.id
}

func (p *Pipeline) setID(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.id = id
}

// Stages returns the stages in insertion order.
func (p *Pipeline) Stages() []*Stage {
	out := make([]*Stage, len(p.stages))
	copy(out, p.stages)

	return out
}

// Contains reports whether the given stage instance was added to this
// pipeline.
func (p *Pipeline) Contains(s *Stage) bool {
	for _, st := range p.stages {
		if st == s {
			return true
		}
	}

	return false
}

// ContainsName reports whether a stage with the given name was added to this
// pipeline.
func (p *Pipeline) ContainsName(name string) bool {
	for _, st := range p.stages {
		if st.Name() == name {
			return true
		}
	}

	return false
}

// Stage returns the stage with the given name.
func (p *Pipeline) Stage(name string) (*Stage, error) {
	for _, st := range p.stages {
		if st.Name() == name {
			return st, nil
		}
	}

	return nil, errors.Wrapf(ErrStageNotFound, "%q", name)
}

// Add places a stage into the pipeline. Adding the same stage instance twice
// is a no-op. An unnamed stage receives a generated name of the form
// "<lowercased class>_<n>" for the smallest unused n; an explicit name that is
// already taken is an error.
func (p *Pipeline) Add(s *Stage) (*Stage, error) {
	if p.Contains(s) {
		return s, nil
	}

	name := s.Name()
	if name == "" {
		name = p.nextName(s.Class())
		if err := s.SetName(name); err != nil {
			return nil, errors.Wrap(err, "unable to name stage")
		}
	} else if p.ContainsName(name) {
		return nil, errors.Wrapf(ErrDuplicateStage, "%q", name)
	}

	p.stages = append(p.stages, s)
	p.logger.Debug("stage added", "name", name, "class", s.Class())

	return s, nil
}

func (p *Pipeline) nextName(class string) string {
	prefix := strings.ToLower(class)
	for n := 0; ; n++ {
		name := fmt.Sprintf("%s_%d", prefix, n)
		if !p.ContainsName(name) {
			return name
		}
	}
}

// ToWire serializes the full graph in insertion order.
func (p *Pipeline) ToWire() (*PipelineWire, error) {
	wire := &PipelineWire{Stages: make([]*StageWire, 0, len(p.stages))}
	if id := p.ID(); id != "" {
		wire.ID = &id
	}
	for _, st := range p.stages {
		sw, err := st.ToWire()
		if err != nil {
			return nil, errors.Wrapf(err, "unable to serialize stage %q", st.Name())
		}
		wire.Stages = append(wire.Stages, sw)
	}

	return wire, nil
}

// edge is one data dependency between two stages of this pipeline.
type edge struct {
	from, to string
	kindTag  string
}

// edges walks every bound input and collects the descriptor bindings. A
// descriptor pointing at a stage outside the pipeline is an error.
func (p *Pipeline) edges() ([]edge, error) {
	var out []edge
	for _, st := range p.stages {
		for _, slot := range st.schema.inputs {
			d, ok := st.values[slot.Name].(*SlotDescriptor)
			if !ok {
				continue
			}
			if !p.Contains(d.Stage()) {
				return nil, errors.Wrapf(ErrDetached, "stage %q wires to %v", st.Name(), d)
			}
			out = append(out, edge{
				from:    d.ParentName(),
				to:      st.Name(),
				kindTag: d.MessageType().Kind.Tag(),
			})
		}
	}

	return out, nil
}

// Validate checks the wiring of the graph: every referenced stage belongs to
// the pipeline and the dependency graph is acyclic. Cycles are rejected client
// side rather than submitted.
func (p *Pipeline) Validate() error {
	edges, err := p.edges()
	if err != nil {
		return err
	}

	cs := store.NewMemoryStore[string, *Stage]()
	g := graph.NewWithStore(stageHash, cs, graph.Directed())

	for _, st := range p.stages {
		if err := g.AddVertex(st); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
			return errors.Wrapf(err, "unable to add stage %q", st.Name())
		}
	}
	for _, e := range edges {
		creates, err := cs.CreatesCycle(e.from, e.to)
		if err != nil {
			return errors.Wrapf(err, "unable to check edge from %q to %q", e.from, e.to)
		}
		if creates {
			return errors.Wrapf(ErrCycle, "edge from %q to %q", e.from, e.to)
		}
		if err := g.AddEdge(e.from, e.to); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
			return errors.Wrapf(err, "unable to add edge from %q to %q", e.from, e.to)
		}
	}

	return nil
}

func stageHash(s *Stage) string { return s.Name() }
