package measure

import (
	"sync"
)

// DefaultMeasure is an in-memory Measure safe for concurrent runs.
type DefaultMeasure struct {
	mu   sync.Mutex
	runs []Metric
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{}
}

func (m *DefaultMeasure) AddRun(pipelineID string) Metric {
	mt := &DefaultMetric{
		mu:         &sync.Mutex{},
		pipelineID: pipelineID,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, mt)

	return mt
}

func (m *DefaultMeasure) AllMetrics() []Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Metric, len(m.runs))
	copy(out, m.runs)

	return out
}

var _ Measure = (*DefaultMeasure)(nil)
