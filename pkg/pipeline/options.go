package pipeline

import (
	"log/slog"
	"time"

	"github.com/askiada/go-pipeline-client/pkg/pipeline/measure"
)

// Option configures a Pipeline.
type Option func(p *Pipeline)

// WithLogger sets the structured logger used for debug logging around graph
// construction and run submissions.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithMeasure records per-run metrics into the given measure.
func WithMeasure(m measure.Measure) Option {
	return func(p *Pipeline) {
		p.measure = m
	}
}

// WithDefaultTimeout sets the timeout applied to runs that do not specify one.
// Zero keeps the engine waiting indefinitely.
func WithDefaultTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		p.defaultTimeout = d
	}
}
