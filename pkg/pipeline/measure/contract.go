package measure

import "time"

// Measure collects per-run metrics for a pipeline.
type Measure interface {
	AddRun(pipelineID string) Metric
	AllMetrics() []Metric
}

// Metric holds the timings of a single run: local encoding, the engine round
// trip, and result decoding.
type Metric interface {
	SetEncodeDuration(elapsed time.Duration)
	SetRoundTripDuration(elapsed time.Duration)
	SetDecodeDuration(elapsed time.Duration)
	SetOutputCount(n int)

	PipelineID() string
	EncodeDuration() time.Duration
	RoundTripDuration() time.Duration
	DecodeDuration() time.Duration
	OutputCount() int
}
