package measure

import (
	"sync"
	"time"
)

// DefaultMetric records the timings of one run.
type DefaultMetric struct {
	mu          *sync.Mutex
	pipelineID  string
	encode      time.Duration
	roundTrip   time.Duration
	decode      time.Duration
	outputCount int
}

func (mt *DefaultMetric) SetEncodeDuration(elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.encode = elapsed
}

func (mt *DefaultMetric) SetRoundTripDuration(elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.roundTrip = elapsed
}

func (mt *DefaultMetric) SetDecodeDuration(elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.decode = elapsed
}

func (mt *DefaultMetric) SetOutputCount(n int) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.outputCount = n
}

func (mt *DefaultMetric) PipelineID() string {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.pipelineID
}

func (mt *DefaultMetric) EncodeDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return round(mt.encode)
}

func (mt *DefaultMetric) RoundTripDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return round(mt.roundTrip)
}

func (mt *DefaultMetric) DecodeDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return round(mt.decode)
}

func (mt *DefaultMetric) OutputCount() int {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.outputCount
}

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Second:
		d = d.Round(time.Second)
	case d > time.Millisecond:
		d = d.Round(time.Millisecond)
	case d > time.Microsecond:
		d = d.Round(time.Microsecond)
	}

	return d
}

var _ Metric = (*DefaultMetric)(nil)
