package ntt

import (
	"time"

	"github.com/montanaflynn/stats"
)

// LatencyStats summarizes repeated-call timing for Multiply as a latency
// distribution rather than a bare min/max/average.
type LatencyStats struct {
	MeanNanos   float64
	P50Nanos    float64
	P99Nanos    float64
	StdDevNanos float64
}

// MultiplyLatencyStats runs Multiply(a, b) `iterations` times and reports the
// wall-clock latency distribution, using montanaflynn/stats in place of
// hand-rolled percentile bookkeeping.
func (e *Engine) MultiplyLatencyStats(a, b []uint64, iterations int) (LatencyStats, error) {
	if iterations <= 0 {
		return LatencyStats{}, nil
	}

	samples := make(stats.Float64Data, iterations)
	for i := 0; i < iterations; i++ {
		start := time.Now()
		if _, err := e.Multiply(a, b); err != nil {
			return LatencyStats{}, err
		}
		samples[i] = float64(time.Since(start).Nanoseconds())
	}

	mean, err := samples.Mean()
	if err != nil {
		return LatencyStats{}, err
	}
	p50, err := samples.Percentile(50)
	if err != nil {
		return LatencyStats{}, err
	}
	p99, err := samples.Percentile(99)
	if err != nil {
		return LatencyStats{}, err
	}
	stdDev, err := samples.StandardDeviation()
	if err != nil {
		return LatencyStats{}, err
	}

	return LatencyStats{
		MeanNanos:   mean,
		P50Nanos:    p50,
		P99Nanos:    p99,
		StdDevNanos: stdDev,
	}, nil
}
