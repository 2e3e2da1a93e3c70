package govq

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/govq/raster"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; package
// metrics/prometheus provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordTraining is called once per channel after training.
	// iterations is the number of Lloyd steps, distortion the last step
	// distortion; err is nil if successful.
	RecordTraining(ch raster.Channel, iterations int, distortion float64, duration time.Duration, err error)

	// RecordRepair is called for every repair pass that nudged codewords.
	RecordRepair(ch raster.Channel, repaired int)

	// RecordShrink is called when a centroid update drops codewords.
	RecordShrink(ch raster.Channel, dropped int)

	// RecordCompress is called after each Compress call.
	RecordCompress(channels int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordTraining(raster.Channel, int, float64, time.Duration, error) {}
func (NoopMetricsCollector) RecordRepair(raster.Channel, int)                                  {}
func (NoopMetricsCollector) RecordShrink(raster.Channel, int)                                  {}
func (NoopMetricsCollector) RecordCompress(int, time.Duration, error)                          {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	TrainingCount      atomic.Int64
	TrainingErrors     atomic.Int64
	TrainingIterations atomic.Int64
	TrainingTotalNanos atomic.Int64
	Repairs            atomic.Int64
	Dropped            atomic.Int64
	CompressCount      atomic.Int64
	CompressErrors     atomic.Int64
	CompressTotalNanos atomic.Int64
}

// RecordTraining implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTraining(_ raster.Channel, iterations int, _ float64, duration time.Duration, err error) {
	b.TrainingCount.Add(1)
	b.TrainingIterations.Add(int64(iterations))
	b.TrainingTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.TrainingErrors.Add(1)
	}
}

// RecordRepair implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRepair(_ raster.Channel, repaired int) {
	b.Repairs.Add(int64(repaired))
}

// RecordShrink implements MetricsCollector.
func (b *BasicMetricsCollector) RecordShrink(_ raster.Channel, dropped int) {
	b.Dropped.Add(int64(dropped))
}

// RecordCompress implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCompress(_ int, duration time.Duration, err error) {
	b.CompressCount.Add(1)
	b.CompressTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.CompressErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		TrainingCount:      b.TrainingCount.Load(),
		TrainingErrors:     b.TrainingErrors.Load(),
		TrainingIterations: b.TrainingIterations.Load(),
		TrainingAvgNanos:   avg(b.TrainingTotalNanos.Load(), b.TrainingCount.Load()),
		Repairs:            b.Repairs.Load(),
		Dropped:            b.Dropped.Load(),
		CompressCount:      b.CompressCount.Load(),
		CompressErrors:     b.CompressErrors.Load(),
		CompressAvgNanos:   avg(b.CompressTotalNanos.Load(), b.CompressCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	TrainingCount      int64
	TrainingErrors     int64
	TrainingIterations int64
	TrainingAvgNanos   int64
	Repairs            int64
	Dropped            int64
	CompressCount      int64
	CompressErrors     int64
	CompressAvgNanos   int64
}
