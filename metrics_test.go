package govq

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/govq/raster"
)

func TestBasicMetricsCollector(t *testing.T) {
	var m BasicMetricsCollector

	m.RecordTraining(raster.Gray, 3, 0, 2*time.Millisecond, nil)
	m.RecordTraining(raster.Gray, 5, 0, 4*time.Millisecond, errors.New("boom"))
	m.RecordRepair(raster.Gray, 2)
	m.RecordShrink(raster.Gray, 1)
	m.RecordCompress(1, time.Millisecond, nil)

	stats := m.GetStats()
	assert.Equal(t, int64(2), stats.TrainingCount)
	assert.Equal(t, int64(1), stats.TrainingErrors)
	assert.Equal(t, int64(8), stats.TrainingIterations)
	assert.Equal(t, (3 * time.Millisecond).Nanoseconds(), stats.TrainingAvgNanos)
	assert.Equal(t, int64(2), stats.Repairs)
	assert.Equal(t, int64(1), stats.Dropped)
	assert.Equal(t, int64(1), stats.CompressCount)
	assert.Zero(t, stats.CompressErrors)
}

func TestBasicMetricsCollectorEmpty(t *testing.T) {
	var m BasicMetricsCollector
	assert.Zero(t, m.GetStats().TrainingAvgNanos)
	assert.Zero(t, m.GetStats().CompressAvgNanos)
}
