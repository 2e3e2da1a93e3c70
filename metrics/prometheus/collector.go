package prometheus

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/govq"
	"github.com/hupe1980/govq/raster"
)

// Collector implements govq.MetricsCollector on top of Prometheus vectors.
type Collector struct {
	trainings  *prom.CounterVec
	iterations *prom.HistogramVec
	distortion *prom.GaugeVec
	trainTime  *prom.HistogramVec
	repairs    *prom.CounterVec
	dropped    *prom.CounterVec
	compresses *prom.CounterVec
	compressT  prom.Histogram
}

var _ govq.MetricsCollector = (*Collector)(nil)

// New creates a Collector and registers its metrics with reg. A nil reg
// selects prometheus.DefaultRegisterer. namespace prefixes every metric name.
func New(reg prom.Registerer, namespace string) (*Collector, error) {
	if reg == nil {
		reg = prom.DefaultRegisterer
	}

	c := &Collector{
		trainings: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "trainings_total",
			Help:      "Codebook trainings by channel and status.",
		}, []string{"channel", "status"}),
		iterations: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "training_iterations",
			Help:      "Lloyd steps until convergence.",
			Buckets:   prom.ExponentialBuckets(1, 2, 11),
		}, []string{"channel"}),
		distortion: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "training_final_distortion",
			Help:      "Distortion of the last Lloyd step of the latest training.",
		}, []string{"channel"}),
		trainTime: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "training_duration_seconds",
			Help:      "Wall time of one codebook training.",
			Buckets:   prom.DefBuckets,
		}, []string{"channel"}),
		repairs: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "codeword_repairs_total",
			Help:      "Codewords nudged out of empty clusters.",
		}, []string{"channel"}),
		dropped: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "codewords_dropped_total",
			Help:      "Codewords removed by centroid updates.",
		}, []string{"channel"}),
		compresses: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "compress_total",
			Help:      "Compress calls by status.",
		}, []string{"status"}),
		compressT: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "compress_duration_seconds",
			Help:      "Wall time of one Compress call.",
			Buckets:   prom.DefBuckets,
		}),
	}

	for _, col := range []prom.Collector{
		c.trainings, c.iterations, c.distortion, c.trainTime,
		c.repairs, c.dropped, c.compresses, c.compressT,
	} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// RecordTraining implements govq.MetricsCollector.
func (c *Collector) RecordTraining(ch raster.Channel, iterations int, distortion float64, duration time.Duration, err error) {
	name := ch.String()
	c.trainings.WithLabelValues(name, status(err)).Inc()
	if err != nil {
		return
	}
	c.iterations.WithLabelValues(name).Observe(float64(iterations))
	c.distortion.WithLabelValues(name).Set(distortion)
	c.trainTime.WithLabelValues(name).Observe(duration.Seconds())
}

// RecordRepair implements govq.MetricsCollector.
func (c *Collector) RecordRepair(ch raster.Channel, repaired int) {
	c.repairs.WithLabelValues(ch.String()).Add(float64(repaired))
}

// RecordShrink implements govq.MetricsCollector.
func (c *Collector) RecordShrink(ch raster.Channel, dropped int) {
	c.dropped.WithLabelValues(ch.String()).Add(float64(dropped))
}

// RecordCompress implements govq.MetricsCollector.
func (c *Collector) RecordCompress(_ int, duration time.Duration, err error) {
	c.compresses.WithLabelValues(status(err)).Inc()
	c.compressT.Observe(duration.Seconds())
}
