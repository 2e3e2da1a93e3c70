// Package prometheus exports govq training and compression metrics to a
// Prometheus registry.
//
//	reg := prometheus.NewRegistry()
//	mc, err := govqprom.New(reg, "govq")
//	...
//	res, err := govq.Compress(ctx, img, govq.WithMetricsCollector(mc))
package prometheus
