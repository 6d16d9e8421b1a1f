package tensorenc

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    packCounter        prometheus.Counter
//	    transformHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordPack(count int, duration time.Duration, err error) {
//	    p.packCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordPack is called after each pack. count is the number of values.
	RecordPack(count int, duration time.Duration, err error)

	// RecordUnpack is called after each unpack. count is the number of
	// values produced.
	RecordUnpack(count int, duration time.Duration, err error)

	// RecordTransform is called after each Hadamard transform of a
	// rows×cols tensor.
	RecordTransform(rows, cols int, duration time.Duration, err error)

	// RecordGenerate is called after each random generation call.
	RecordGenerate(kind string, count int, duration time.Duration, err error)

	// RecordFrame is called after each frame encode or decode. size is the
	// frame length in bytes.
	RecordFrame(size int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordPack(int, time.Duration, error)             {}
func (NoopMetricsCollector) RecordUnpack(int, time.Duration, error)           {}
func (NoopMetricsCollector) RecordTransform(int, int, time.Duration, error)   {}
func (NoopMetricsCollector) RecordGenerate(string, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordFrame(int, time.Duration, error)            {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	PackCount           atomic.Int64
	PackErrors          atomic.Int64
	PackValues          atomic.Int64
	UnpackCount         atomic.Int64
	UnpackErrors        atomic.Int64
	TransformCount      atomic.Int64
	TransformErrors     atomic.Int64
	TransformRows       atomic.Int64
	TransformTotalNanos atomic.Int64
	GenerateCount       atomic.Int64
	GenerateErrors      atomic.Int64
	GenerateValues      atomic.Int64
	FrameCount          atomic.Int64
	FrameErrors         atomic.Int64
	FrameBytes          atomic.Int64
}

// RecordPack implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPack(count int, duration time.Duration, err error) {
	b.PackCount.Add(1)
	if err != nil {
		b.PackErrors.Add(1)
		return
	}
	b.PackValues.Add(int64(count))
}

// RecordUnpack implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUnpack(count int, duration time.Duration, err error) {
	b.UnpackCount.Add(1)
	if err != nil {
		b.UnpackErrors.Add(1)
	}
}

// RecordTransform implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTransform(rows, cols int, duration time.Duration, err error) {
	b.TransformCount.Add(1)
	b.TransformTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.TransformErrors.Add(1)
		return
	}
	b.TransformRows.Add(int64(rows))
}

// RecordGenerate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGenerate(kind string, count int, duration time.Duration, err error) {
	b.GenerateCount.Add(1)
	if err != nil {
		b.GenerateErrors.Add(1)
		return
	}
	b.GenerateValues.Add(int64(count))
}

// RecordFrame implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFrame(size int, duration time.Duration, err error) {
	b.FrameCount.Add(1)
	if err != nil {
		b.FrameErrors.Add(1)
		return
	}
	b.FrameBytes.Add(int64(size))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		PackCount:         b.PackCount.Load(),
		PackErrors:        b.PackErrors.Load(),
		PackValues:        b.PackValues.Load(),
		UnpackCount:       b.UnpackCount.Load(),
		UnpackErrors:      b.UnpackErrors.Load(),
		TransformCount:    b.TransformCount.Load(),
		TransformErrors:   b.TransformErrors.Load(),
		TransformRows:     b.TransformRows.Load(),
		TransformAvgNanos: b.getAvgTransformNanos(),
		GenerateCount:     b.GenerateCount.Load(),
		GenerateErrors:    b.GenerateErrors.Load(),
		GenerateValues:    b.GenerateValues.Load(),
		FrameCount:        b.FrameCount.Load(),
		FrameErrors:       b.FrameErrors.Load(),
		FrameBytes:        b.FrameBytes.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgTransformNanos() int64 {
	count := b.TransformCount.Load()
	if count == 0 {
		return 0
	}
	return b.TransformTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	PackCount         int64
	PackErrors        int64
	PackValues        int64
	UnpackCount       int64
	UnpackErrors      int64
	TransformCount    int64
	TransformErrors   int64
	TransformRows     int64
	TransformAvgNanos int64
	GenerateCount     int64
	GenerateErrors    int64
	GenerateValues    int64
	FrameCount        int64
	FrameErrors       int64
	FrameBytes        int64
}
