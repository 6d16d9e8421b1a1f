package tensorenc

import (
	"context"
	"io"
	"time"

	"github.com/hupe1980/tensorenc/bitpack"
	"github.com/hupe1980/tensorenc/frame"
	"github.com/hupe1980/tensorenc/hadamard"
	"github.com/hupe1980/tensorenc/random"
	"github.com/hupe1980/tensorenc/resource"
	"github.com/hupe1980/tensorenc/tensor"
)

// Toolkit forwards to the encoding primitives and records every call with
// its logger and metrics collector. It is safe for concurrent use.
//
// Go methods cannot take type parameters, so the typed operations are
// package functions taking the Toolkit as their second argument.
type Toolkit struct {
	opts options
}

// New creates a Toolkit. Without options it logs nothing, records nothing
// and imposes no resource limits.
func New(optFns ...Option) *Toolkit {
	return &Toolkit{opts: applyOptions(optFns)}
}

// Logger returns the configured logger.
func (tk *Toolkit) Logger() *Logger { return tk.opts.logger }

// Metrics returns the configured metrics collector.
func (tk *Toolkit) Metrics() MetricsCollector { return tk.opts.metricsCollector }

// Controller returns the configured resource controller, possibly nil.
func (tk *Toolkit) Controller() *resource.Controller { return tk.opts.controller }

// Compression returns the block compression used for frames.
func (tk *Toolkit) Compression() frame.Compression { return tk.opts.compression }

// Pack calls bitpack.Pack.
func Pack[W bitpack.Word](ctx context.Context, tk *Toolkit, values []W, r bitpack.BitRange) (bitpack.Packed[W], error) {
	start := time.Now()
	p, err := bitpack.Pack(values, r)
	tk.opts.metricsCollector.RecordPack(len(values), time.Since(start), err)
	tk.opts.logger.LogPack(ctx, len(values), r.Original, r.Target, err)
	return p, err
}

// Unpack calls bitpack.Unpack.
func Unpack[W bitpack.Word](ctx context.Context, tk *Toolkit, words []W, r bitpack.BitRange, shape tensor.Shape) ([]W, error) {
	start := time.Now()
	values, err := bitpack.Unpack(words, r, shape)
	tk.opts.metricsCollector.RecordUnpack(len(values), time.Since(start), err)
	tk.opts.logger.LogUnpack(ctx, len(words), shape, err)
	return values, err
}

// Transform calls hadamard.Transform.
func Transform[T tensor.Float](ctx context.Context, tk *Toolkit, x *tensor.Dense[T]) (*tensor.Dense[T], error) {
	start := time.Now()
	y, err := hadamard.Transform(x)
	observeTransform(ctx, tk, x, false, time.Since(start), err)
	return y, err
}

// TransformParallel calls hadamard.TransformParallel with the Toolkit's
// controller.
func TransformParallel[T tensor.Float](ctx context.Context, tk *Toolkit, x *tensor.Dense[T]) (*tensor.Dense[T], error) {
	start := time.Now()
	y, err := hadamard.TransformParallel(ctx, x, tk.opts.controller)
	observeTransform(ctx, tk, x, true, time.Since(start), err)
	return y, err
}

func observeTransform[T tensor.Float](ctx context.Context, tk *Toolkit, x *tensor.Dense[T], parallel bool, d time.Duration, err error) {
	var (
		shape      tensor.Shape
		rows, cols int
	)
	if x != nil {
		shape, rows, cols = x.Shape(), x.Rows(), x.Cols()
	}
	tk.opts.metricsCollector.RecordTransform(rows, cols, d, err)
	tk.opts.logger.LogTransform(ctx, shape, parallel, err)
}

// Generate calls random.Generate.
func (tk *Toolkit) Generate(ctx context.Context, count int, seed random.Seed) ([]float64, error) {
	return observeGenerate(ctx, tk, "cmwc", count, func() ([]float64, error) {
		return random.Generate(count, seed)
	})
}

// SignsCMWC calls random.SignsCMWC.
func SignsCMWC[T tensor.Number](ctx context.Context, tk *Toolkit, count int, seed random.Seed) ([]T, error) {
	return observeGenerate(ctx, tk, "signs_cmwc", count, func() ([]T, error) {
		return random.SignsCMWC[T](count, seed)
	})
}

// FloatsCMWC calls random.FloatsCMWC.
func FloatsCMWC[T tensor.Float](ctx context.Context, tk *Toolkit, count int, seed random.Seed) ([]T, error) {
	return observeGenerate(ctx, tk, "floats_cmwc", count, func() ([]T, error) {
		return random.FloatsCMWC[T](count, seed)
	})
}

// Signs calls random.Signs.
func Signs[T tensor.Number](ctx context.Context, tk *Toolkit, count int, seed random.SeedPair) ([]T, error) {
	return observeGenerate(ctx, tk, "signs", count, func() ([]T, error) {
		return random.Signs[T](count, seed)
	})
}

// Floats calls random.Floats.
func Floats[T tensor.Float](ctx context.Context, tk *Toolkit, count int, seed random.SeedPair) ([]T, error) {
	return observeGenerate(ctx, tk, "floats", count, func() ([]T, error) {
		return random.Floats[T](count, seed)
	})
}

func observeGenerate[T any](ctx context.Context, tk *Toolkit, kind string, count int, fn func() ([]T, error)) ([]T, error) {
	start := time.Now()
	out, err := fn()
	tk.opts.metricsCollector.RecordGenerate(kind, count, time.Since(start), err)
	tk.opts.logger.LogGenerate(ctx, kind, count, err)
	return out, err
}

// EncodePacked calls frame.EncodePacked with the Toolkit's compression.
func EncodePacked[W bitpack.Word](ctx context.Context, tk *Toolkit, p bitpack.Packed[W]) ([]byte, error) {
	start := time.Now()
	b, err := frame.EncodePacked(p, tk.opts.compression)
	tk.opts.metricsCollector.RecordFrame(len(b), time.Since(start), err)
	tk.opts.logger.LogFrame(ctx, "encode", len(b), err)
	return b, err
}

// DecodePacked calls frame.DecodePacked.
func DecodePacked[W bitpack.Word](ctx context.Context, tk *Toolkit, b []byte) (bitpack.Packed[W], error) {
	start := time.Now()
	p, err := frame.DecodePacked[W](b)
	tk.opts.metricsCollector.RecordFrame(len(b), time.Since(start), err)
	tk.opts.logger.LogFrame(ctx, "decode", len(b), err)
	return p, err
}

// NewFrameWriter returns a frame writer using the Toolkit's compression and
// throttled by its controller.
func (tk *Toolkit) NewFrameWriter(ctx context.Context, w io.Writer) *frame.Writer {
	return frame.NewWriter(ctx, w, tk.opts.controller, tk.opts.compression)
}
