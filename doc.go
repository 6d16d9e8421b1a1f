// Package tensorenc provides the numeric primitives of a tensor-encoding
// pipeline: bit packing, reproducible random sign and float generation, and
// the normalized Fast Walsh–Hadamard Transform.
//
// The primitives live in their own packages and are pure functions:
//
//	bitpack   Pack / Unpack values of Original bits into Target-bit words
//	random    CMWC and pair-seeded generators for ±1 signs and [0,1) floats
//	hadamard  the orthonormal Walsh–Hadamard rotation along the last axis
//	frame     self-describing byte frames for packed words and sign masks
//
// # Quick Start
//
//	p, _ := bitpack.Pack([]int32{1, 0, 1, 1, 0}, bitpack.MustBitRange(1, 28))
//	signs, _ := random.SignsCMWC[float32](128, 42)
//	y, _ := hadamard.Transform(x)
//
// # Toolkit
//
// Toolkit forwards to the same primitives and adds structured logging,
// metrics and resource limits around every call. It never decides which
// primitive runs or in what order.
//
//	metrics := &tensorenc.BasicMetricsCollector{}
//	tk := tensorenc.New(
//	    tensorenc.WithLogger(tensorenc.NewJSONLogger(slog.LevelDebug)),
//	    tensorenc.WithMetricsCollector(metrics),
//	    tensorenc.WithController(resource.NewController(resource.Config{MaxWorkers: 4})),
//	    tensorenc.WithCompression(frame.CompressionZSTD),
//	)
//	p, err := tensorenc.Pack(ctx, tk, values, bitpack.MustBitRange(8, 28))
//	y, err := tensorenc.TransformParallel(ctx, tk, x)
//
// # Errors
//
// All failures are returned synchronously before any output is produced.
// Errors wrap the sentinels re-exported here, so errors.Is works across
// packages:
//
//	if errors.Is(err, tensorenc.ErrDimension) { ... }
package tensorenc
