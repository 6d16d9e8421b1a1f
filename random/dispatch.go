package random

import (
	"fmt"
	"slices"

	"github.com/hupe1980/tensorenc/tensor"
)

// SignsCMWCAs is SignsCMWC with the element type chosen at run time.
// Any dtype in tensor.NumberDTypes is accepted.
func SignsCMWCAs(count int, seed Seed, dtype tensor.DType) (tensor.Buffer, error) {
	if err := checkDType("random signs", dtype, tensor.NumberDTypes); err != nil {
		return tensor.Buffer{}, err
	}
	u, err := Generate(count, seed)
	if err != nil {
		return tensor.Buffer{}, err
	}
	return signsAs(u, dtype), nil
}

// FloatsCMWCAs is FloatsCMWC with the element type chosen at run time.
// Only float32 and float64 are accepted.
func FloatsCMWCAs(count int, seed Seed, dtype tensor.DType) (tensor.Buffer, error) {
	if err := checkDType("random floats", dtype, tensor.FloatDTypes); err != nil {
		return tensor.Buffer{}, err
	}
	u, err := Generate(count, seed)
	if err != nil {
		return tensor.Buffer{}, err
	}
	return floatsAs(u, dtype), nil
}

// SignsAs is Signs with the element type chosen at run time.
func SignsAs(count int, seed SeedPair, dtype tensor.DType) (tensor.Buffer, error) {
	if err := checkDType("random signs", dtype, tensor.NumberDTypes); err != nil {
		return tensor.Buffer{}, err
	}
	u, err := uniformPair(count, seed)
	if err != nil {
		return tensor.Buffer{}, err
	}
	return signsAs(u, dtype), nil
}

// FloatsAs is Floats with the element type chosen at run time.
// Only float32 and float64 are accepted.
func FloatsAs(count int, seed SeedPair, dtype tensor.DType) (tensor.Buffer, error) {
	if err := checkDType("random floats", dtype, tensor.FloatDTypes); err != nil {
		return tensor.Buffer{}, err
	}
	u, err := uniformPair(count, seed)
	if err != nil {
		return tensor.Buffer{}, err
	}
	return floatsAs(u, dtype), nil
}

// SeedFromBuffer extracts a Seed from a run-time buffer. The buffer must hold
// exactly one int64; other widths are rejected rather than converted.
func SeedFromBuffer(b tensor.Buffer) (Seed, error) {
	v, err := seedValues(b, 1)
	if err != nil {
		return 0, err
	}
	return Seed(v[0]), nil
}

// SeedPairFromBuffer extracts a SeedPair from a buffer holding exactly two int64s.
func SeedPairFromBuffer(b tensor.Buffer) (SeedPair, error) {
	v, err := seedValues(b, 2)
	if err != nil {
		return SeedPair{}, err
	}
	return SeedPair{v[0], v[1]}, nil
}

func seedValues(b tensor.Buffer, n int) ([]int64, error) {
	if b.DType() != tensor.Int64 {
		return nil, fmt.Errorf("%w: seed must be an int64 value, got %s", tensor.ErrSeed, b.DType())
	}
	if b.Len() != n {
		return nil, fmt.Errorf("%w: expected %d int64 seed values, got %d", tensor.ErrSeed, n, b.Len())
	}
	return tensor.As[int64](b)
}

func checkDType(op string, dtype tensor.DType, supported []tensor.DType) error {
	if !slices.Contains(supported, dtype) {
		return &tensor.DTypeError{Op: op, DType: dtype, Supported: supported}
	}
	return nil
}

func signsAs(u []float64, dtype tensor.DType) tensor.Buffer {
	switch dtype {
	case tensor.Int32:
		return tensor.NewBuffer(toSigns[int32](u))
	case tensor.Int64:
		return tensor.NewBuffer(toSigns[int64](u))
	case tensor.Float32:
		return tensor.NewBuffer(toSigns[float32](u))
	default:
		return tensor.NewBuffer(toSigns[float64](u))
	}
}

func floatsAs(u []float64, dtype tensor.DType) tensor.Buffer {
	if dtype == tensor.Float32 {
		return tensor.NewBuffer(toFloats[float32](u))
	}
	return tensor.NewBuffer(toFloats[float64](u))
}
