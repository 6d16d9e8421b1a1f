package tensorenc

import (
	"github.com/hupe1980/tensorenc/frame"
	"github.com/hupe1980/tensorenc/resource"
	"github.com/hupe1980/tensorenc/tensor"
)

var (
	// ErrShape is returned when an input has the wrong rank.
	ErrShape = tensor.ErrShape
	// ErrDimension is returned when a dimension is not a power of two.
	ErrDimension = tensor.ErrDimension
	// ErrSeed is returned when a seed buffer has the wrong dtype or arity.
	ErrSeed = tensor.ErrSeed
	// ErrCount is returned when an element count is not positive.
	ErrCount = tensor.ErrCount
	// ErrDType is returned for an unsupported dtype.
	ErrDType = tensor.ErrDType
	// ErrBitRange is returned for an invalid packing bit range.
	ErrBitRange = tensor.ErrBitRange
	// ErrValueRange is returned when a value or word does not fit its bits.
	ErrValueRange = tensor.ErrValueRange

	// ErrBadMagic is returned when bytes are not a frame.
	ErrBadMagic = frame.ErrBadMagic
	// ErrCorrupt is returned for a truncated or inconsistent frame.
	ErrCorrupt = frame.ErrCorrupt

	// ErrMemoryLimit is returned when a parallel transform needs more
	// memory than the controller's limit.
	ErrMemoryLimit = resource.ErrMemoryLimit
)

// Typed errors carrying the offending values. Each unwraps to its sentinel.
type (
	ShapeError     = tensor.ShapeError
	DimensionError = tensor.DimensionError
	CountError     = tensor.CountError
	DTypeError     = tensor.DTypeError
	BitRangeError  = tensor.BitRangeError
)
