package frame

import "errors"

var (
	// ErrBadMagic is returned when data does not start with the frame magic.
	ErrBadMagic = errors.New("frame: bad magic")

	// ErrCorrupt is returned when a frame is truncated or its header and
	// body disagree.
	ErrCorrupt = errors.New("frame: corrupt")
)
