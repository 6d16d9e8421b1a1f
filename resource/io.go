package resource

import (
	"context"
	"io"
)

// RateLimitedWriter wraps an io.Writer with the controller's IO limit.
// Writes larger than the limiter burst are split into burst-sized chunks.
type RateLimitedWriter struct {
	w   io.Writer
	rc  *Controller
	ctx context.Context
}

// NewRateLimitedWriter creates a new RateLimitedWriter.
func NewRateLimitedWriter(ctx context.Context, w io.Writer, rc *Controller) *RateLimitedWriter {
	return &RateLimitedWriter{
		w:   w,
		rc:  rc,
		ctx: ctx,
	}
}

func (w *RateLimitedWriter) Write(p []byte) (int, error) {
	burst := w.rc.IOBurst()
	if burst <= 0 {
		return w.w.Write(p)
	}

	total := 0
	for len(p) > 0 {
		chunk := min(len(p), burst)
		if err := w.rc.AcquireIO(w.ctx, chunk); err != nil {
			return total, err
		}
		n, err := w.w.Write(p[:chunk])
		total += n
		if err != nil {
			return total, err
		}
		p = p[chunk:]
	}
	return total, nil
}
