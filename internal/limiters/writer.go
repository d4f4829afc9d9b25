package limiters

import (
	"context"
	"io"

	"github.com/depressor/depressor/utility"
	"golang.org/x/time/rate"
)

// Writer throttles writes to the rate of limiter. Each Write is split into pieces no larger than the burst.
type Writer struct {
	writer  io.Writer
	limiter *rate.Limiter
	ctx     context.Context
}

func NewWriter(ctx context.Context, writer io.Writer, limiter *rate.Limiter) *Writer {
	return &Writer{
		writer:  writer,
		limiter: limiter,
		ctx:     ctx,
	}
}

func (w *Writer) Write(buf []byte) (int, error) {
	burst := w.limiter.Burst()
	if burst <= 0 {
		burst = len(buf)
	}
	written := 0
	for written < len(buf) {
		end := written + utility.Min(len(buf)-written, burst)
		if err := w.limiter.WaitN(w.ctx, end-written); err != nil {
			return written, err
		}
		n, err := w.writer.Write(buf[written:end])
		written += n
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// NewDiskLimiter allows bytesPerSecond with a burst of one second of traffic.
func NewDiskLimiter(bytesPerSecond int64) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(bytesPerSecond), int(bytesPerSecond))
}
