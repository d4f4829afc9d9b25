package limiters_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/depressor/depressor/internal/limiters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type chunkRecorder struct {
	bytes.Buffer
	chunks []int
}

func (r *chunkRecorder) Write(p []byte) (int, error) {
	r.chunks = append(r.chunks, len(p))
	return r.Buffer.Write(p)
}

func TestWriter_SplitsWritesByBurst(t *testing.T) {
	recorder := &chunkRecorder{}
	limiter := rate.NewLimiter(rate.Inf, 4)
	writer := limiters.NewWriter(context.Background(), recorder, limiter)

	n, err := writer.Write([]byte("0123456789"))
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Equal(t, "0123456789", recorder.String())
	assert.Equal(t, []int{4, 4, 2}, recorder.chunks)
}

func TestWriter_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	limiter := rate.NewLimiter(rate.Limit(1), 1)

	writer := limiters.NewWriter(ctx, &bytes.Buffer{}, limiter)
	_, err := writer.Write([]byte("data"))
	assert.Error(t, err)
}

func TestNewDiskLimiter(t *testing.T) {
	limiter := limiters.NewDiskLimiter(1024)
	assert.Equal(t, rate.Limit(1024), limiter.Limit())
	assert.Equal(t, 1024, limiter.Burst())
}
