package statistics_test

import (
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/depressor/depressor/internal/statistics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSuccess(t *testing.T) {
	before := testutil.ToFloat64(statistics.Metrics.JobsTotal.WithLabelValues(statistics.SuccessResult))
	written := testutil.ToFloat64(statistics.Metrics.BytesWritten.WithLabelValues("xz"))

	statistics.RecordSuccess("xz", 10, 100, 2)

	assert.Equal(t, before+1, testutil.ToFloat64(statistics.Metrics.JobsTotal.WithLabelValues(statistics.SuccessResult)))
	assert.Equal(t, written+100, testutil.ToFloat64(statistics.Metrics.BytesWritten.WithLabelValues("xz")))
}

func TestRecordFailure(t *testing.T) {
	before := testutil.ToFloat64(statistics.Metrics.JobsTotal.WithLabelValues("truncated_stream"))

	statistics.RecordFailure("truncated_stream")

	assert.Equal(t, before+1, testutil.ToFloat64(statistics.Metrics.JobsTotal.WithLabelValues("truncated_stream")))
}

func TestWriteTextfile(t *testing.T) {
	statistics.RecordSuccess("gzip", 1, 1, 1)
	path := filepath.Join(t.TempDir(), "depressor.prom")

	require.NoError(t, statistics.WriteTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "depressor_jobs_total{result=\"success\"}")
	assert.Contains(t, string(content), "depressor_bytes_written_total{algorithm=\"gzip\"}")
}

func TestPushMetrics(t *testing.T) {
	statistics.RecordSuccess("zstd", 1, 1, 1)
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, statistics.PushMetrics(conn.LocalAddr().String()))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	packet := make([]byte, 64<<10)
	n, _, err := conn.ReadFrom(packet)
	require.NoError(t, err)
	assert.Contains(t, string(packet[:n]), "depressor_bytes_read_total,algorithm=zstd:")
}
