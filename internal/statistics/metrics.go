package statistics

import (
	"fmt"
	"time"

	"github.com/cactus/go-statsd-client/v5/statsd"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/wal-g/tracelog"
)

type metrics struct {
	JobsTotal    *prometheus.CounterVec
	BytesRead    *prometheus.CounterVec
	BytesWritten *prometheus.CounterVec
	Flushes      prometheus.Counter
}

const SuccessResult = "success"

var (
	MetricsPrefix = "depressor_"

	// Registry holds only job metrics, so pushes carry no process or runtime collectors.
	Registry = prometheus.NewRegistry()

	Metrics = metrics{
		JobsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricsPrefix + "jobs_total",
				Help: "Number of decompression jobs by result.",
			},
			[]string{"result"},
		),
		BytesRead: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricsPrefix + "bytes_read_total",
				Help: "Compressed bytes read by successful jobs.",
			},
			[]string{"algorithm"},
		),
		BytesWritten: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricsPrefix + "bytes_written_total",
				Help: "Decompressed bytes written by successful jobs.",
			},
			[]string{"algorithm"},
		),
		Flushes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: MetricsPrefix + "output_flushes_total",
				Help: "Number of output buffer flushes.",
			},
		),
	}
)

func init() {
	Registry.MustRegister(Metrics.JobsTotal)
	Registry.MustRegister(Metrics.BytesRead)
	Registry.MustRegister(Metrics.BytesWritten)
	Registry.MustRegister(Metrics.Flushes)
}

func RecordSuccess(algorithm string, bytesRead, bytesWritten, flushes int64) {
	Metrics.JobsTotal.WithLabelValues(SuccessResult).Inc()
	Metrics.BytesRead.WithLabelValues(algorithm).Add(float64(bytesRead))
	Metrics.BytesWritten.WithLabelValues(algorithm).Add(float64(bytesWritten))
	Metrics.Flushes.Add(float64(flushes))
}

// RecordFailure counts a failed job under its error kind.
func RecordFailure(kind string) {
	Metrics.JobsTotal.WithLabelValues(kind).Inc()
}

// WriteTextfile stores the metrics in the node exporter textfile format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}

func PushMetrics(address string) error {
	config := &statsd.ClientConfig{
		Address:       address,
		UseBuffered:   true,
		FlushInterval: 10 * time.Second,
		TagFormat:     statsd.InfixComma,
	}

	client, err := statsd.NewClientWithConfig(config)
	if err != nil {
		return err
	}
	defer client.Close()

	tracelog.DebugLogger.Printf("Sending metrics to statsd")
	return pushMetrics(client, Registry)
}

func pushMetrics(client statsd.Statter, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		if family.GetType() != dto.MetricType_COUNTER {
			return fmt.Errorf("job metric %s is not a counter", family.GetName())
		}
		if err := pushCounters(client, family); err != nil {
			return err
		}
	}
	return nil
}

// pushCounters sends every labelled series of a job counter, its labels becoming statsd tags.
func pushCounters(client statsd.Statter, family *dto.MetricFamily) error {
	for _, series := range family.Metric {
		tags := make([]statsd.Tag, 0, len(series.Label))
		for _, label := range series.Label {
			tags = append(tags, statsd.Tag{label.GetName(), label.GetValue()})
		}
		if err := client.Inc(family.GetName(), int64(series.GetCounter().GetValue()), 1.0, tags...); err != nil {
			return err
		}
	}
	return nil
}
