package internal

import (
	"github.com/depressor/depressor/internal/decompress"
	"github.com/depressor/depressor/internal/statistics"
	"github.com/pkg/errors"
	"github.com/wal-g/tracelog"
)

type InfoLogger interface {
	Printf(format string, v ...interface{})
}

type ErrorLogger interface {
	FatalOnError(err error)
}

type Logging struct {
	InfoLogger  InfoLogger
	ErrorLogger ErrorLogger
}

func DefaultLogging() Logging {
	return Logging{
		InfoLogger:  tracelog.InfoLogger,
		ErrorLogger: tracelog.ErrorLogger,
	}
}

// HandleDecompress restores inputFilePath to outputFilePath plus the extension stored in its header.
// A non-positive numThreads means a single thread.
func HandleDecompress(inputFilePath, outputFilePath string, numThreads int) error {
	config, err := ConfigureJobConfig()
	if err != nil {
		return errors.Wrap(err, "failed to configure decompression")
	}
	config.Compression.Threads = numThreads

	_, err = DecompressFile(inputFilePath, outputFilePath, config, DefaultLogging())
	return err
}

func DecompressFile(inputFilePath, outputFilePath string, config decompress.Config,
	logging Logging) (*decompress.Result, error) {
	result, err := decompress.Decompress(inputFilePath, outputFilePath, config)
	if err != nil {
		statistics.RecordFailure(decompress.ErrorKind(err))
		return nil, err
	}
	statistics.RecordSuccess(result.Algorithm, result.BytesRead, result.BytesWritten, result.Flushes)

	tracelog.DebugLogger.Printf("%s: read %d bytes in %d chunks, wrote %d bytes in %d flushes, end %s",
		result.Algorithm, result.BytesRead, result.Chunks, result.BytesWritten, result.Flushes, result.End)
	logging.InfoLogger.Printf("File decompressed with restored extension: %s", result.OutputPath)
	return result, nil
}

// PublishMetrics pushes job metrics to statsd and the textfile collector when they are configured.
func PublishMetrics() {
	if address, ok := GetSetting(StatsdAddressSetting); ok && address != "" {
		if err := statistics.PushMetrics(address); err != nil {
			tracelog.WarningLogger.Printf("Pushing metrics failed: %v", err)
		}
	}
	if path, ok := GetSetting(MetricsTextfileSetting); ok && path != "" {
		if err := statistics.WriteTextfile(path); err != nil {
			tracelog.WarningLogger.Printf("Writing metrics to %s failed: %v", path, err)
		}
	}
}
