package decompress

import (
	"fmt"

	"github.com/depressor/depressor/internal/compression"
	"github.com/pkg/errors"
	"github.com/wal-g/tracelog"
)

// InputOpenError is returned when the compressed file cannot be opened for reading.
type InputOpenError struct {
	error
}

func newInputOpenError(path string, err error) InputOpenError {
	return InputOpenError{errors.Wrapf(err, "failed to open input file '%s'", path)}
}

func (err InputOpenError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

// HeaderReadError is returned when the file ends inside the extension header.
type HeaderReadError struct {
	error
}

func newHeaderReadError(err error) HeaderReadError {
	return HeaderReadError{errors.Wrap(err, "failed to read header")}
}

func (err HeaderReadError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

// EngineInitError is returned when the decompression engine rejects its configuration.
type EngineInitError struct {
	error
}

func newEngineInitError(algorithm string, err error) EngineInitError {
	return EngineInitError{errors.Wrapf(err, "failed to initialize %s decompression engine", algorithm)}
}

func (err EngineInitError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

// AllocationError is returned when the fixed-size buffers cannot be obtained.
// It signals an exhausted or misconfigured environment rather than bad data.
type AllocationError struct {
	error
}

func newAllocationError(buffer string, size int, err error) AllocationError {
	return AllocationError{errors.Wrapf(err, "failed to allocate %d byte %s buffer", size, buffer)}
}

func (err AllocationError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

// OutputOpenError is returned when the output file cannot be created or truncated.
type OutputOpenError struct {
	error
}

func newOutputOpenError(path string, err error) OutputOpenError {
	return OutputOpenError{errors.Wrapf(err, "failed to open output file '%s'", path)}
}

func (err OutputOpenError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

// OutputWriteError is returned when decoded data cannot be flushed, closed or moved into place.
type OutputWriteError struct {
	error
}

func newOutputWriteError(path string, err error) OutputWriteError {
	return OutputWriteError{errors.Wrapf(err, "failed to write output file '%s'", path)}
}

func (err OutputWriteError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

// DecompressionError is returned when the payload is malformed.
// Output flushed before the failure stays on disk unless the job writes atomically.
type DecompressionError struct {
	error
}

func newDecompressionError(algorithm string, err error) DecompressionError {
	return DecompressionError{errors.Wrapf(err, "%s decompression failed", algorithm)}
}

func (err DecompressionError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

// TruncatedStreamError is returned when the input ends before the engine signals end of stream.
type TruncatedStreamError struct {
	error
}

func newTruncatedStreamError(algorithm string, payloadBytes int64) TruncatedStreamError {
	return TruncatedStreamError{errors.Errorf(
		"%s stream ended after %d payload bytes without an end-of-stream marker", algorithm, payloadBytes)}
}

func (err TruncatedStreamError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

// ErrorKind names the failure class of err for logs and metric labels.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "none"
	case IsInputOpenError(err):
		return "input_open"
	case IsHeaderReadError(err):
		return "header_read"
	case IsEngineInitError(err):
		return "engine_init"
	case IsAllocationError(err):
		return "allocation"
	case IsOutputOpenError(err):
		return "output_open"
	case IsOutputWriteError(err):
		return "output_write"
	case IsDecompressionError(err):
		return "decompression"
	case IsTruncatedStreamError(err):
		return "truncated_stream"
	default:
		return "unknown"
	}
}

type UnknownMethodError struct {
	error
}

func newUnknownMethodError(method string) UnknownMethodError {
	return UnknownMethodError{errors.Errorf("unknown decompression method '%s', expected one of %v",
		method, compression.AlgorithmNames())}
}

func (err UnknownMethodError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

func IsInputOpenError(err error) bool {
	return errors.As(err, &InputOpenError{})
}

func IsHeaderReadError(err error) bool {
	return errors.As(err, &HeaderReadError{})
}

func IsEngineInitError(err error) bool {
	return errors.As(err, &EngineInitError{})
}

func IsAllocationError(err error) bool {
	return errors.As(err, &AllocationError{})
}

func IsOutputOpenError(err error) bool {
	return errors.As(err, &OutputOpenError{})
}

func IsOutputWriteError(err error) bool {
	return errors.As(err, &OutputWriteError{})
}

func IsDecompressionError(err error) bool {
	return errors.As(err, &DecompressionError{})
}

func IsTruncatedStreamError(err error) bool {
	return errors.As(err, &TruncatedStreamError{})
}
