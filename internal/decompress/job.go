package decompress

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/depressor/depressor/internal/compression"
	"github.com/depressor/depressor/internal/limiters"
	"github.com/depressor/depressor/utility"
	"github.com/google/uuid"
	"github.com/wal-g/tracelog"
)

type EndReason int

const (
	// EndStreamEnded means the engine reported the end of the last stream.
	EndStreamEnded EndReason = iota
	// EndInputExhausted means the input ran out first and the job was configured to accept that.
	EndInputExhausted
)

func (reason EndReason) String() string {
	if reason == EndInputExhausted {
		return "InputExhausted"
	}
	return "StreamEnded"
}

type Result struct {
	OutputPath   string
	Extension    string
	Algorithm    string
	BytesRead    int64
	BytesWritten int64
	Chunks       int64
	Flushes      int64
	End          EndReason
}

// Decompress restores inputPath into outputBasePath plus the extension stored in its header.
func Decompress(inputPath, outputBasePath string, config Config) (*Result, error) {
	return NewJob(inputPath, outputBasePath, config).Run()
}

// Job is a single decompression run. It is not safe for concurrent use.
type Job struct {
	inputPath      string
	outputBasePath string
	config         Config
}

func NewJob(inputPath, outputBasePath string, config Config) *Job {
	return &Job{
		inputPath:      inputPath,
		outputBasePath: outputBasePath,
		config:         config,
	}
}

// Run releases every handle and buffer it acquired before returning, on success and on failure.
func (job *Job) Run() (result *Result, err error) {
	folder := job.config.folder()
	allocator := job.config.allocator()

	input, err := folder.OpenReadonlyFile(job.inputPath)
	if err != nil {
		return nil, newInputOpenError(job.inputPath, err)
	}
	defer utility.LoggedClose(input, "failed to close input file")

	header, err := ReadHeader(input)
	if err != nil {
		return nil, err
	}
	tracelog.DebugLogger.Printf("restored extension %q from '%s'", header.Extension, job.inputPath)

	opts := job.config.Compression.Normalize()
	decompressor, err := job.resolveDecompressor(opts)
	if err != nil {
		return nil, err
	}

	inputBuffer, err := allocator.Get(job.config.BufferSize)
	if err != nil {
		return nil, newAllocationError("input", job.config.BufferSize, err)
	}
	defer allocator.Put(inputBuffer)
	outputBuffer, err := allocator.Get(job.config.BufferSize)
	if err != nil {
		return nil, newAllocationError("output", job.config.BufferSize, err)
	}
	defer allocator.Put(outputBuffer)

	p := &pump{
		buffer:         outputBuffer,
		allowTruncated: job.config.AllowTruncated,
	}
	source := newChunkReader(input, inputBuffer, func() { p.setState(stateReadingInput) })
	if decompressor == nil {
		decompressor = detectDecompressor(source.Peek(compression.MaxMagicLen))
	}
	p.algorithm = decompressor.AlgorithmName()
	p.payloadBytes = func() int64 { return source.total }

	reader, err := decompressor.Decompress(source, opts)
	if err != nil {
		return nil, newEngineInitError(decompressor.AlgorithmName(), err)
	}
	engine := &onceCloser{Closer: reader}
	defer utility.LoggedClose(engine, "failed to release decompression engine")

	outputPath := header.OutputPath(job.outputBasePath)
	target := outputPath
	if job.config.Atomic {
		target = fmt.Sprintf("%s.%s.part", outputPath, uuid.New().String())
		defer func() {
			if err != nil && folder.FileExists(target) {
				if removeErr := folder.DeleteFile(target); removeErr != nil {
					tracelog.WarningLogger.Printf("failed to remove partial output '%s': %v", target, removeErr)
				}
			}
		}()
	}
	output, err := folder.OpenWriteOnlyFile(target)
	if err != nil {
		return nil, newOutputOpenError(target, err)
	}
	outputCloser := &onceCloser{Closer: output}
	defer utility.LoggedClose(outputCloser, "failed to close output file")

	p.engine = reader
	p.output = output
	p.outputPath = target
	if job.config.Limiter != nil {
		p.output = limiters.NewWriter(context.Background(), output, job.config.Limiter)
	}
	if err = p.run(); err != nil {
		return nil, err
	}

	// the engine may still read ahead from source until it is closed
	if closeErr := engine.Close(); closeErr != nil {
		tracelog.WarningLogger.Printf("failed to release %s engine: %v", p.algorithm, closeErr)
	}
	if err = outputCloser.Close(); err != nil {
		return nil, newOutputWriteError(target, err)
	}
	if job.config.Atomic {
		if err = folder.RenameFile(target, outputPath); err != nil {
			return nil, newOutputWriteError(outputPath, err)
		}
	}

	result = &Result{
		OutputPath:   outputPath,
		Extension:    header.Extension,
		Algorithm:    p.algorithm,
		BytesRead:    int64(header.Size()) + source.total,
		BytesWritten: p.written,
		Chunks:       source.chunks,
		Flushes:      p.flushes,
		End:          EndStreamEnded,
	}
	if p.truncated {
		result.End = EndInputExhausted
	}
	return result, nil
}

// resolveDecompressor returns nil when the method asks for detection from the payload.
func (job *Job) resolveDecompressor(opts compression.Options) (compression.Decompressor, error) {
	method := job.config.Method
	if err := opts.Validate(); err != nil {
		return nil, newEngineInitError(method, err)
	}
	if job.config.Decompressor != nil {
		return job.config.Decompressor, nil
	}
	if method == "" || method == compression.AutoMethod {
		return nil, nil
	}
	decompressor := compression.FindDecompressor(method)
	if decompressor == nil {
		return nil, newEngineInitError(method, newUnknownMethodError(method))
	}
	return decompressor, nil
}

func detectDecompressor(header []byte) compression.Decompressor {
	if decompressor := compression.DetectDecompressor(header); decompressor != nil {
		tracelog.DebugLogger.Printf("detected %s payload", decompressor.AlgorithmName())
		return decompressor
	}
	tracelog.DebugLogger.Printf("no known signature, falling back to %s",
		compression.DefaultDecompressor.AlgorithmName())
	return compression.DefaultDecompressor
}

type onceCloser struct {
	io.Closer
	once sync.Once
	err  error
}

func (c *onceCloser) Close() error {
	c.once.Do(func() {
		c.err = c.Closer.Close()
	})
	return c.err
}
