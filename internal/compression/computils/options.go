package computils

import (
	"github.com/depressor/depressor/utility"
	"github.com/pkg/errors"
	"github.com/wal-g/tracelog"
)

const (
	DefaultPreset = 6
	MaxPreset     = 9
)

type Options struct {
	// Threads is a parallelism hint. Engines that decode sequentially ignore it.
	Threads int
	// BlockSize of 0 keeps the engine default.
	BlockSize int
	// Preset mirrors the level the stream was written with. Decoding never depends on it.
	Preset int
}

func DefaultOptions() Options {
	return Options{
		Threads: 1,
		Preset:  DefaultPreset,
	}
}

// Normalize replaces a non-positive thread hint with a single thread.
func (opts Options) Normalize() Options {
	opts.Threads = utility.Max(opts.Threads, 1)
	return opts
}

func (opts Options) Validate() error {
	if opts.BlockSize < 0 {
		return errors.Errorf("block size must not be negative, got %d", opts.BlockSize)
	}
	if opts.Preset < 0 || opts.Preset > MaxPreset {
		return errors.Errorf("preset must be between 0 and %d, got %d", MaxPreset, opts.Preset)
	}
	return nil
}

// LogSequentialFallback notes that an engine decodes on one thread regardless of the hint.
func LogSequentialFallback(algorithm string, opts Options) {
	if opts.Threads > 1 {
		tracelog.DebugLogger.Printf("%s decoder is sequential, ignoring thread hint %d", algorithm, opts.Threads)
	}
}
