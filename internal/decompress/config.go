package decompress

import (
	"github.com/depressor/depressor/internal/compression"
	"github.com/depressor/depressor/internal/fsutil"
	"golang.org/x/time/rate"
)

type Config struct {
	// BufferSize is the size of both the input and the output buffer.
	BufferSize int
	// Method is an algorithm name, a file extension or compression.AutoMethod.
	Method string
	// Decompressor, when set, is used instead of resolving Method.
	Decompressor compression.Decompressor
	Compression  compression.Options
	// AllowTruncated accepts a payload that ends without an end-of-stream marker.
	AllowTruncated bool
	// Atomic writes to a temporary file and renames it on success only.
	Atomic bool
	// Limiter throttles output writes when set.
	Limiter   *rate.Limiter
	Folder    fsutil.DataFolder
	Allocator Allocator
}

func DefaultConfig() Config {
	return Config{
		BufferSize:  DefaultBufferSize,
		Method:      compression.AutoMethod,
		Compression: compression.DefaultOptions(),
	}
}

func (config Config) folder() fsutil.DataFolder {
	if config.Folder == nil {
		return fsutil.NewDiskDataFolder("")
	}
	return config.Folder
}

func (config Config) allocator() Allocator {
	if config.Allocator == nil {
		return DefaultAllocator
	}
	return config.Allocator
}
