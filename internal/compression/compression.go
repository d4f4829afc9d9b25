package compression

import (
	"io"
	"strings"

	"github.com/depressor/depressor/internal/compression/brotli"
	"github.com/depressor/depressor/internal/compression/computils"
	"github.com/depressor/depressor/internal/compression/gzip"
	"github.com/depressor/depressor/internal/compression/lz4"
	"github.com/depressor/depressor/internal/compression/lzma"
	"github.com/depressor/depressor/internal/compression/snappy"
	"github.com/depressor/depressor/internal/compression/xz"
	"github.com/depressor/depressor/internal/compression/zstd"
)

const (
	// AutoMethod selects the engine by the magic bytes at the start of the payload.
	AutoMethod = "auto"

	DefaultPreset = computils.DefaultPreset
	MaxPreset     = computils.MaxPreset

	// MaxMagicLen is the longest magic prefix any detectable engine needs.
	MaxMagicLen = 10
)

// Options is the engine configuration shared by every decompressor.
type Options = computils.Options

func DefaultOptions() Options {
	return computils.DefaultOptions()
}

//go:generate mockgen -destination=../../testtools/mocks/mock_decompressor.go -package mocks github.com/depressor/depressor/internal/compression Decompressor

// Decompressor builds a streaming decoder over src.
// Errors returned by Decompress mean the engine refused its configuration;
// problems with the compressed data are reported by Read on the returned reader.
type Decompressor interface {
	Decompress(src io.Reader, opts Options) (io.ReadCloser, error)
	AlgorithmName() string
	FileExtension() string
}

// MagicDetector is implemented by decompressors whose format starts with a fixed signature.
type MagicDetector interface {
	Matches(header []byte) bool
}

var Decompressors = []Decompressor{
	xz.Decompressor{},
	zstd.Decompressor{},
	gzip.Decompressor{},
	lz4.Decompressor{},
	snappy.Decompressor{},
	lzma.Decompressor{},
	brotli.Decompressor{},
}

// DefaultDecompressor is used when auto detection finds no known signature.
var DefaultDecompressor Decompressor = xz.Decompressor{}

// FindDecompressor looks a decompressor up by algorithm name or file extension.
func FindDecompressor(name string) Decompressor {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, decompressor := range Decompressors {
		if decompressor.AlgorithmName() == name || decompressor.FileExtension() == name {
			return decompressor
		}
	}
	return nil
}

// DetectDecompressor returns the decompressor whose signature prefixes header, or nil.
func DetectDecompressor(header []byte) Decompressor {
	for _, decompressor := range Decompressors {
		detector, ok := decompressor.(MagicDetector)
		if ok && detector.Matches(header) {
			return decompressor
		}
	}
	return nil
}

// AlgorithmNames lists every supported method, auto included.
func AlgorithmNames() []string {
	names := []string{AutoMethod}
	for _, decompressor := range Decompressors {
		names = append(names, decompressor.AlgorithmName())
	}
	return names
}
