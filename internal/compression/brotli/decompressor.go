package brotli

import (
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/depressor/depressor/internal/compression/computils"
)

const (
	AlgorithmName = "brotli"
	FileExtension = "br"
)

// Decompressor decodes a single brotli stream. Brotli has no signature, so it must be chosen explicitly
// and input after the end of the stream cannot be told apart from trailing data.
type Decompressor struct{}

func (decompressor Decompressor) Decompress(src io.Reader, opts computils.Options) (io.ReadCloser, error) {
	computils.LogSequentialFallback(AlgorithmName, opts)
	// the reader only reports excessive input once its stream is complete
	return computils.NewTrailingDataReader(io.NopCloser(brotli.NewReader(src)), AlgorithmName, true, isExcessiveInput), nil
}

func (decompressor Decompressor) AlgorithmName() string {
	return AlgorithmName
}

func (decompressor Decompressor) FileExtension() string {
	return FileExtension
}

func isExcessiveInput(err error) bool {
	return strings.Contains(err.Error(), "excessive input")
}
