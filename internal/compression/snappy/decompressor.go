package snappy

import (
	"io"

	"github.com/depressor/depressor/internal/compression/computils"
	"github.com/golang/snappy"
)

const (
	AlgorithmName = "snappy"
	FileExtension = "sz"
)

// stream identifier chunk of the framing format
var magicBytes = []byte{0xFF, 0x06, 0x00, 0x00, 's', 'N', 'a', 'P', 'p', 'Y'}

type Decompressor struct{}

func (decompressor Decompressor) Decompress(src io.Reader, opts computils.Options) (io.ReadCloser, error) {
	computils.LogSequentialFallback(AlgorithmName, opts)
	return io.NopCloser(snappy.NewReader(src)), nil
}

func (decompressor Decompressor) AlgorithmName() string {
	return AlgorithmName
}

func (decompressor Decompressor) FileExtension() string {
	return FileExtension
}

func (decompressor Decompressor) Matches(header []byte) bool {
	return computils.MatchesMagic(header, magicBytes)
}
