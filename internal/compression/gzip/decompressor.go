package gzip

import (
	"bufio"
	"io"

	"github.com/depressor/depressor/internal/compression/computils"
	"github.com/klauspost/compress/gzip"
)

const (
	AlgorithmName = "gzip"
	FileExtension = "gz"
)

var magicBytes = []byte{0x1F, 0x8B}

// Decompressor decodes multi-member gzip streams.
type Decompressor struct{}

func (decompressor Decompressor) Decompress(src io.Reader, opts computils.Options) (io.ReadCloser, error) {
	computils.LogSequentialFallback(AlgorithmName, opts)

	return computils.NewFrameSequenceReader(src, AlgorithmName, magicBytes, 0,
		func(source *bufio.Reader) (io.Reader, error) {
			gzReader, err := gzip.NewReader(source)
			if err != nil {
				return nil, err
			}
			gzReader.Multistream(false)
			return gzReader, nil
		}), nil
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
