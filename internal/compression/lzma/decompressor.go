package lzma

import (
	"io"

	"github.com/depressor/depressor/internal/compression/computils"
	"github.com/ulikunitz/xz/lzma"
)

const (
	AlgorithmName = "lzma"
	FileExtension = "lzma"
)

// Decompressor reads the legacy .lzma format. It has no signature, so it is never auto detected.
type Decompressor struct{}

func (decompressor Decompressor) Decompress(src io.Reader, opts computils.Options) (io.ReadCloser, error) {
	config := lzma.ReaderConfig{}
	if err := config.Verify(); err != nil {
		return nil, err
	}
	computils.LogSequentialFallback(AlgorithmName, opts)

	return computils.NewLazyReadCloser(func() (io.ReadCloser, error) {
		lzReader, err := config.NewReader(src)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(lzReader), nil
	}), nil
}

func (decompressor Decompressor) AlgorithmName() string {
	return AlgorithmName
}

func (decompressor Decompressor) FileExtension() string {
	return FileExtension
}
