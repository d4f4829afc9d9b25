package zstd

import (
	"bufio"
	"io"

	"github.com/depressor/depressor/internal/compression/computils"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

const (
	AlgorithmName = "zstd"
	FileExtension = "zst"
)

var magicBytes = []byte{0x28, 0xB5, 0x2F, 0xFD}

// Decompressor decodes concatenated zstd frames, spreading block decoding over opts.Threads goroutines.
type Decompressor struct{}

func (decompressor Decompressor) Decompress(src io.Reader, opts computils.Options) (io.ReadCloser, error) {
	decoder, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(opts.Threads),
		zstd.WithDecoderLowmem(false),
	)
	if err != nil {
		return nil, err
	}
	return computils.NewLazyReadCloser(func() (io.ReadCloser, error) {
		source := bufio.NewReader(src)
		// the decoder accepts an empty source as zero frames
		if _, err := source.Peek(1); err != nil {
			decoder.Close()
			return nil, err
		}
		if err := decoder.Reset(source); err != nil {
			decoder.Close()
			return nil, err
		}
		return computils.NewTrailingDataReader(decoder.IOReadCloser(), AlgorithmName, false, isMagicMismatch), nil
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

func isMagicMismatch(err error) bool {
	return errors.Is(err, zstd.ErrMagicMismatch)
}
