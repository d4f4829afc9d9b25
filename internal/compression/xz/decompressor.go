package xz

import (
	"bufio"
	"io"
	"strings"

	"github.com/depressor/depressor/internal/compression/computils"
	"github.com/ulikunitz/xz"
)

const (
	AlgorithmName = "xz"
	FileExtension = "xz"
	// paddingSize is the granularity of the zero padding allowed between xz streams.
	paddingSize = 4
)

var magicBytes = []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}

// Decompressor decodes one or more concatenated xz streams as a single logical stream.
type Decompressor struct{}

func (decompressor Decompressor) Decompress(src io.Reader, opts computils.Options) (io.ReadCloser, error) {
	config := xz.ReaderConfig{SingleStream: true}
	if err := config.Verify(); err != nil {
		return nil, err
	}
	computils.LogSequentialFallback(AlgorithmName, opts)

	return computils.NewFrameSequenceReader(src, AlgorithmName, magicBytes, paddingSize,
		func(source *bufio.Reader) (io.Reader, error) {
			xzReader, err := config.NewReader(source)
			if err != nil {
				return nil, err
			}
			return &streamReader{Reader: xzReader, source: source}, nil
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

// streamReader ends at the footer of a single stream. The xz reader consumes one byte
// to look past the footer, which is given back to the source here.
type streamReader struct {
	*xz.Reader
	source *bufio.Reader
}

func (r *streamReader) Read(p []byte) (int, error) {
	n, err := r.Reader.Read(p)
	if err != nil && isDataAfterStream(err) {
		if unreadErr := r.source.UnreadByte(); unreadErr != nil {
			return n, unreadErr
		}
		return n, io.EOF
	}
	return n, err
}

func isDataAfterStream(err error) bool {
	return strings.Contains(err.Error(), "unexpected data after stream")
}
