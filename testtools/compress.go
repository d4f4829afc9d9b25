package testtools

import (
	"bytes"
	"io"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/depressor/depressor/internal/decompress"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

func newEncoder(t *testing.T, algorithm string, output io.Writer) io.WriteCloser {
	switch algorithm {
	case "xz":
		writer, err := xz.NewWriter(output)
		require.NoError(t, err)
		return writer
	case "lzma":
		writer, err := lzma.NewWriter(output)
		require.NoError(t, err)
		return writer
	case "zstd":
		writer, err := zstd.NewWriter(output)
		require.NoError(t, err)
		return writer
	case "gzip":
		return gzip.NewWriter(output)
	case "lz4":
		return lz4.NewWriter(output)
	case "brotli":
		return brotli.NewWriter(output)
	case "snappy":
		return snappy.NewBufferedWriter(output)
	}
	require.FailNow(t, "no test encoder for algorithm "+algorithm)
	return nil
}

// Compress encodes data as a single stream of the named algorithm.
func Compress(t *testing.T, algorithm string, data []byte) []byte {
	var compressed bytes.Buffer
	encoder := newEncoder(t, algorithm, &compressed)
	_, err := encoder.Write(data)
	require.NoError(t, err)
	require.NoError(t, encoder.Close())
	return compressed.Bytes()
}

// CompressConcatenated encodes every part as its own stream and joins the results.
func CompressConcatenated(t *testing.T, algorithm string, parts ...[]byte) []byte {
	var compressed []byte
	for _, part := range parts {
		compressed = append(compressed, Compress(t, algorithm, part)...)
	}
	return compressed
}

// MakeCompressedFile prefixes payload with the extension header.
func MakeCompressedFile(t *testing.T, extension string, payload []byte) []byte {
	header, err := decompress.Header{Extension: extension}.MarshalBinary()
	require.NoError(t, err)
	return append(header, payload...)
}
