package compression_test

import (
	"bytes"
	"io"
	"math/rand"
	"testing"

	"github.com/depressor/depressor/internal/compression"
	"github.com/depressor/depressor/internal/compression/brotli"
	"github.com/depressor/depressor/internal/compression/gzip"
	"github.com/depressor/depressor/internal/compression/lz4"
	"github.com/depressor/depressor/internal/compression/lzma"
	"github.com/depressor/depressor/internal/compression/snappy"
	"github.com/depressor/depressor/internal/compression/xz"
	"github.com/depressor/depressor/internal/compression/zstd"
	"github.com/depressor/depressor/testtools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type BiasedRandomReader struct {
	rand *rand.Rand
}

func NewBiasedRandomReader(seed int64) *BiasedRandomReader {
	return &BiasedRandomReader{rand.New(rand.NewSource(seed))}
}

func (reader *BiasedRandomReader) Read(p []byte) (n int, err error) {
	for i := 0; i < len(p); i++ {
		p[i] = byte(reader.rand.Intn(10))
	}
	return len(p), nil
}

func makeTestData(t *testing.T, size int64) []byte {
	var testData bytes.Buffer
	_, err := io.Copy(&testData, io.LimitReader(NewBiasedRandomReader(0x1337), size))
	require.NoError(t, err)
	return testData.Bytes()
}

func testDecompressor(t *testing.T, decompressor compression.Decompressor, data []byte, threads int) {
	compressed := testtools.Compress(t, decompressor.AlgorithmName(), data)

	opts := compression.DefaultOptions()
	opts.Threads = threads
	reader, err := decompressor.Decompress(bytes.NewReader(compressed), opts)
	require.NoError(t, err, decompressor.AlgorithmName())

	var decompressed bytes.Buffer
	_, err = io.Copy(&decompressed, reader)
	require.NoError(t, err, decompressor.AlgorithmName())
	require.NoError(t, reader.Close())

	assert.Equal(t, data, decompressed.Bytes(), decompressor.AlgorithmName())
}

func TestSmallDataDecompression(t *testing.T) {
	data := makeTestData(t, 16<<10)
	for _, decompressor := range compression.Decompressors {
		testDecompressor(t, decompressor, data, 1)
	}
}

func TestBigDataDecompression(t *testing.T) {
	data := makeTestData(t, 4<<20)
	for _, decompressor := range compression.Decompressors {
		testDecompressor(t, decompressor, data, 4)
	}
}

func TestFindDecompressor(t *testing.T) {
	testCases := []struct {
		name     string
		expected compression.Decompressor
	}{
		{"xz", xz.Decompressor{}},
		{"XZ", xz.Decompressor{}},
		{"zstd", zstd.Decompressor{}},
		{"zst", zstd.Decompressor{}},
		{"gzip", gzip.Decompressor{}},
		{"gz", gzip.Decompressor{}},
		{"lz4", lz4.Decompressor{}},
		{"lzma", lzma.Decompressor{}},
		{"brotli", brotli.Decompressor{}},
		{"br", brotli.Decompressor{}},
		{"snappy", snappy.Decompressor{}},
		{"sz", snappy.Decompressor{}},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, compression.FindDecompressor(tc.name), tc.name)
	}
	assert.Nil(t, compression.FindDecompressor("rar"))
	assert.Nil(t, compression.FindDecompressor(compression.AutoMethod))
}

func TestDetectDecompressor_RecognizesSignatures(t *testing.T) {
	data := []byte("How much wood could a woodchuck chuck if a woodchuck could chuck wood ?")
	for _, decompressor := range compression.Decompressors {
		if _, ok := decompressor.(compression.MagicDetector); !ok {
			continue
		}
		compressed := testtools.Compress(t, decompressor.AlgorithmName(), data)
		header := compressed[:compression.MaxMagicLen]
		assert.Equal(t, decompressor, compression.DetectDecompressor(header), decompressor.AlgorithmName())
	}
}

func TestDetectDecompressor_UnknownSignature(t *testing.T) {
	assert.Nil(t, compression.DetectDecompressor([]byte("plain text")))
	assert.Nil(t, compression.DetectDecompressor(nil))
}

func TestDecompress_EmptyXzPayloadIsUnexpectedEOF(t *testing.T) {
	reader, err := xz.Decompressor{}.Decompress(bytes.NewReader(nil), compression.DefaultOptions())
	require.NoError(t, err)

	_, err = reader.Read(make([]byte, 16))
	assert.Equal(t, io.ErrUnexpectedEOF, err)
	assert.NoError(t, reader.Close())
}

func TestDecompress_GzipIgnoresTrailingGarbage(t *testing.T) {
	data := []byte("first member")
	compressed := testtools.Compress(t, gzip.AlgorithmName, data)
	compressed = append(compressed, bytes.Repeat([]byte("garbage!"), 8)...)

	reader, err := gzip.Decompressor{}.Decompress(bytes.NewReader(compressed), compression.DefaultOptions())
	require.NoError(t, err)

	decompressed, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, data, decompressed)
}

func TestOptionsValidate(t *testing.T) {
	assert.NoError(t, compression.DefaultOptions().Validate())

	opts := compression.DefaultOptions()
	opts.BlockSize = -1
	assert.Error(t, opts.Validate())

	opts = compression.DefaultOptions()
	opts.Preset = compression.MaxPreset + 1
	assert.Error(t, opts.Validate())
}

func TestOptionsNormalize(t *testing.T) {
	opts := compression.Options{Threads: -3}
	assert.Equal(t, 1, opts.Normalize().Threads)

	opts.Threads = 8
	assert.Equal(t, 8, opts.Normalize().Threads)
}

func TestAlgorithmNames(t *testing.T) {
	names := compression.AlgorithmNames()
	assert.Equal(t, compression.AutoMethod, names[0])
	assert.Len(t, names, len(compression.Decompressors)+1)
}

func readAll(t *testing.T, decompressor compression.Decompressor, payload []byte) ([]byte, error) {
	reader, err := decompressor.Decompress(bytes.NewReader(payload), compression.DefaultOptions())
	require.NoError(t, err)
	defer func() { assert.NoError(t, reader.Close()) }()
	return io.ReadAll(reader)
}

func TestDecompress_XzStopsAtShortTrailingData(t *testing.T) {
	for _, trailer := range [][]byte{{0}, []byte("junk"), {0, 0, 0, 0, 'x'}} {
		payload := append(testtools.Compress(t, xz.AlgorithmName, []byte("member")), trailer...)

		decompressed, err := readAll(t, xz.Decompressor{}, payload)
		require.NoError(t, err, trailer)
		assert.Equal(t, "member", string(decompressed))
	}
}

func TestDecompress_Lz4ReadsEveryFrame(t *testing.T) {
	payload := testtools.CompressConcatenated(t, lz4.AlgorithmName, []byte("hello "), []byte("world"))
	payload = append(payload, []byte("trailing")...)

	decompressed, err := readAll(t, lz4.Decompressor{}, payload)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(decompressed))
}

func TestDecompress_Lz4CutChecksumIsUnexpectedEOF(t *testing.T) {
	payload := testtools.Compress(t, lz4.AlgorithmName, []byte("checksummed frame"))

	_, err := readAll(t, lz4.Decompressor{}, payload[:len(payload)-4])
	assert.Equal(t, io.ErrUnexpectedEOF, err)
}

func TestDecompress_BrotliIgnoresTrailingData(t *testing.T) {
	payload := append(testtools.Compress(t, brotli.AlgorithmName, []byte("member")), []byte("excess")...)

	decompressed, err := readAll(t, brotli.Decompressor{}, payload)
	require.NoError(t, err)
	assert.Equal(t, "member", string(decompressed))
}

func TestDecompress_EmptyZstdPayloadIsUnexpectedEOF(t *testing.T) {
	_, err := readAll(t, zstd.Decompressor{}, nil)
	assert.Equal(t, io.ErrUnexpectedEOF, err)
}
