package lz4

import (
	"bufio"
	"io"
	"sync/atomic"

	"github.com/depressor/depressor/internal/compression/computils"
	"github.com/pierrec/lz4/v4"
	"github.com/wal-g/tracelog"
)

const (
	AlgorithmName = "lz4"
	FileExtension = "lz4"
)

var magicBytes = []byte{0x04, 0x22, 0x4D, 0x18}

// Decompressor decodes concatenated lz4 frames. Independent blocks are decoded on opts.Threads goroutines.
type Decompressor struct{}

func (decompressor Decompressor) Decompress(src io.Reader, opts computils.Options) (io.ReadCloser, error) {
	lzReader := lz4.NewReader(nil)
	if opts.Threads > 1 {
		if err := lzReader.Apply(lz4.ConcurrencyOption(opts.Threads)); err != nil {
			tracelog.DebugLogger.Printf("lz4 reader rejected %d threads, decoding sequentially: %v", opts.Threads, err)
			lzReader = lz4.NewReader(nil)
		}
	}
	return computils.NewFrameSequenceReader(src, AlgorithmName, magicBytes, 0,
		func(source *bufio.Reader) (io.Reader, error) {
			frame := &frameReader{reader: lzReader, source: &eofWatcher{Reader: source}}
			lzReader.Reset(frame.source)
			return frame, nil
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

// frameReader decodes one frame. The lz4 reader reads a frame with exact reads, so a complete
// frame never meets the end of its source. If it did, the end mark or checksum is missing.
type frameReader struct {
	reader *lz4.Reader
	source *eofWatcher
}

func (r *frameReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	if err == io.EOF && r.source.reachedEOF.Load() {
		return n, io.ErrUnexpectedEOF
	}
	return n, err
}

// eofWatcher records a read that found its source exhausted. Concurrent decoding reads from other goroutines.
type eofWatcher struct {
	io.Reader
	reachedEOF atomic.Bool
}

func (w *eofWatcher) Read(p []byte) (int, error) {
	n, err := w.Reader.Read(p)
	if n == 0 && err == io.EOF {
		w.reachedEOF.Store(true)
	}
	return n, err
}
