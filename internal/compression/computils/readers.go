package computils

import (
	"bufio"
	"bytes"
	"io"

	"github.com/wal-g/tracelog"
)

// LazyReadCloser postpones building a decoder until the first Read.
// Decoders that parse their stream header in the constructor would otherwise
// turn bad data into an initialization failure.
type LazyReadCloser struct {
	open   func() (io.ReadCloser, error)
	reader io.ReadCloser
	err    error
}

func NewLazyReadCloser(open func() (io.ReadCloser, error)) *LazyReadCloser {
	return &LazyReadCloser{open: open}
}

func (r *LazyReadCloser) Read(p []byte) (int, error) {
	if r.reader == nil {
		if r.err != nil {
			return 0, r.err
		}
		r.reader, r.err = r.open()
		if r.err != nil {
			// an empty payload has no end-of-stream marker either
			if r.err == io.EOF {
				r.err = io.ErrUnexpectedEOF
			}
			return 0, r.err
		}
	}
	return r.reader.Read(p)
}

func (r *LazyReadCloser) Close() error {
	if r.reader == nil {
		return nil
	}
	return r.reader.Close()
}

// TrailingDataReader ends the logical stream at a frame boundary that is not followed by another frame.
// isBoundaryError recognizes the engine error for a bad frame header. It is only honoured once
// a complete frame is known to precede it: either the wrapped reader was built after parsing the
// first frame header, or it has already produced output.
type TrailingDataReader struct {
	io.ReadCloser
	algorithm       string
	isBoundaryError func(error) bool
	headerParsed    bool
	produced        bool
	ended           bool
}

func NewTrailingDataReader(reader io.ReadCloser, algorithm string, headerParsed bool,
	isBoundaryError func(error) bool) *TrailingDataReader {
	return &TrailingDataReader{
		ReadCloser:      reader,
		algorithm:       algorithm,
		isBoundaryError: isBoundaryError,
		headerParsed:    headerParsed,
	}
}

func (r *TrailingDataReader) Read(p []byte) (int, error) {
	if r.ended {
		return 0, io.EOF
	}
	n, err := r.ReadCloser.Read(p)
	if n > 0 {
		r.produced = true
	}
	if err != nil && err != io.EOF && (r.headerParsed || r.produced) && r.isBoundaryError(err) {
		tracelog.WarningLogger.Printf("ignoring trailing data after the last %s frame: %v", r.algorithm, err)
		r.ended = true
		return n, io.EOF
	}
	return n, err
}

// FrameSequenceReader decodes frames stored back to back as one stream. After each frame it
// skips zero padding groups of paddingSize bytes, if any are allowed, and starts another frame
// only when the next bytes carry magic. Anything else that follows is logged and ignored.
type FrameSequenceReader struct {
	source      *bufio.Reader
	algorithm   string
	magic       []byte
	paddingSize int
	openFrame   func(source *bufio.Reader) (io.Reader, error)
	frame       io.Reader
	frames      int
	ended       bool
}

func NewFrameSequenceReader(src io.Reader, algorithm string, magic []byte, paddingSize int,
	openFrame func(source *bufio.Reader) (io.Reader, error)) *FrameSequenceReader {
	return &FrameSequenceReader{
		source:      bufio.NewReader(src),
		algorithm:   algorithm,
		magic:       magic,
		paddingSize: paddingSize,
		openFrame:   openFrame,
	}
}

func (r *FrameSequenceReader) Read(p []byte) (int, error) {
	for !r.ended {
		if r.frame == nil {
			if err := r.nextFrame(); err != nil {
				return 0, err
			}
			continue
		}
		n, err := r.frame.Read(p)
		if err == io.EOF {
			r.frames++
			r.frame = nil
			if n == 0 {
				continue
			}
			err = nil
		}
		return n, err
	}
	return 0, io.EOF
}

func (r *FrameSequenceReader) Close() error {
	if closer, ok := r.frame.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (r *FrameSequenceReader) nextFrame() error {
	if r.frames > 0 {
		if err := r.skipPadding(); err != nil {
			return err
		}
		header, err := r.source.Peek(len(r.magic))
		if len(header) < len(r.magic) && err != nil && err != io.EOF {
			return err
		}
		if !bytes.Equal(header, r.magic) {
			if len(header) > 0 {
				tracelog.WarningLogger.Printf("ignoring trailing data after %d %s frame(s)", r.frames, r.algorithm)
			}
			r.ended = true
			return nil
		}
	}
	frame, err := r.openFrame(r.source)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	r.frame = frame
	return nil
}

func (r *FrameSequenceReader) skipPadding() error {
	if r.paddingSize == 0 {
		return nil
	}
	zeros := make([]byte, r.paddingSize)
	for {
		group, err := r.source.Peek(r.paddingSize)
		if !bytes.Equal(group, zeros) {
			if len(group) < r.paddingSize && err != nil && err != io.EOF {
				return err
			}
			return nil
		}
		if _, err = r.source.Discard(r.paddingSize); err != nil {
			return err
		}
	}
}

// MatchesMagic reports whether header starts with any of the given signatures.
func MatchesMagic(header []byte, signatures ...[]byte) bool {
	for _, signature := range signatures {
		if bytes.HasPrefix(header, signature) {
			return true
		}
	}
	return false
}
