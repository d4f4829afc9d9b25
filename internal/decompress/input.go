package decompress

import (
	"io"

	"github.com/depressor/depressor/utility"
)

// maxEmptyReads bounds consecutive reads that return neither data nor an error.
const maxEmptyReads = 100

// chunkReader feeds the engine from a fixed buffer that is refilled from the input file
// only once the engine has consumed all of it.
type chunkReader struct {
	reader   io.Reader
	buffer   []byte
	start    int
	end      int
	err      error
	chunks   int64
	total    int64
	onRefill func()
}

func newChunkReader(reader io.Reader, buffer []byte, onRefill func()) *chunkReader {
	return &chunkReader{reader: reader, buffer: buffer, onRefill: onRefill}
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.start == r.end {
		if err := r.fill(); err != nil {
			return 0, err
		}
	}
	n := copy(p, r.buffer[r.start:r.end])
	r.start += n
	return n, nil
}

func (r *chunkReader) ReadByte() (byte, error) {
	if r.start == r.end {
		if err := r.fill(); err != nil {
			return 0, err
		}
	}
	b := r.buffer[r.start]
	r.start++
	return b, nil
}

// Peek returns up to n buffered bytes without consuming them. A read error met while
// peeking is kept and reported by the next Read.
func (r *chunkReader) Peek(n int) []byte {
	n = utility.Min(n, len(r.buffer))
	for empty := 0; r.end-r.start < n && r.err == nil && empty < maxEmptyReads; {
		if r.start > 0 {
			r.end = copy(r.buffer, r.buffer[r.start:r.end])
			r.start = 0
		}
		read, err := r.readChunk(r.buffer[r.end:])
		r.end += read
		if read == 0 && err == nil {
			empty++
		}
	}
	n = utility.Min(n, r.end-r.start)
	return r.buffer[r.start : r.start+n]
}

func (r *chunkReader) fill() error {
	r.start, r.end = 0, 0
	for empty := 0; empty < maxEmptyReads; empty++ {
		if r.err != nil {
			return r.err
		}
		n, _ := r.readChunk(r.buffer)
		if n > 0 {
			r.end = n
			return nil
		}
	}
	return io.ErrNoProgress
}

func (r *chunkReader) readChunk(p []byte) (int, error) {
	if r.onRefill != nil {
		r.onRefill()
	}
	n, err := r.reader.Read(p)
	if n > 0 {
		r.chunks++
		r.total += int64(n)
	}
	if err != nil {
		r.err = err
	}
	return n, err
}
