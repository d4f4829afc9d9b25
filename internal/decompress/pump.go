package decompress

import (
	"io"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/wal-g/tracelog"
)

type pumpState int32

const (
	stateReadingInput pumpState = iota
	stateFeedingEngine
	stateFlushingOutput
	stateStreamEnded
	stateFailed
)

func (state pumpState) String() string {
	switch state {
	case stateReadingInput:
		return "ReadingInput"
	case stateFeedingEngine:
		return "FeedingEngine"
	case stateFlushingOutput:
		return "FlushingOutput"
	case stateStreamEnded:
		return "StreamEnded"
	case stateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// pump drains the engine into a fixed output buffer and flushes it whenever it fills up
// or the stream ends. StreamEnded and Failed are terminal.
type pump struct {
	engine         io.Reader
	output         io.Writer
	outputPath     string
	buffer         []byte
	pending        int
	algorithm      string
	allowTruncated bool
	payloadBytes   func() int64

	state     atomic.Int32
	flushes   int64
	written   int64
	truncated bool
}

func (p *pump) setState(state pumpState) {
	p.state.Store(int32(state))
}

func (p *pump) currentState() pumpState {
	return pumpState(p.state.Load())
}

func (p *pump) run() error {
	for empty := 0; ; {
		p.setState(stateFeedingEngine)
		n, err := p.engine.Read(p.buffer[p.pending:])
		p.pending += n
		if p.pending == len(p.buffer) {
			if flushErr := p.flush(); flushErr != nil {
				return p.fail(flushErr)
			}
		}

		switch {
		case err == nil:
			if n > 0 {
				empty = 0
				continue
			}
			if empty++; empty >= maxEmptyReads {
				return p.fail(newDecompressionError(p.algorithm, io.ErrNoProgress))
			}
		case err == io.EOF:
			return p.finish()
		case errors.Is(err, io.ErrUnexpectedEOF) && p.allowTruncated:
			tracelog.WarningLogger.Printf("%s stream has no end-of-stream marker, keeping %d decoded bytes",
				p.algorithm, p.written+int64(p.pending))
			p.truncated = true
			return p.finish()
		case errors.Is(err, io.ErrUnexpectedEOF):
			return p.fail(newTruncatedStreamError(p.algorithm, p.payloadBytes()))
		default:
			return p.fail(newDecompressionError(p.algorithm, err))
		}
	}
}

func (p *pump) finish() error {
	if err := p.flush(); err != nil {
		return p.fail(err)
	}
	p.setState(stateStreamEnded)
	return nil
}

func (p *pump) fail(err error) error {
	p.setState(stateFailed)
	tracelog.DebugLogger.Printf("pump failed after writing %d bytes: %v", p.written, err)
	return err
}

func (p *pump) flush() error {
	if p.pending == 0 {
		return nil
	}
	p.setState(stateFlushingOutput)
	n, err := p.output.Write(p.buffer[:p.pending])
	p.written += int64(n)
	if err == nil && n < p.pending {
		err = io.ErrShortWrite
	}
	if err != nil {
		return newOutputWriteError(p.outputPath, err)
	}
	p.flushes++
	p.pending = 0
	return nil
}
