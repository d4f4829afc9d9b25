package decompress

import (
	"sync"

	"github.com/depressor/depressor/utility"
	"github.com/pkg/errors"
)

const (
	DefaultBufferSize = utility.KiB
	MinBufferSize     = 16
	MaxBufferSize     = 64 * utility.MiB
)

// Allocator hands out the fixed-size input and output buffers of a job.
// Every buffer obtained from Get is returned with Put exactly once.
type Allocator interface {
	Get(size int) ([]byte, error)
	Put(buffer []byte)
}

// BufferPool keeps one sync.Pool per buffer size so that jobs run back to back reuse memory.
type BufferPool struct {
	pools sync.Map
}

func NewBufferPool() *BufferPool {
	return &BufferPool{}
}

var DefaultAllocator Allocator = NewBufferPool()

func (bufferPool *BufferPool) Get(size int) ([]byte, error) {
	if size < MinBufferSize || size > MaxBufferSize {
		return nil, errors.Errorf("buffer size %d is outside of [%d, %d]", size, MinBufferSize, MaxBufferSize)
	}
	buffer := bufferPool.pool(size).Get().(*[]byte)
	return *buffer, nil
}

func (bufferPool *BufferPool) Put(buffer []byte) {
	size := cap(buffer)
	if size < MinBufferSize || size > MaxBufferSize {
		return
	}
	buffer = buffer[:size]
	bufferPool.pool(size).Put(&buffer)
}

func (bufferPool *BufferPool) pool(size int) *sync.Pool {
	if pool, ok := bufferPool.pools.Load(size); ok {
		return pool.(*sync.Pool)
	}
	pool, _ := bufferPool.pools.LoadOrStore(size, &sync.Pool{
		New: func() any {
			buffer := make([]byte, size)
			return &buffer
		},
	})
	return pool.(*sync.Pool)
}
