package testtools

import (
	"sync"

	"github.com/depressor/depressor/internal/decompress"
	"github.com/pkg/errors"
)

// TrackingAllocator records every buffer handed out and returned.
// FailOnGet makes the n-th Get fail, counting from one; zero never fails.
type TrackingAllocator struct {
	FailOnGet int

	mutex       sync.Mutex
	allocator   decompress.Allocator
	gets        int
	outstanding map[*byte]int
	unknownPuts int
}

func NewTrackingAllocator() *TrackingAllocator {
	return &TrackingAllocator{
		allocator:   decompress.NewBufferPool(),
		outstanding: make(map[*byte]int),
	}
}

func (allocator *TrackingAllocator) Get(size int) ([]byte, error) {
	allocator.mutex.Lock()
	defer allocator.mutex.Unlock()
	allocator.gets++
	if allocator.gets == allocator.FailOnGet {
		return nil, errors.Errorf("allocation %d refused", allocator.gets)
	}
	buffer, err := allocator.allocator.Get(size)
	if err != nil {
		return nil, err
	}
	allocator.outstanding[&buffer[0]]++
	return buffer, nil
}

func (allocator *TrackingAllocator) Put(buffer []byte) {
	allocator.mutex.Lock()
	defer allocator.mutex.Unlock()
	if len(buffer) == 0 || allocator.outstanding[&buffer[0]] == 0 {
		allocator.unknownPuts++
		return
	}
	key := &buffer[0]
	if allocator.outstanding[key]--; allocator.outstanding[key] == 0 {
		delete(allocator.outstanding, key)
	}
	allocator.allocator.Put(buffer)
}

// Outstanding is the number of buffers obtained and not yet returned.
func (allocator *TrackingAllocator) Outstanding() int {
	allocator.mutex.Lock()
	defer allocator.mutex.Unlock()
	count := 0
	for _, n := range allocator.outstanding {
		count += n
	}
	return count
}

// UnknownPuts counts returns of buffers that were not outstanding.
func (allocator *TrackingAllocator) UnknownPuts() int {
	allocator.mutex.Lock()
	defer allocator.mutex.Unlock()
	return allocator.unknownPuts
}
