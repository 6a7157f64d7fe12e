//go:build windows

package webgpu

import (
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
)

const (
	// Size thresholds for buffer categories.
	smallThreshold  = 4 * 1024    // 4KB
	mediumThreshold = 1024 * 1024 // 1MB
	maxPoolSize     = 32          // Max buffers per category
)

// pooledBuffer wraps a GPU buffer with metadata.
type pooledBuffer struct {
	buffer *wgpu.Buffer
	size   uint64
	usage  wgpu.BufferUsage
}

// bufferPool keeps storage buffers alive between kernel calls, so repeated ops over
// tensors of similar size skip the allocation. Buffers are bucketed by size category.
type bufferPool struct {
	device *wgpu.Device

	mu      sync.Mutex
	buckets [3][]*pooledBuffer

	hits, misses uint64
}

func newBufferPool(device *wgpu.Device) *bufferPool {
	return &bufferPool{device: device}
}

func category(size uint64) int {
	switch {
	case size < smallThreshold:
		return 0
	case size < mediumThreshold:
		return 1
	default:
		return 2
	}
}

// acquire returns a buffer of at least size bytes carrying every usage flag asked for.
func (p *bufferPool) acquire(size uint64, usage wgpu.BufferUsage) *pooledBuffer {
	p.mu.Lock()
	defer p.mu.Unlock()

	c := category(size)
	for i, pb := range p.buckets[c] {
		if pb.size >= size && pb.usage&usage == usage {
			p.buckets[c] = append(p.buckets[c][:i], p.buckets[c][i+1:]...)
			p.hits++
			return pb
		}
	}

	p.misses++
	return &pooledBuffer{
		buffer: p.device.CreateBuffer(&wgpu.BufferDescriptor{Usage: usage, Size: size}),
		size:   size,
		usage:  usage,
	}
}

// release hands pb back to the pool, or frees it when its bucket is full.
func (p *bufferPool) release(pb *pooledBuffer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	c := category(pb.size)
	if len(p.buckets[c]) >= maxPoolSize {
		pb.buffer.Release()
		return
	}
	p.buckets[c] = append(p.buckets[c], pb)
}

// clear frees every pooled buffer.
func (p *bufferPool) clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for c := range p.buckets {
		for _, pb := range p.buckets[c] {
			pb.buffer.Release()
		}
		p.buckets[c] = nil
	}
}

// stats returns pool hits, misses and the number of pooled buffers.
func (p *bufferPool) stats() (hits, misses uint64, pooled int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, b := range p.buckets {
		pooled += len(b)
	}
	return p.hits, p.misses, pooled
}
