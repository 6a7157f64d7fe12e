//go:build !windows

package webgpu

import (
	"github.com/pkg/errors"

	"github.com/born-ml/elementwise/internal/dispatch"
	"github.com/born-ml/elementwise/internal/tensor"
)

// Backend is the WebGPU backend. The device path is only built on windows.
type Backend struct{}

// New always fails on this platform.
func New() (*Backend, error) {
	return nil, errors.Wrap(ErrUnavailable, "device path is only built on windows")
}

// Name returns the backend name.
func (b *Backend) Name() string { return "WebGPU" }

// Device returns the device the backend's kernels would be registered on.
func (b *Backend) Device() tensor.Device { return tensor.WebGPU }

// Register does nothing on this platform.
func (b *Backend) Register(*dispatch.Registry) {}

// PoolStats reports an empty pool.
func (b *Backend) PoolStats() (hits, misses uint64, pooled int) { return 0, 0, 0 }

// Release does nothing on this platform.
func (b *Backend) Release() {}
