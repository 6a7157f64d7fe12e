//go:build windows

package webgpu

import (
	"encoding/binary"
	"sync"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/elementwise/internal/dispatch"
	"github.com/born-ml/elementwise/internal/iter"
	"github.com/born-ml/elementwise/internal/tensor"
)

// Backend runs unary kernels on a WebGPU device.
//
// Tensors tagged tensor.WebGPU keep their elements in host storage; every kernel call
// gathers the input into a dense upload, runs the op's shader and scatters the result
// back through the plan's offsets.
type Backend struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	// Pipeline cache, one per op.
	mu        sync.Mutex
	shaders   map[dispatch.OpID]*wgpu.ShaderModule
	pipelines map[dispatch.OpID]*wgpu.ComputePipeline

	pool *bufferPool
}

// New acquires the default WebGPU adapter and device.
// It returns an error wrapping ErrUnavailable if the native library or a device is missing.
func New() (*Backend, error) {
	var (
		b   *Backend
		err error
	)
	if e := exceptions.Try(func() { b, err = open() }); e != nil {
		return nil, errors.Wrapf(ErrUnavailable, "native library: %v", e)
	}
	if err != nil {
		return nil, err
	}
	klog.V(2).Infof("webgpu: device acquired")
	return b, nil
}

func open() (*Backend, error) {
	instance := wgpu.CreateInstance(nil)
	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		instance.Release()
		return nil, errors.Wrapf(ErrUnavailable, "failed to request adapter: %v", err)
	}
	device, err := adapter.RequestDevice(nil)
	if err != nil {
		adapter.Release()
		instance.Release()
		return nil, errors.Wrapf(ErrUnavailable, "failed to request device: %v", err)
	}
	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, errors.Wrap(ErrUnavailable, "failed to get queue")
	}
	return &Backend{
		instance:  instance,
		adapter:   adapter,
		device:    device,
		queue:     queue,
		shaders:   make(map[dispatch.OpID]*wgpu.ShaderModule),
		pipelines: make(map[dispatch.OpID]*wgpu.ComputePipeline),
		pool:      newBufferPool(device),
	}, nil
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "WebGPU"
}

// Device returns the device the backend's kernels are registered on.
func (b *Backend) Device() tensor.Device {
	return tensor.WebGPU
}

// Register installs a Float32 kernel for every op in SupportedOps.
func (b *Backend) Register(reg *dispatch.Registry) {
	for _, op := range SupportedOps() {
		reg.Register(op, tensor.WebGPU, b.kernel(op), tensor.Float32)
	}
}

// PoolStats returns buffer pool hits, misses and the number of pooled buffers.
func (b *Backend) PoolStats() (hits, misses uint64, pooled int) {
	return b.pool.stats()
}

// Release frees every GPU resource. The backend must not be used afterwards.
func (b *Backend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pool.clear()
	for _, p := range b.pipelines {
		p.Release()
	}
	b.pipelines = nil
	for _, s := range b.shaders {
		s.Release()
	}
	b.shaders = nil

	b.queue.Release()
	b.device.Release()
	b.adapter.Release()
	b.instance.Release()
}

func (b *Backend) kernel(op dispatch.OpID) dispatch.KernelFunc {
	return func(p *iter.Plan, _ ...tensor.Scalar) {
		if err := b.run(op, p); err != nil {
			exceptions.Panicf("webgpu: %s failed: %+v", op, err)
		}
	}
}

// pipeline returns the cached compute pipeline of op, compiling it on first use.
func (b *Backend) pipeline(op dispatch.OpID) *wgpu.ComputePipeline {
	b.mu.Lock()
	defer b.mu.Unlock()
	if p, found := b.pipelines[op]; found {
		return p
	}
	code, found := unaryShader(op)
	if !found {
		exceptions.Panicf("webgpu: no shader for %s", op)
	}
	shader := b.device.CreateShaderModuleWGSL(code)
	p := b.device.CreateComputePipelineSimple(nil, shader, "main")
	b.shaders[op] = shader
	b.pipelines[op] = p
	klog.V(2).Infof("webgpu: compiled pipeline for %s", op)
	return p
}

// run computes op over the plan on the GPU.
func (b *Backend) run(op dispatch.OpID, p *iter.Plan) error {
	n := p.NumElements()
	if n == 0 {
		return nil
	}

	host := make([]float32, n)
	in := tensor.Elements[float32](p.Input(0))
	i := 0
	p.ForEach(func(offsets []int) {
		host[i] = in[offsets[1]]
		i++
	})

	pipeline := b.pipeline(op)
	//nolint:gosec // G115: element counts are non-negative
	size := uint64(n * 4)

	//nolint:gosec // unsafe.Slice for zero-copy conversion of the upload
	input := b.createBuffer(unsafe.Slice((*byte)(unsafe.Pointer(&host[0])), size), wgpu.BufferUsageStorage)
	defer input.Release()

	result := b.pool.acquire(size, wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer b.pool.release(result)

	params := make([]byte, 16) // 16-byte aligned
	//nolint:gosec // G115: element counts fit in u32 on any supported device
	binary.LittleEndian.PutUint32(params[0:4], uint32(n))
	uniform := b.createBuffer(params, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)
	defer uniform.Release()

	bindGroup := b.device.CreateBindGroupSimple(pipeline.GetBindGroupLayout(0), []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, input, 0, size),
		wgpu.BufferBindingEntry(1, result.buffer, 0, size),
		wgpu.BufferBindingEntry(2, uniform, 0, 16),
	})
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	x, y := workgroups(n)
	pass.DispatchWorkgroups(x, y, 1)
	pass.End()
	b.queue.Submit(encoder.Finish(nil))

	data, err := b.readBuffer(result.buffer, size)
	if err != nil {
		return err
	}
	//nolint:gosec // unsafe.Slice for zero-copy conversion of the readback
	values := unsafe.Slice((*float32)(unsafe.Pointer(&data[0])), n)
	out := tensor.Elements[float32](p.Output())
	i = 0
	p.ForEach(func(offsets []int) {
		out[offsets[0]] = values[i]
		i++
	})
	return nil
}

// createBuffer creates a GPU buffer holding data.
func (b *Backend) createBuffer(data []byte, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := uint64(len(data))
	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})
	mapped := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	copy(unsafe.Slice((*byte)(mapped), size), data)
	buffer.Unmap()
	return buffer
}

// readBuffer copies size bytes of src back to host memory through a staging buffer.
func (b *Backend) readBuffer(src *wgpu.Buffer, size uint64) ([]byte, error) {
	staging := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer staging.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(src, 0, staging, 0, size)
	b.queue.Submit(encoder.Finish(nil))

	if err := staging.MapAsync(b.device, wgpu.MapModeRead, 0, size); err != nil {
		return nil, errors.Wrap(err, "failed to map staging buffer")
	}
	mapped := staging.GetMappedRange(0, size)
	out := make([]byte, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	copy(out, unsafe.Slice((*byte)(mapped), size))
	staging.Unmap()
	return out, nil
}
