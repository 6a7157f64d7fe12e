// Package dispatch holds the kernel table: a mapping from (op, device) to the kernel
// that fills an iteration plan's output on that device.
package dispatch

import (
	"slices"
	"sync"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/elementwise/internal/iter"
	"github.com/born-ml/elementwise/internal/tensor"
)

// KernelFunc computes an op over every element of p and writes p's output.
// params carries the op's extra scalar parameters (clamp bounds, polygamma order, ...).
// A kernel keeps no state and never fails once the plan is valid.
type KernelFunc func(p *iter.Plan, params ...tensor.Scalar)

type key struct {
	op     OpID
	device tensor.Device
}

type entry struct {
	fn     KernelFunc
	dtypes map[tensor.DataType]bool
}

// Registry is the kernel table. Device backends populate it once at start-up; the
// variant adapter looks kernels up on every call.
type Registry struct {
	mu            sync.RWMutex
	kernels       map[key]entry
	complexToReal map[key]KernelFunc
}

// NewRegistry creates an empty kernel table.
func NewRegistry() *Registry {
	return &Registry{
		kernels:       make(map[key]entry),
		complexToReal: make(map[key]KernelFunc),
	}
}

// Register installs fn as the kernel of op on device for the given input dtypes.
// Registering the same (op, device) again replaces the previous kernel.
func (r *Registry) Register(op OpID, device tensor.Device, fn KernelFunc, dtypes ...tensor.DataType) {
	set := make(map[tensor.DataType]bool, len(dtypes))
	for _, dt := range dtypes {
		set[dt] = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{op, device}
	if _, found := r.kernels[k]; found {
		klog.Warningf("dispatch: replacing kernel for %s on %s", op, device)
	}
	r.kernels[k] = entry{fn: fn, dtypes: set}
	klog.V(2).Infof("dispatch: registered %s on %s for %d dtypes", op, device, len(dtypes))
}

// RegisterComplexToReal installs a kernel that reads a complex input and writes the
// real counterpart dtype directly, for ops whose natural result on complex values is real.
func (r *Registry) RegisterComplexToReal(op OpID, device tensor.Device, fn KernelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.complexToReal[key{op, device}] = fn
	klog.V(2).Infof("dispatch: registered complex-to-real %s on %s", op, device)
}

// Lookup returns the kernel of op on device, checking that it accepts dtype.
func (r *Registry) Lookup(op OpID, device tensor.Device, dtype tensor.DataType) (KernelFunc, error) {
	r.mu.RLock()
	e, found := r.kernels[key{op, device}]
	r.mu.RUnlock()
	if !found {
		return nil, errors.Wrapf(tensor.ErrNotImplemented, "no kernel registered for %s on %s", op, device)
	}
	if !e.dtypes[dtype] {
		return nil, errors.Wrapf(tensor.ErrUnsupportedDtype, "%s not implemented for '%s'", op, dtype)
	}
	return e.fn, nil
}

// LookupComplexToReal returns the complex-to-real kernel of op on device, if any.
func (r *Registry) LookupComplexToReal(op OpID, device tensor.Device) (KernelFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, found := r.complexToReal[key{op, device}]
	return fn, found
}

// Ops returns every op with at least one kernel, sorted.
func (r *Registry) Ops() []OpID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ops []OpID
	for k := range r.kernels {
		if !slices.Contains(ops, k.op) {
			ops = append(ops, k.op)
		}
	}
	slices.Sort(ops)
	return ops
}

// Devices returns the devices op has a kernel on.
func (r *Registry) Devices(op OpID) []tensor.Device {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var devices []tensor.Device
	for k := range r.kernels {
		if k.op == op {
			devices = append(devices, k.device)
		}
	}
	slices.Sort(devices)
	return devices
}

// DTypes returns the input dtypes the kernel of op on device accepts.
func (r *Registry) DTypes(op OpID, device tensor.Device) []tensor.DataType {
	r.mu.RLock()
	e := r.kernels[key{op, device}]
	r.mu.RUnlock()
	dtypes := make([]tensor.DataType, 0, len(e.dtypes))
	for dt := range e.dtypes {
		dtypes = append(dtypes, dt)
	}
	slices.Sort(dtypes)
	return dtypes
}
