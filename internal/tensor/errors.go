package tensor

import "github.com/pkg/errors"

// Error categories raised by the dispatch layer. Failures wrap one of these with
// errors.Wrapf, so callers match them with errors.Is.
var (
	// ErrUnsupportedDtype is raised when an op does not support the dtype category of its input.
	ErrUnsupportedDtype = errors.New("unsupported dtype")

	// ErrUnsupportedOperation is raised when an op is structurally undefined for the input kind.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrTypeMismatch is raised when the requested output dtype cannot hold the computed result.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidArgument is raised for parameters out of domain and incompatible operands.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrLayoutUnsupported is raised when a non-strided layout reaches a strided-only op.
	ErrLayoutUnsupported = errors.New("layout unsupported")

	// ErrDeviceMismatch is raised when operands of one call live on different devices.
	ErrDeviceMismatch = errors.New("device mismatch")

	// ErrMemoryOverlap is raised when the output partially aliases an input or itself.
	ErrMemoryOverlap = errors.New("memory overlap")

	// ErrNotImplemented is raised when no kernel is registered for an op on a device.
	ErrNotImplemented = errors.New("not implemented")
)
