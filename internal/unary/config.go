package unary

import "github.com/born-ml/elementwise/internal/iter"

// Config controls the validation done by the ops.
type Config struct {
	// Iter is the plan validation applied to every kernel call.
	Iter iter.Config

	// MvlgammaDomainCheck makes mvlgamma scan its input for elements <= (p-1)/2 and
	// fail before computing. Without it those elements produce NaN or Inf.
	MvlgammaDomainCheck bool
}

// DefaultConfig returns the configuration with every check enabled.
func DefaultConfig() Config {
	return Config{
		Iter:                iter.DefaultConfig(),
		MvlgammaDomainCheck: true,
	}
}
