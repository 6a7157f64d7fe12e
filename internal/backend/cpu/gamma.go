package cpu

import (
	"math"

	"gonum.org/v1/gonum/mathext"
)

// digamma is the logarithmic derivative of the gamma function.
// It is -Inf/+Inf at ±0 and NaN at negative integers.
func digamma(x float64) float64 {
	if x == 0 {
		return math.Copysign(math.Inf(1), -x)
	}
	return mathext.Digamma(x)
}

// trigamma is the first derivative of digamma, using the reflection formula below 1/2.
func trigamma(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return x
	case math.IsInf(x, 1):
		return 0
	case x <= 0 && x == math.Trunc(x):
		return math.Inf(1)
	case x < 0.5:
		s := math.Sin(math.Pi * x)
		return math.Pi*math.Pi/(s*s) - mathext.Zeta(2, 1-x)
	}
	return mathext.Zeta(2, x)
}

// polygamma is the n-th derivative of digamma:
//
//	ψ⁽ⁿ⁾(x) = (-1)ⁿ⁺¹ n! ζ(n+1, x)
//
// Poles at zero and the negative integers yield an infinity of the sign of (-1)ⁿ⁺¹.
func polygamma(n int64, x float64) float64 {
	switch n {
	case 0:
		return digamma(x)
	case 1:
		return trigamma(x)
	}

	sign := 1.0
	if n%2 == 0 {
		sign = -1
	}
	switch {
	case math.IsNaN(x):
		return x
	case math.IsInf(x, 1):
		return 0
	case x <= 0 && x == math.Trunc(x):
		return math.Inf(int(sign))
	}
	factorial := math.Gamma(float64(n + 1))
	return sign * factorial * mathext.Zeta(float64(n+1), x)
}
