package cpu

import (
	"math"

	"github.com/deepmind/slowfast-nfnets/internal/tensor"
)

// AddScalar adds a scalar to every element.
func (c *CPUBackend) AddScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return c.unary("add_scalar", x, func(v float64) float64 { return v + scalar })
}

// SubScalar subtracts a scalar from every element.
func (c *CPUBackend) SubScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return c.unary("sub_scalar", x, func(v float64) float64 { return v - scalar })
}

// MulScalar multiplies every element by a scalar.
func (c *CPUBackend) MulScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return c.unary("mul_scalar", x, func(v float64) float64 { return v * scalar })
}

// DivScalar divides every element by a scalar.
func (c *CPUBackend) DivScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return c.unary("div_scalar", x, func(v float64) float64 { return v / scalar })
}

// MaximumScalar takes the element-wise maximum with a scalar.
func (c *CPUBackend) MaximumScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return c.unary("maximum_scalar", x, func(v float64) float64 { return math.Max(v, scalar) })
}

// Exp computes the element-wise exponential.
func (c *CPUBackend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return c.unary("exp", x, math.Exp)
}

// Log computes the element-wise natural logarithm.
func (c *CPUBackend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	return c.unary("log", x, math.Log)
}

// Sqrt computes the element-wise square root.
func (c *CPUBackend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return c.unary("sqrt", x, math.Sqrt)
}

// Rsqrt computes the element-wise reciprocal square root.
func (c *CPUBackend) Rsqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return c.unary("rsqrt", x, func(v float64) float64 { return 1.0 / math.Sqrt(v) })
}
