package cpu

import (
	"fmt"
	"math"

	"github.com/deepmind/slowfast-nfnets/internal/tensor"
)

// Scalar activation kernels. All compute in float64 and store back in the
// tensor's dtype.

func sigmoid(v float64) float64 {
	return 1.0 / (1.0 + math.Exp(-v))
}

// softplus computes log(1+exp(v)) without overflow for large v.
func softplus(v float64) float64 {
	if v > 30 {
		return v
	}
	return math.Log1p(math.Exp(v))
}

// ReLU computes max(0, x).
func (c *CPUBackend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	return c.unary("relu", x, func(v float64) float64 { return math.Max(v, 0) })
}

// ReLU6 computes min(max(0, x), 6).
func (c *CPUBackend) ReLU6(x *tensor.RawTensor) *tensor.RawTensor {
	return c.unary("relu6", x, func(v float64) float64 { return math.Min(math.Max(v, 0), 6) })
}

// LeakyReLU computes x for x >= 0 and negSlope*x otherwise.
func (c *CPUBackend) LeakyReLU(x *tensor.RawTensor, negSlope float64) *tensor.RawTensor {
	return c.unary("leaky_relu", x, func(v float64) float64 {
		if v >= 0 {
			return v
		}
		return negSlope * v
	})
}

// ELU computes x for x > 0 and alpha*(exp(x)-1) otherwise.
func (c *CPUBackend) ELU(x *tensor.RawTensor, alpha float64) *tensor.RawTensor {
	return c.unary("elu", x, func(v float64) float64 {
		if v > 0 {
			return v
		}
		return alpha * math.Expm1(v)
	})
}

// CELU computes max(0, x) + min(0, alpha*(exp(x/alpha)-1)).
func (c *CPUBackend) CELU(x *tensor.RawTensor, alpha float64) *tensor.RawTensor {
	return c.unary("celu", x, func(v float64) float64 {
		return math.Max(v, 0) + math.Min(0, alpha*math.Expm1(v/alpha))
	})
}

// SELU computes the self-normalizing ELU with its fixed lambda and alpha.
func (c *CPUBackend) SELU(x *tensor.RawTensor) *tensor.RawTensor {
	const (
		lambda = 1.0507009873554805
		alpha  = 1.6732632423543772
	)
	return c.unary("selu", x, func(v float64) float64 {
		if v > 0 {
			return lambda * v
		}
		return lambda * alpha * math.Expm1(v)
	})
}

// GELU computes the tanh approximation 0.5*x*(1+tanh(sqrt(2/pi)*(x+0.044715*x^3))).
func (c *CPUBackend) GELU(x *tensor.RawTensor) *tensor.RawTensor {
	sqrt2OverPi := math.Sqrt(2.0 / math.Pi)
	return c.unary("gelu", x, func(v float64) float64 {
		return 0.5 * v * (1.0 + math.Tanh(sqrt2OverPi*(v+0.044715*v*v*v)))
	})
}

// SiLU computes x*sigmoid(x).
func (c *CPUBackend) SiLU(x *tensor.RawTensor) *tensor.RawTensor {
	return c.unary("silu", x, func(v float64) float64 { return v * sigmoid(v) })
}

// Sigmoid computes 1/(1+exp(-x)).
func (c *CPUBackend) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	return c.unary("sigmoid", x, sigmoid)
}

// LogSigmoid computes log(sigmoid(x)) as -softplus(-x).
func (c *CPUBackend) LogSigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	return c.unary("log_sigmoid", x, func(v float64) float64 { return -softplus(-v) })
}

// Softplus computes log(1+exp(x)).
func (c *CPUBackend) Softplus(x *tensor.RawTensor) *tensor.RawTensor {
	return c.unary("softplus", x, softplus)
}

// Softsign computes x/(1+|x|).
func (c *CPUBackend) Softsign(x *tensor.RawTensor) *tensor.RawTensor {
	return c.unary("softsign", x, func(v float64) float64 { return v / (1.0 + math.Abs(v)) })
}

// Tanh computes the hyperbolic tangent.
func (c *CPUBackend) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	return c.unary("tanh", x, math.Tanh)
}

// LogSoftmax computes log(softmax(x)) along dim, numerically stabilized by
// subtracting the per-slice maximum.
func (c *CPUBackend) LogSoftmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	dim = normalizeDim("log_softmax", dim, len(shape))

	out, err := tensor.NewRaw(shape, x.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("log_softmax: %v", err))
	}

	outer, inner := 1, 1
	for d := 0; d < dim; d++ {
		outer *= shape[d]
	}
	for d := dim + 1; d < len(shape); d++ {
		inner *= shape[d]
	}
	n := shape[dim]

	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			base := o * n * inner
			maxV := math.Inf(-1)
			for k := 0; k < n; k++ {
				maxV = math.Max(maxV, load(x, base+k*inner+in))
			}
			sumExp := 0.0
			for k := 0; k < n; k++ {
				sumExp += math.Exp(load(x, base+k*inner+in) - maxV)
			}
			logSum := maxV + math.Log(sumExp)
			for k := 0; k < n; k++ {
				idx := base + k*inner + in
				store(out, idx, load(x, idx)-logSum)
			}
		}
	}
	return out
}
