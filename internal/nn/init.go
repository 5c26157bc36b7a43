package nn

import (
	"math"
	"math/rand"

	"github.com/deepmind/slowfast-nfnets/internal/tensor"
)

// VarianceScaling initializes a tensor with values from N(0, scale/fan_in).
//
// This is the fan-in scaled normal initializer used for weight-standardized
// convolution kernels (standardization is largely insensitive to the
// choice, but fan-in scaling keeps pre-standardization magnitudes sane).
func VarianceScaling[B tensor.Backend](scale float64, fanIn int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	stddev := math.Sqrt(scale / float64(fanIn))

	t := tensor.Zeros[float32](shape, backend)
	data := t.Data()
	for i := range data {
		//nolint:gosec // math/rand for weight initialization
		data[i] = float32(rand.NormFloat64() * stddev)
	}
	return t
}

// Xavier initializes a tensor with Glorot uniform values:
// U(-sqrt(6/(fan_in+fan_out)), sqrt(6/(fan_in+fan_out))).
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	t := tensor.Zeros[float32](shape, backend)
	data := t.Data()
	for i := range data {
		//nolint:gosec // math/rand for weight initialization
		data[i] = float32((rand.Float64()*2.0 - 1.0) * bound)
	}
	return t
}

// Zeros creates a zero-filled tensor. Used for bias initialization.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Zeros[float32](shape, backend)
}

// Ones creates a one-filled tensor. Used for gain initialization.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Ones[float32](shape, backend)
}
