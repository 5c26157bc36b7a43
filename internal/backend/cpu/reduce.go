package cpu

import (
	"fmt"

	"github.com/deepmind/slowfast-nfnets/internal/tensor"
)

// normalizeDim resolves negative dims (counting from the end) and bounds-checks.
func normalizeDim(op string, dim, rank int) int {
	if dim < 0 {
		dim += rank
	}
	if dim < 0 || dim >= rank {
		panic(fmt.Sprintf("%s: dimension %d out of range for rank %d", op, dim, rank))
	}
	return dim
}

// Sum reduces the whole tensor to a single-element tensor of shape [1].
func (c *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	out, err := tensor.NewRaw(tensor.Shape{1}, x.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("sum: %v", err))
	}
	acc := 0.0
	for i := 0; i < x.NumElements(); i++ {
		acc += load(x, i)
	}
	store(out, 0, acc)
	return out
}

// SumDim sums along a dimension.
func (c *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return c.reduceDim("sum_dim", x, dim, keepDim, false)
}

// MeanDim averages along a dimension.
func (c *CPUBackend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return c.reduceDim("mean_dim", x, dim, keepDim, true)
}

func (c *CPUBackend) reduceDim(op string, x *tensor.RawTensor, dim int, keepDim, mean bool) *tensor.RawTensor {
	shape := x.Shape()
	dim = normalizeDim(op, dim, len(shape))

	// Output shape with the reduced dim kept as 1; squeeze afterwards if
	// keepDim is false.
	keptShape := shape.Clone()
	keptShape[dim] = 1

	out, err := tensor.NewRaw(keptShape, x.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}

	// outer = product of dims before dim, inner = product after.
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
			acc := 0.0
			base := o * n * inner
			for k := 0; k < n; k++ {
				acc += load(x, base+k*inner+in)
			}
			if mean {
				acc /= float64(n)
			}
			store(out, o*inner+in, acc)
		}
	}

	if keepDim {
		return out
	}
	squeezed := make(tensor.Shape, 0, len(shape)-1)
	for d, size := range shape {
		if d != dim {
			squeezed = append(squeezed, size)
		}
	}
	return c.Reshape(out, squeezed)
}
