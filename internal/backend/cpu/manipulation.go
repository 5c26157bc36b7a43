package cpu

import (
	"fmt"

	"github.com/deepmind/slowfast-nfnets/internal/tensor"
)

// Reshape returns a copy of the data with a new shape.
// The element count must be unchanged.
func (c *CPUBackend) Reshape(x *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if newShape.NumElements() != x.NumElements() {
		panic(fmt.Sprintf("reshape: cannot reshape %v (%d elements) to %v (%d elements)",
			x.Shape(), x.NumElements(), newShape, newShape.NumElements()))
	}
	out, err := tensor.NewRaw(newShape, x.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	copy(out.Data(), x.Data())
	return out
}

// Chunk splits x into n equal parts along dim.
// The dimension size must be divisible by n.
func (c *CPUBackend) Chunk(x *tensor.RawTensor, n, dim int) []*tensor.RawTensor {
	shape := x.Shape()
	dim = normalizeDim("chunk", dim, len(shape))
	if n <= 0 || shape[dim]%n != 0 {
		panic(fmt.Sprintf("chunk: cannot split dimension %d of size %d into %d parts", dim, shape[dim], n))
	}

	partSize := shape[dim] / n
	partShape := shape.Clone()
	partShape[dim] = partSize

	outer, inner := 1, 1
	for d := 0; d < dim; d++ {
		outer *= shape[d]
	}
	for d := dim + 1; d < len(shape); d++ {
		inner *= shape[d]
	}

	parts := make([]*tensor.RawTensor, n)
	for p := 0; p < n; p++ {
		out, err := tensor.NewRaw(partShape, x.DType(), c.device)
		if err != nil {
			panic(fmt.Sprintf("chunk: %v", err))
		}
		for o := 0; o < outer; o++ {
			for k := 0; k < partSize; k++ {
				srcBase := (o*shape[dim] + p*partSize + k) * inner
				dstBase := (o*partSize + k) * inner
				for in := 0; in < inner; in++ {
					store(out, dstBase+in, load(x, srcBase+in))
				}
			}
		}
		parts[p] = out
	}
	return parts
}
