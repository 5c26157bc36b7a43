package cpu

import (
	"fmt"

	"github.com/deepmind/slowfast-nfnets/internal/tensor"
)

// MatMul multiplies two 2D tensors: [M, K] @ [K, N] -> [M, N].
func (c *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape, bShape := a.Shape(), b.Shape()
	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: expected 2D operands, got %v and %v", aShape, bShape))
	}
	if aShape[1] != bShape[0] {
		panic(fmt.Sprintf("matmul: inner dimensions mismatch: %v @ %v", aShape, bShape))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("matmul: dtype mismatch %s vs %s", a.DType(), b.DType()))
	}

	m, k, n := aShape[0], aShape[1], bShape[1]
	out, err := tensor.NewRaw(tensor.Shape{m, n}, a.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("matmul: %v", err))
	}

	switch a.DType() {
	case tensor.Float32:
		matmulTyped(out.AsFloat32(), a.AsFloat32(), b.AsFloat32(), m, k, n)
	case tensor.Float64:
		matmulTyped(out.AsFloat64(), a.AsFloat64(), b.AsFloat64(), m, k, n)
	default:
		panic(fmt.Sprintf("matmul: unsupported dtype %s", a.DType()))
	}
	return out
}

func matmulTyped[T float32 | float64](out, a, b []T, m, k, n int) {
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var sum T
			for p := 0; p < k; p++ {
				sum += a[i*k+p] * b[p*n+j]
			}
			out[i*n+j] = sum
		}
	}
}
