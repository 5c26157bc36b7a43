package nn

import (
	"fmt"

	"github.com/deepmind/slowfast-nfnets/internal/tensor"
)

// GLU computes the gated linear unit along the last dimension:
// the input is split in half into (a, b) and the result is a * sigmoid(b).
// The output's last dimension is half the input's.
func GLU[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := x.Shape()
	last := len(shape) - 1
	if last < 0 || shape[last]%2 != 0 {
		panic(fmt.Sprintf("glu: last dimension must be even, got shape %v", shape))
	}
	parts := x.Chunk(2, last)
	return parts[0].Mul(Sigmoid(parts[1]))
}
