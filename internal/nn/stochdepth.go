package nn

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/deepmind/slowfast-nfnets/internal/tensor"
)

// StochDepth randomly drops entire residual branches per batch element.
//
// In training mode each batch element keeps its branch with probability
// 1 - dropRate, sampled with floor(keep_prob + U[0,1)). The binary mask has
// shape [N, 1, ..., 1] so it broadcasts across the remaining axes. With
// scaleByKeep set, kept branches are rescaled by 1/keep_prob so the
// expected value matches eval mode.
//
// StochDepth does not satisfy Module: Forward takes the training flag and
// the random source explicitly so callers control both.
type StochDepth[B tensor.Backend] struct {
	dropRate    float64
	scaleByKeep bool
}

// NewStochDepth creates a stochastic depth layer. dropRate must be in
// [0, 1); a drop rate of 1 would zero every branch.
func NewStochDepth[B tensor.Backend](dropRate float64, scaleByKeep bool) *StochDepth[B] {
	if dropRate < 0 || dropRate >= 1 {
		panic(fmt.Sprintf("stochdepth: drop rate %v outside [0, 1)", dropRate))
	}
	return &StochDepth[B]{dropRate: dropRate, scaleByKeep: scaleByKeep}
}

// Forward applies the per-batch-element drop mask. In eval mode the input
// is returned unchanged and rng is not consulted. In training mode rng must
// be non-nil and exactly one uniform draw is made per batch element.
func (s *StochDepth[B]) Forward(x *tensor.Tensor[float32, B], isTraining bool, rng *rand.Rand) *tensor.Tensor[float32, B] {
	if !isTraining {
		return x
	}
	if rng == nil {
		panic("stochdepth: nil rng in training mode")
	}

	shape := x.Shape()
	if len(shape) == 0 {
		panic("stochdepth: scalar input has no batch axis")
	}
	batch := shape[0]
	keep := 1.0 - s.dropRate

	maskShape := make(tensor.Shape, len(shape))
	maskShape[0] = batch
	for i := 1; i < len(shape); i++ {
		maskShape[i] = 1
	}
	mask := Zeros(maskShape, x.Backend())
	data := mask.Data()
	for i := 0; i < batch; i++ {
		data[i] = float32(math.Floor(keep + rng.Float64()))
	}

	if s.scaleByKeep {
		x = x.DivScalar(keep)
	}
	return x.Mul(mask)
}

// DropRate returns the configured branch drop probability.
func (s *StochDepth[B]) DropRate() float64 {
	return s.dropRate
}

// ScaleByKeep reports whether kept branches are rescaled by 1/keep_prob.
func (s *StochDepth[B]) ScaleByKeep() bool {
	return s.scaleByKeep
}
