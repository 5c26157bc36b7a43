// Package nn implements the SlowFast-NFNet building blocks:
//   - WSConv2D: convolution with scaled weight standardization
//   - SqueezeExcite: channel attention gate from globally pooled context
//   - StochDepth: per-sample residual-branch dropout
//   - Linear and the gain-corrected nonlinearity table
//
// Layers are pure forward transforms. Parameters are explicit structs
// created once at construction time and owned by the caller; gradient
// computation and optimization belong to an external training loop.
package nn

import (
	"github.com/deepmind/slowfast-nfnets/internal/tensor"
)

// Module is the base interface for network components with a plain
// input -> output forward pass.
//
// Layers whose forward pass takes extra arguments (StochDepth needs a
// training flag and an RNG) expose Parameters but not this interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module for the given input.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all trainable parameters of this module,
	// or an empty slice for parameter-free modules.
	Parameters() []*Parameter[B]
}
