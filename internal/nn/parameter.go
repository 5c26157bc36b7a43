package nn

import (
	"github.com/deepmind/slowfast-nfnets/internal/tensor"
)

// Parameter is a learnable tensor (a convolution kernel, a gain or bias
// vector, a linear weight). Parameters are created once when a layer is
// constructed and updated in place by an external training loop; the layers
// in this package only read them.
type Parameter[B tensor.Backend] struct {
	name   string
	tensor *tensor.Tensor[float32, B]
}

// NewParameter creates a parameter from an initialized tensor.
//
// The name is descriptive ("wsconv2d.gain", "linear.weight") and used for
// identification by external parameter consumers.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{name: name, tensor: t}
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.tensor
}
