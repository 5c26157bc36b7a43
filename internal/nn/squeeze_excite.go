package nn

import (
	"fmt"

	"github.com/deepmind/slowfast-nfnets/internal/tensor"
)

// SqueezeExcite computes a per-channel sigmoid gate from globally pooled
// features:
//
//	gate = sigmoid(fc1(act(fc0(mean_{H,W}(x)))))
//
// The result has shape [N, 1, 1, C_out] so it broadcasts against the
// feature map it modulates. Callers multiply the gate in themselves (NFNet
// blocks additionally scale by 2 to preserve variance at initialization).
type SqueezeExcite[B tensor.Backend] struct {
	inChannels     int
	outChannels    int
	hiddenChannels int
	fc0            *Linear[B]
	fc1            *Linear[B]
	act            Activation[B]
	backend        B
}

// NewSqueezeExcite creates a squeeze-and-excite gate.
//
// The bottleneck width is hiddenCh when positive; otherwise it is derived
// as max(1, int(float64(inCh)*seRatio)). When both hiddenCh and seRatio are
// unset an error is returned. A nil act defaults to ReLU.
func NewSqueezeExcite[B tensor.Backend](inCh, outCh int, seRatio float64, hiddenCh int, act Activation[B], backend B) (*SqueezeExcite[B], error) {
	if inCh <= 0 || outCh <= 0 {
		return nil, fmt.Errorf("squeeze_excite: invalid channels in=%d, out=%d", inCh, outCh)
	}
	if hiddenCh <= 0 {
		if seRatio <= 0 {
			return nil, fmt.Errorf("squeeze_excite: must set either se_ratio (%v) or hidden_channels (%d)", seRatio, hiddenCh)
		}
		hiddenCh = int(float64(inCh) * seRatio)
		if hiddenCh < 1 {
			hiddenCh = 1
		}
	}
	if act == nil {
		act = ReLU[B]
	}
	return &SqueezeExcite[B]{
		inChannels:     inCh,
		outChannels:    outCh,
		hiddenChannels: hiddenCh,
		fc0:            NewLinear(inCh, hiddenCh, backend),
		fc1:            NewLinear(hiddenCh, outCh, backend),
		act:            act,
		backend:        backend,
	}, nil
}

// Forward pools the input over its spatial axes, runs the two-layer
// bottleneck, and returns sigmoid gates of shape [N, 1, 1, C_out].
func (s *SqueezeExcite[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := x.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("squeeze_excite: expected 4D input [N,H,W,C], got %dD", len(shape)))
	}
	if shape[3] != s.inChannels {
		panic(fmt.Sprintf("squeeze_excite: input channels %d != expected %d", shape[3], s.inChannels))
	}

	// Global average pool over H then W: [N,H,W,C] -> [N,C].
	pooled := x.MeanDim(1, false).MeanDim(1, false)

	h := s.act(s.fc0.Forward(pooled))
	gate := Sigmoid(s.fc1.Forward(h))

	return gate.Reshape(shape[0], 1, 1, s.outChannels)
}

// Parameters returns the parameters of both linear layers.
func (s *SqueezeExcite[B]) Parameters() []*Parameter[B] {
	params := s.fc0.Parameters()
	return append(params, s.fc1.Parameters()...)
}

// HiddenChannels returns the resolved bottleneck width.
func (s *SqueezeExcite[B]) HiddenChannels() int {
	return s.hiddenChannels
}
