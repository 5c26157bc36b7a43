// Copyright 2026 The SlowFast-NFNets Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/deepmind/slowfast-nfnets/internal/nn"
	"github.com/deepmind/slowfast-nfnets/internal/tensor"
)

// Module interface defines the common interface for all neural network modules.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter represents a trainable parameter in a neural network.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Layers

// Linear represents a fully connected (dense) layer.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a new linear layer with Xavier initialization.
//
// Example:
//
//	backend := cpu.New()
//	layer := nn.NewLinear(256, 128, backend)
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, backend)
}

// WSConv2DConfig configures a weight-standardized convolution.
type WSConv2DConfig = nn.WSConv2DConfig

// WSConv2D is a 2D convolution with scaled weight standardization and an
// affine per-output-channel gain and bias. The kernel is re-normalized per
// output channel on every forward pass:
//
//	w' = (w - mean) * gain / sqrt(max(var * fan_in, eps))
//
// Input is NHWC, the kernel is HWIO.
//
// Example:
//
//	backend := cpu.New()
//	conv := nn.NewWSConv2D(nn.WSConv2DConfig{
//	    InChannels:  16,
//	    OutChannels: 32,
//	    KernelSize:  [2]int{3, 3},
//	    Stride:      [2]int{2, 2},
//	    Padding:     [2]int{1, 1},
//	}, backend)
//	y := conv.Forward(x)
type WSConv2D[B tensor.Backend] = nn.WSConv2D[B]

// NewWSConv2D creates a weight-standardized convolution layer.
func NewWSConv2D[B tensor.Backend](cfg WSConv2DConfig, backend B) *WSConv2D[B] {
	return nn.NewWSConv2D(cfg, backend)
}

// StandardizeWeight applies scaled weight standardization with affine gain
// to a 4D HWIO kernel.
func StandardizeWeight[B tensor.Backend](weight, gain *tensor.Tensor[float32, B], eps float32) *tensor.Tensor[float32, B] {
	return nn.StandardizeWeight(weight, gain, eps)
}

// SamePadding returns the symmetric padding that keeps spatial size
// unchanged at stride 1 for odd kernel sizes.
func SamePadding(kernel, dilation [2]int) [2]int {
	return nn.SamePadding(kernel, dilation)
}

// SqueezeExcite computes per-channel sigmoid gates from globally pooled
// features. Forward returns gates of shape [N, 1, 1, C_out]; callers
// multiply them in.
//
// Example:
//
//	se, err := nn.NewSqueezeExcite(256, 256, 0.5, 0, nil, backend)
//	gated := x.Mul(se.Forward(x)).MulScalar(2)
type SqueezeExcite[B tensor.Backend] = nn.SqueezeExcite[B]

// NewSqueezeExcite creates a squeeze-and-excite gate.
//
// The bottleneck width is hiddenCh when positive, otherwise derived from
// seRatio. An error is returned when neither is set. A nil act defaults
// to ReLU.
func NewSqueezeExcite[B tensor.Backend](inCh, outCh int, seRatio float64, hiddenCh int, act Activation[B], backend B) (*SqueezeExcite[B], error) {
	return nn.NewSqueezeExcite(inCh, outCh, seRatio, hiddenCh, act, backend)
}

// StochDepth randomly drops entire residual branches per batch element
// during training. Forward takes the training flag and the random source
// explicitly.
//
// Example:
//
//	sd := nn.NewStochDepth[*cpu.Backend](0.2, false)
//	rng := rand.New(rand.NewSource(1))
//	y := sd.Forward(branch, true, rng)
type StochDepth[B tensor.Backend] = nn.StochDepth[B]

// NewStochDepth creates a stochastic depth layer. dropRate must be in [0, 1).
func NewStochDepth[B tensor.Backend](dropRate float64, scaleByKeep bool) *StochDepth[B] {
	return nn.NewStochDepth[B](dropRate, scaleByKeep)
}

// Initialization

// VarianceScaling creates a tensor drawn from N(0, scale/fanIn).
func VarianceScaling[B tensor.Backend](scale float64, fanIn int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.VarianceScaling(scale, fanIn, shape, backend)
}

// Xavier creates a tensor with Xavier (Glorot) uniform initialization.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Xavier(fanIn, fanOut, shape, backend)
}

// Zeros creates a zero-filled float32 tensor.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Zeros(shape, backend)
}

// Ones creates a one-filled float32 tensor.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Ones(shape, backend)
}
