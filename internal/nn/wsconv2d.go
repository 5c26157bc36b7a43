package nn

import (
	"fmt"

	"github.com/deepmind/slowfast-nfnets/internal/tensor"
)

// defaultWSEps floors the standardization denominator when the kernel
// variance is near zero.
const defaultWSEps = 1e-4

// WSConv2DConfig configures a weight-standardized convolution.
// Zero values for Stride, Dilation, Groups and Eps mean "default"
// (stride 1, dilation 1, one group, eps 1e-4).
type WSConv2DConfig struct {
	InChannels  int
	OutChannels int
	KernelSize  [2]int // [kh, kw]
	Stride      [2]int
	Padding     [2]int // zeros added on each side
	Dilation    [2]int
	Groups      int
	Eps         float32
}

// WSConv2D is a 2D convolution with scaled weight standardization and an
// affine per-output-channel gain and bias.
//
// Before each application the raw kernel is re-normalized per output
// channel: with mean and variance taken over the kernel's three leading
// axes and fan_in = kh*kw*in_channels/groups,
//
//	w' = (w - mean) * gain / sqrt(max(var * fan_in, eps))
//
// computed in the fused form w*scale - shift with scale = gain*rsqrt(...)
// and shift = mean*scale. The standardized kernel is then used for a plain
// grouped dilated convolution, and the bias is added to the result.
//
// Input shape:  [N, H, W, C_in]
// Kernel shape: [kh, kw, C_in/groups, C_out]
// Output shape: [N, H_out, W_out, C_out]
type WSConv2D[B tensor.Backend] struct {
	cfg     WSConv2DConfig
	weight  *Parameter[B] // [kh, kw, C_in/groups, C_out]
	gain    *Parameter[B] // [C_out], init ones
	bias    *Parameter[B] // [C_out], init zeros
	backend B
}

// NewWSConv2D creates a weight-standardized convolution layer.
//
// The kernel uses fan-in scaled normal initialization (standardization is
// largely insensitive to this choice), gain is initialized to ones and bias
// to zeros.
func NewWSConv2D[B tensor.Backend](cfg WSConv2DConfig, backend B) *WSConv2D[B] {
	if cfg.InChannels <= 0 || cfg.OutChannels <= 0 {
		panic(fmt.Sprintf("wsconv2d: invalid channels in=%d, out=%d", cfg.InChannels, cfg.OutChannels))
	}
	if cfg.KernelSize[0] <= 0 || cfg.KernelSize[1] <= 0 {
		panic(fmt.Sprintf("wsconv2d: invalid kernel size %v", cfg.KernelSize))
	}
	if cfg.Groups == 0 {
		cfg.Groups = 1
	}
	if cfg.Groups < 0 || cfg.InChannels%cfg.Groups != 0 || cfg.OutChannels%cfg.Groups != 0 {
		panic(fmt.Sprintf("wsconv2d: groups=%d must divide in_channels=%d and out_channels=%d",
			cfg.Groups, cfg.InChannels, cfg.OutChannels))
	}
	for i := 0; i < 2; i++ {
		if cfg.Stride[i] == 0 {
			cfg.Stride[i] = 1
		}
		if cfg.Dilation[i] == 0 {
			cfg.Dilation[i] = 1
		}
		if cfg.Stride[i] < 0 || cfg.Dilation[i] < 0 || cfg.Padding[i] < 0 {
			panic(fmt.Sprintf("wsconv2d: invalid stride %v, padding %v or dilation %v", cfg.Stride, cfg.Padding, cfg.Dilation))
		}
	}
	if cfg.Eps == 0 {
		cfg.Eps = defaultWSEps
	}

	fanIn := cfg.KernelSize[0] * cfg.KernelSize[1] * cfg.InChannels / cfg.Groups
	weightShape := tensor.Shape{cfg.KernelSize[0], cfg.KernelSize[1], cfg.InChannels / cfg.Groups, cfg.OutChannels}
	weight := VarianceScaling(1.0, fanIn, weightShape, backend)

	return &WSConv2D[B]{
		cfg:     cfg,
		weight:  NewParameter("wsconv2d.weight", weight),
		gain:    NewParameter("wsconv2d.gain", Ones(tensor.Shape{cfg.OutChannels}, backend)),
		bias:    NewParameter("wsconv2d.bias", Zeros(tensor.Shape{cfg.OutChannels}, backend)),
		backend: backend,
	}
}

// StandardizeWeight applies scaled weight standardization with affine gain:
// per output channel, (w - mean) * gain / sqrt(max(var*fan_in, eps)), with
// mean/var over the three leading kernel axes.
func StandardizeWeight[B tensor.Backend](weight, gain *tensor.Tensor[float32, B], eps float32) *tensor.Tensor[float32, B] {
	shape := weight.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("standardize_weight: kernel must be 4D [kh,kw,in,out], got shape %v", shape))
	}
	fanIn := shape[0] * shape[1] * shape[2]
	outCh := shape[3]

	flat := weight.Reshape(fanIn, outCh)
	mean := flat.MeanDim(0, true) // [1, out]
	diff := flat.Sub(mean)
	variance := diff.Mul(diff).MeanDim(0, true) // [1, out]

	// Fused normalization, eq. to (w - mean) * gain / sqrt(fan_in * var).
	scale := variance.MulScalar(float64(fanIn)).MaximumScalar(float64(eps)).Rsqrt().Mul(gain.Reshape(1, outCh))
	shift := mean.Mul(scale)

	return flat.Mul(scale).Sub(shift).Reshape(shape...)
}

// StandardizedWeight returns the kernel as used by Forward: the raw weight
// parameter after scaled weight standardization with the layer's gain.
func (c *WSConv2D[B]) StandardizedWeight() *tensor.Tensor[float32, B] {
	return StandardizeWeight(c.weight.Tensor(), c.gain.Tensor(), c.cfg.Eps)
}

// Forward standardizes the kernel, convolves, and adds the bias.
func (c *WSConv2D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	inputShape := input.Shape()
	if len(inputShape) != 4 {
		panic(fmt.Sprintf("wsconv2d: expected 4D input [N,H,W,C], got %dD", len(inputShape)))
	}
	if inputShape[3] != c.cfg.InChannels {
		panic(fmt.Sprintf("wsconv2d: input channels %d != expected %d", inputShape[3], c.cfg.InChannels))
	}

	weight := c.StandardizedWeight()
	outRaw := c.backend.Conv2D(input.Raw(), weight.Raw(), tensor.Conv2DParams{
		Stride:   c.cfg.Stride,
		Padding:  c.cfg.Padding,
		Dilation: c.cfg.Dilation,
		Groups:   c.cfg.Groups,
	})
	out := tensor.New[float32, B](outRaw, c.backend)

	// Always add bias.
	return out.Add(c.bias.Tensor().Reshape(1, 1, 1, c.cfg.OutChannels))
}

// Parameters returns [weight, gain, bias].
func (c *WSConv2D[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{c.weight, c.gain, c.bias}
}

// Weight returns the raw (unstandardized) kernel parameter.
func (c *WSConv2D[B]) Weight() *Parameter[B] {
	return c.weight
}

// Gain returns the per-output-channel gain parameter.
func (c *WSConv2D[B]) Gain() *Parameter[B] {
	return c.gain
}

// Bias returns the per-output-channel bias parameter.
func (c *WSConv2D[B]) Bias() *Parameter[B] {
	return c.bias
}

// Config returns the layer configuration after defaulting.
func (c *WSConv2D[B]) Config() WSConv2DConfig {
	return c.cfg
}

// OutputSize computes the spatial output dimensions for an inH x inW input.
func (c *WSConv2D[B]) OutputSize(inH, inW int) (int, int) {
	p := tensor.Conv2DParams{Stride: c.cfg.Stride, Padding: c.cfg.Padding, Dilation: c.cfg.Dilation, Groups: c.cfg.Groups}
	return p.OutputSize(inH, inW, c.cfg.KernelSize[0], c.cfg.KernelSize[1])
}

// SamePadding returns the symmetric padding that keeps spatial size
// unchanged at stride 1 for odd kernel sizes.
func SamePadding(kernel, dilation [2]int) [2]int {
	for i := 0; i < 2; i++ {
		if dilation[i] == 0 {
			dilation[i] = 1
		}
	}
	return [2]int{
		(kernel[0] - 1) * dilation[0] / 2,
		(kernel[1] - 1) * dilation[1] / 2,
	}
}
