package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/deepmind/slowfast-nfnets/internal/backend/cpu"
	"github.com/deepmind/slowfast-nfnets/internal/tensor"
)

// channelSlice extracts the fan-in values of one output channel from an
// HWIO kernel.
func channelSlice(w *tensor.Tensor[float32, Backend], oc int) []float64 {
	shape := w.Shape()
	fanIn := shape[0] * shape[1] * shape[2]
	cOut := shape[3]
	data := w.Data()
	out := make([]float64, fanIn)
	for i := 0; i < fanIn; i++ {
		out[i] = float64(data[i*cOut+oc])
	}
	return out
}

// TestStandardizeWeight_Moments checks that each output channel of the
// standardized kernel has zero mean and variance 1/fan_in.
func TestStandardizeWeight_Moments(t *testing.T) {
	backend := cpu.New()

	weight := randn(tensor.Shape{3, 3, 8, 16}, 11, backend)
	gain := Ones(tensor.Shape{16}, backend)

	std := StandardizeWeight(weight, gain, 1e-4)
	require.True(t, std.Shape().Equal(tensor.Shape{3, 3, 8, 16}))

	fanIn := 3 * 3 * 8
	for oc := 0; oc < 16; oc++ {
		vals := channelSlice(std, oc)
		mean, variance := stat.MeanVariance(vals, nil)
		// stat.Variance divides by n-1; the standardization divides by n.
		biased := variance * float64(fanIn-1) / float64(fanIn)

		assert.InDelta(t, 0, mean, 1e-5, "channel %d mean", oc)
		assert.InDelta(t, 1.0, biased*float64(fanIn), 1e-2, "channel %d scaled variance", oc)
	}
}

// TestStandardizeWeight_Gain checks that gain scales the standardized
// kernel linearly.
func TestStandardizeWeight_Gain(t *testing.T) {
	backend := cpu.New()

	weight := randn(tensor.Shape{3, 3, 4, 2}, 12, backend)
	gain, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	std := StandardizeWeight(weight, gain, 1e-4)

	fanIn := 3 * 3 * 4
	for oc, wantScale := range []float64{1, 4} {
		vals := channelSlice(std, oc)
		_, variance := stat.MeanVariance(vals, nil)
		biased := variance * float64(fanIn-1) / float64(fanIn)
		assert.InDelta(t, wantScale, biased*float64(fanIn), wantScale*1e-2, "channel %d", oc)
	}
}

// TestStandardizeWeight_ConstantKernel checks the eps floor: a constant
// kernel has zero variance and standardizes to exactly zero instead of
// dividing by zero.
func TestStandardizeWeight_ConstantKernel(t *testing.T) {
	backend := cpu.New()

	weight := Ones(tensor.Shape{3, 3, 2, 4}, backend).MulScalar(5)
	gain := Ones(tensor.Shape{4}, backend)

	std := StandardizeWeight(weight, gain, 1e-4)
	for i, v := range std.Data() {
		assert.Zerof(t, v, "std[%d]", i)
	}
}

// TestStandardizeWeight_SingleFanIn checks the degenerate kernel whose
// fan-in is one: the per-channel variance is identically zero, so the eps
// floor zeroes the kernel.
func TestStandardizeWeight_SingleFanIn(t *testing.T) {
	backend := cpu.New()

	weight := randn(tensor.Shape{1, 1, 1, 3}, 13, backend)
	gain := Ones(tensor.Shape{3}, backend)

	std := StandardizeWeight(weight, gain, 1e-4)
	for i, v := range std.Data() {
		assert.Zerof(t, v, "std[%d]", i)
	}
}

func TestWSConv2DForwardShape(t *testing.T) {
	backend := cpu.New()

	conv := NewWSConv2D(WSConv2DConfig{
		InChannels:  8,
		OutChannels: 16,
		KernelSize:  [2]int{3, 3},
		Stride:      [2]int{2, 2},
		Padding:     [2]int{1, 1},
	}, backend)

	x := randn(tensor.Shape{2, 8, 8, 8}, 14, backend)
	y := conv.Forward(x)
	assert.True(t, y.Shape().Equal(tensor.Shape{2, 4, 4, 16}), "got %v", y.Shape())

	outH, outW := conv.OutputSize(8, 8)
	assert.Equal(t, 4, outH)
	assert.Equal(t, 4, outW)
}

// TestWSConv2DForwardBiasOnly checks that with a constant kernel the
// convolution output is the bias alone.
func TestWSConv2DForwardBiasOnly(t *testing.T) {
	backend := cpu.New()

	conv := NewWSConv2D(WSConv2DConfig{
		InChannels:  2,
		OutChannels: 3,
		KernelSize:  [2]int{3, 3},
		Padding:     [2]int{1, 1},
	}, backend)

	wdata := conv.Weight().Tensor().Data()
	for i := range wdata {
		wdata[i] = 7
	}
	bdata := conv.Bias().Tensor().Data()
	for i := range bdata {
		bdata[i] = 0.5
	}

	x := randn(tensor.Shape{1, 4, 4, 2}, 15, backend)
	y := conv.Forward(x)
	for i, v := range y.Data() {
		assert.InDeltaf(t, 0.5, v, 1e-6, "y[%d]", i)
	}
}

// TestWSConv2DUnitVariance checks the variance-preserving property on
// unit-variance Gaussian input: the output variance stays near one.
func TestWSConv2DUnitVariance(t *testing.T) {
	backend := cpu.New()

	conv := NewWSConv2D(WSConv2DConfig{
		InChannels:  16,
		OutChannels: 16,
		KernelSize:  [2]int{3, 3},
		Padding:     [2]int{1, 1},
	}, backend)

	x := randn(tensor.Shape{4, 16, 16, 16}, 16, backend)
	y := conv.Forward(x)

	// Exclude the padded border; its windows see fewer inputs.
	shape := y.Shape()
	data := y.Data()
	var interior []float64
	for b := 0; b < shape[0]; b++ {
		for h := 1; h < shape[1]-1; h++ {
			for w := 1; w < shape[2]-1; w++ {
				for c := 0; c < shape[3]; c++ {
					idx := ((b*shape[1]+h)*shape[2]+w)*shape[3] + c
					interior = append(interior, float64(data[idx]))
				}
			}
		}
	}
	variance := stat.Variance(interior, nil)
	assert.InDelta(t, 1.0, variance, 0.15)
}

func TestWSConv2DDefaults(t *testing.T) {
	backend := cpu.New()

	conv := NewWSConv2D(WSConv2DConfig{
		InChannels:  4,
		OutChannels: 4,
		KernelSize:  [2]int{3, 3},
	}, backend)

	cfg := conv.Config()
	assert.Equal(t, [2]int{1, 1}, cfg.Stride)
	assert.Equal(t, [2]int{1, 1}, cfg.Dilation)
	assert.Equal(t, 1, cfg.Groups)
	assert.Equal(t, float32(1e-4), cfg.Eps)
}

func TestWSConv2DParameters(t *testing.T) {
	backend := cpu.New()

	conv := NewWSConv2D(WSConv2DConfig{
		InChannels:  8,
		OutChannels: 16,
		KernelSize:  [2]int{3, 3},
		Groups:      2,
	}, backend)

	params := conv.Parameters()
	require.Len(t, params, 3)
	assert.True(t, params[0].Tensor().Shape().Equal(tensor.Shape{3, 3, 4, 16}))
	assert.True(t, params[1].Tensor().Shape().Equal(tensor.Shape{16}))
	assert.True(t, params[2].Tensor().Shape().Equal(tensor.Shape{16}))
}

func TestWSConv2DInvalidConfig(t *testing.T) {
	backend := cpu.New()

	assert.Panics(t, func() {
		NewWSConv2D(WSConv2DConfig{InChannels: 0, OutChannels: 4, KernelSize: [2]int{3, 3}}, backend)
	})
	assert.Panics(t, func() {
		NewWSConv2D(WSConv2DConfig{InChannels: 3, OutChannels: 4, KernelSize: [2]int{3, 3}, Groups: 2}, backend)
	})
	assert.Panics(t, func() {
		NewWSConv2D(WSConv2DConfig{InChannels: 4, OutChannels: 4, KernelSize: [2]int{0, 3}}, backend)
	})
}

func TestSamePadding(t *testing.T) {
	assert.Equal(t, [2]int{1, 1}, SamePadding([2]int{3, 3}, [2]int{1, 1}))
	assert.Equal(t, [2]int{0, 1}, SamePadding([2]int{1, 3}, [2]int{1, 1}))
	assert.Equal(t, [2]int{2, 2}, SamePadding([2]int{3, 3}, [2]int{2, 2}))
	// Zero dilation defaults to one.
	assert.Equal(t, [2]int{1, 1}, SamePadding([2]int{3, 3}, [2]int{0, 0}))
	assert.Equal(t, [2]int{3, 0}, SamePadding([2]int{7, 1}, [2]int{1, 1}))
}
