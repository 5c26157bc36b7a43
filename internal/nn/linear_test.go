package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepmind/slowfast-nfnets/internal/backend/cpu"
	"github.com/deepmind/slowfast-nfnets/internal/tensor"
)

func TestLinearForward(t *testing.T) {
	backend := cpu.New()

	layer := NewLinear(2, 2, backend)

	// W = [[1,2],[3,4]], b = [10, 20].
	copy(layer.Weight().Tensor().Data(), []float32{1, 2, 3, 4})
	copy(layer.Bias().Tensor().Data(), []float32{10, 20})

	x, err := tensor.FromSlice([]float32{1, 0, 0, 1}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	y := layer.Forward(x)
	require.True(t, y.Shape().Equal(tensor.Shape{2, 2}))
	assert.Equal(t, []float32{11, 22, 13, 24}, y.Data())
}

func TestLinearShapeMismatch(t *testing.T) {
	backend := cpu.New()

	layer := NewLinear(4, 2, backend)
	x := randn(tensor.Shape{2, 3}, 41, backend)

	assert.Panics(t, func() { layer.Forward(x) })
}

func TestLinearParameters(t *testing.T) {
	backend := cpu.New()

	layer := NewLinear(3, 5, backend)
	params := layer.Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, "linear.weight", params[0].Name())
	assert.Equal(t, "linear.bias", params[1].Name())
	assert.True(t, params[0].Tensor().Shape().Equal(tensor.Shape{3, 5}))
	assert.True(t, params[1].Tensor().Shape().Equal(tensor.Shape{5}))

	assert.Equal(t, 3, layer.InFeatures())
	assert.Equal(t, 5, layer.OutFeatures())
}

func TestLinearInvalidConfig(t *testing.T) {
	backend := cpu.New()
	assert.Panics(t, func() { NewLinear(0, 2, backend) })
}

func TestGLU(t *testing.T) {
	backend := cpu.New()

	// Gate half is zero, so sigmoid(gate) = 0.5 and the output is a/2.
	x, err := tensor.FromSlice([]float32{2, 4, 0, 0}, tensor.Shape{1, 4}, backend)
	require.NoError(t, err)

	out := GLU(x)
	require.True(t, out.Shape().Equal(tensor.Shape{1, 2}), "got %v", out.Shape())
	assert.InDelta(t, 1, out.Data()[0], 1e-6)
	assert.InDelta(t, 2, out.Data()[1], 1e-6)
}

func TestGLUOddDim(t *testing.T) {
	backend := cpu.New()

	x := randn(tensor.Shape{2, 3}, 42, backend)
	assert.Panics(t, func() { GLU(x) })
}
