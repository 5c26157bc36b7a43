package tensor

import (
	"fmt"
	"math"
)

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockBackend is a simple backend for testing the tensor layer.
// It implements the element-wise and shape operations naively; the
// convolution and reduction paths live in the cpu backend and are tested
// there.
type MockBackend struct{}

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Device returns the device type.
func (m *MockBackend) Device() Device {
	return CPU
}

// Add performs element-wise addition with broadcasting.
func (m *MockBackend) Add(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (m *MockBackend) Sub(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (m *MockBackend) Mul(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (m *MockBackend) Div(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x / y })
}

func (m *MockBackend) elementWise(a, b *RawTensor, op func(float64, float64) float64) *RawTensor {
	outShape, _, err := BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(err)
	}
	result, err := NewRaw(outShape, a.DType(), m.Device())
	if err != nil {
		panic(err)
	}
	n := outShape.NumElements()
	for i := 0; i < n; i++ {
		av := m.load(a, m.broadcastIndex(i, outShape, a.Shape()))
		bv := m.load(b, m.broadcastIndex(i, outShape, b.Shape()))
		m.store(result, i, op(av, bv))
	}
	return result
}

// broadcastIndex maps a flat index in outShape to the flat index of the
// corresponding element in inShape under broadcasting.
func (m *MockBackend) broadcastIndex(flat int, outShape, inShape Shape) int {
	outStrides := outShape.ComputeStrides()
	inStrides := inShape.ComputeStrides()
	offset := len(outShape) - len(inShape)
	idx := 0
	for d := 0; d < len(outShape); d++ {
		coord := flat / outStrides[d] % outShape[d]
		if d >= offset {
			in := d - offset
			if inShape[in] != 1 {
				idx += coord * inStrides[in]
			}
		}
	}
	return idx
}

func (m *MockBackend) load(r *RawTensor, i int) float64 {
	switch r.DType() {
	case Float32:
		return float64(r.AsFloat32()[i])
	case Float64:
		return r.AsFloat64()[i]
	}
	panic(fmt.Sprintf("mock: unsupported dtype %v", r.DType()))
}

func (m *MockBackend) store(r *RawTensor, i int, v float64) {
	switch r.DType() {
	case Float32:
		r.AsFloat32()[i] = float32(v)
	case Float64:
		r.AsFloat64()[i] = v
	default:
		panic(fmt.Sprintf("mock: unsupported dtype %v", r.DType()))
	}
}

func (m *MockBackend) unary(x *RawTensor, op func(float64) float64) *RawTensor {
	result := x.Clone()
	n := result.NumElements()
	for i := 0; i < n; i++ {
		m.store(result, i, op(m.load(x, i)))
	}
	return result
}

// MatMul performs naive 2D matrix multiplication.
func (m *MockBackend) MatMul(a, b *RawTensor) *RawTensor {
	aShape, bShape := a.Shape(), b.Shape()
	if len(aShape) != 2 || len(bShape) != 2 {
		panic("mock: MatMul only supports 2D tensors")
	}
	if aShape[1] != bShape[0] {
		panic(fmt.Sprintf("mock: incompatible shapes for MatMul: %v @ %v", aShape, bShape))
	}
	rows, inner, cols := aShape[0], aShape[1], bShape[1]
	result, err := NewRaw(Shape{rows, cols}, a.DType(), m.Device())
	if err != nil {
		panic(err)
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			sum := 0.0
			for k := 0; k < inner; k++ {
				sum += m.load(a, i*inner+k) * m.load(b, k*cols+j)
			}
			m.store(result, i*cols+j, sum)
		}
	}
	return result
}

// Conv2D is not supported by the mock backend.
func (m *MockBackend) Conv2D(input, kernel *RawTensor, params Conv2DParams) *RawTensor {
	panic("mock: Conv2D not supported, use the cpu backend")
}

// Reshape returns a copy with the new shape.
func (m *MockBackend) Reshape(t *RawTensor, newShape Shape) *RawTensor {
	if t.NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("mock: cannot reshape %v to %v", t.Shape(), newShape))
	}
	result, err := NewRaw(newShape, t.DType(), m.Device())
	if err != nil {
		panic(err)
	}
	copy(result.Data(), t.Data())
	return result
}

// Chunk splits a tensor into n equal parts along dim.
func (m *MockBackend) Chunk(t *RawTensor, n, dim int) []*RawTensor {
	panic("mock: Chunk not supported, use the cpu backend")
}

// Scalar operations.

func (m *MockBackend) AddScalar(x *RawTensor, scalar float64) *RawTensor {
	return m.unary(x, func(v float64) float64 { return v + scalar })
}

func (m *MockBackend) SubScalar(x *RawTensor, scalar float64) *RawTensor {
	return m.unary(x, func(v float64) float64 { return v - scalar })
}

func (m *MockBackend) MulScalar(x *RawTensor, scalar float64) *RawTensor {
	return m.unary(x, func(v float64) float64 { return v * scalar })
}

func (m *MockBackend) DivScalar(x *RawTensor, scalar float64) *RawTensor {
	return m.unary(x, func(v float64) float64 { return v / scalar })
}

func (m *MockBackend) MaximumScalar(x *RawTensor, scalar float64) *RawTensor {
	return m.unary(x, func(v float64) float64 { return math.Max(v, scalar) })
}

// Math operations.

func (m *MockBackend) Exp(x *RawTensor) *RawTensor {
	return m.unary(x, math.Exp)
}

func (m *MockBackend) Log(x *RawTensor) *RawTensor {
	return m.unary(x, math.Log)
}

func (m *MockBackend) Sqrt(x *RawTensor) *RawTensor {
	return m.unary(x, math.Sqrt)
}

func (m *MockBackend) Rsqrt(x *RawTensor) *RawTensor {
	return m.unary(x, func(v float64) float64 { return 1 / math.Sqrt(v) })
}

// Reductions.

func (m *MockBackend) Sum(x *RawTensor) *RawTensor {
	result, err := NewRaw(Shape{1}, x.DType(), m.Device())
	if err != nil {
		panic(err)
	}
	sum := 0.0
	n := x.NumElements()
	for i := 0; i < n; i++ {
		sum += m.load(x, i)
	}
	m.store(result, 0, sum)
	return result
}

func (m *MockBackend) SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor {
	panic("mock: SumDim not supported, use the cpu backend")
}

func (m *MockBackend) MeanDim(x *RawTensor, dim int, keepDim bool) *RawTensor {
	panic("mock: MeanDim not supported, use the cpu backend")
}
