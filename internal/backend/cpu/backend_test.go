package cpu

import (
	"math"
	"testing"

	"github.com/deepmind/slowfast-nfnets/internal/tensor"
)

func TestAdd(t *testing.T) {
	backend := New()

	a := newInput(t, tensor.Shape{2, 2}, []float32{1, 2, 3, 4})
	b := newInput(t, tensor.Shape{2, 2}, []float32{10, 20, 30, 40})

	out := backend.Add(a, b)
	assertFloats(t, out.AsFloat32(), []float32{11, 22, 33, 44}, "Add")
}

func TestAddBroadcast(t *testing.T) {
	backend := New()

	// Bias pattern: [N,H,W,C] + [1,1,1,C].
	a := newInput(t, tensor.Shape{1, 1, 2, 2}, []float32{1, 2, 3, 4})
	b := newInput(t, tensor.Shape{1, 1, 1, 2}, []float32{10, 100})

	out := backend.Add(a, b)
	if !out.Shape().Equal(tensor.Shape{1, 1, 2, 2}) {
		t.Fatalf("Add shape = %v, want [1 1 2 2]", out.Shape())
	}
	assertFloats(t, out.AsFloat32(), []float32{11, 102, 13, 104}, "Add broadcast")
}

func TestMulBroadcastMask(t *testing.T) {
	backend := New()

	// Stochastic depth pattern: [N,H,W,C] * [N,1,1,1].
	x := newInput(t, tensor.Shape{2, 1, 1, 2}, []float32{1, 2, 3, 4})
	mask := newInput(t, tensor.Shape{2, 1, 1, 1}, []float32{0, 1})

	out := backend.Mul(x, mask)
	assertFloats(t, out.AsFloat32(), []float32{0, 0, 3, 4}, "Mul mask")
}

func TestSubDiv(t *testing.T) {
	backend := New()

	a := newInput(t, tensor.Shape{3}, []float32{4, 9, 16})
	b := newInput(t, tensor.Shape{3}, []float32{2, 3, 4})

	assertFloats(t, backend.Sub(a, b).AsFloat32(), []float32{2, 6, 12}, "Sub")
	assertFloats(t, backend.Div(a, b).AsFloat32(), []float32{2, 3, 4}, "Div")
}

func TestScalarOps(t *testing.T) {
	backend := New()

	x := newInput(t, tensor.Shape{3}, []float32{1, 2, 3})

	assertFloats(t, backend.AddScalar(x, 1).AsFloat32(), []float32{2, 3, 4}, "AddScalar")
	assertFloats(t, backend.SubScalar(x, 1).AsFloat32(), []float32{0, 1, 2}, "SubScalar")
	assertFloats(t, backend.MulScalar(x, 2).AsFloat32(), []float32{2, 4, 6}, "MulScalar")
	assertFloats(t, backend.DivScalar(x, 2).AsFloat32(), []float32{0.5, 1, 1.5}, "DivScalar")
	assertFloats(t, backend.MaximumScalar(x, 2).AsFloat32(), []float32{2, 2, 3}, "MaximumScalar")
}

func TestMathOps(t *testing.T) {
	backend := New()

	x := newInput(t, tensor.Shape{2}, []float32{1, 4})

	assertFloats(t, backend.Sqrt(x).AsFloat32(), []float32{1, 2}, "Sqrt")
	assertFloats(t, backend.Rsqrt(x).AsFloat32(), []float32{1, 0.5}, "Rsqrt")

	exp := backend.Exp(x).AsFloat32()
	if math.Abs(float64(exp[0])-math.E) > 1e-5 {
		t.Errorf("Exp[0] = %v, want e", exp[0])
	}

	log := backend.Log(x).AsFloat32()
	if math.Abs(float64(log[1])-math.Log(4)) > 1e-6 {
		t.Errorf("Log[1] = %v, want ln(4)", log[1])
	}
}

func TestMatMul(t *testing.T) {
	backend := New()

	// [2,3] @ [3,2]
	a := newInput(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	b := newInput(t, tensor.Shape{3, 2}, []float32{7, 8, 9, 10, 11, 12})

	out := backend.MatMul(a, b)
	if !out.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("MatMul shape = %v, want [2 2]", out.Shape())
	}
	assertFloats(t, out.AsFloat32(), []float32{58, 64, 139, 154}, "MatMul")
}

func TestMatMulShapeMismatch(t *testing.T) {
	backend := New()

	a := newInput(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	b := newInput(t, tensor.Shape{2, 2}, []float32{1, 2, 3, 4})

	defer func() {
		if r := recover(); r == nil {
			t.Error("MatMul [2,3] @ [2,2] should panic")
		}
	}()
	backend.MatMul(a, b)
}

func TestReshape(t *testing.T) {
	backend := New()

	x := newInput(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	out := backend.Reshape(x, tensor.Shape{3, 2})

	if !out.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("Reshape shape = %v, want [3 2]", out.Shape())
	}
	assertFloats(t, out.AsFloat32(), []float32{1, 2, 3, 4, 5, 6}, "Reshape")
}

func TestChunk(t *testing.T) {
	backend := New()

	// [[1,2,3,4],
	//  [5,6,7,8]] split in half along dim 1.
	x := newInput(t, tensor.Shape{2, 4}, []float32{1, 2, 3, 4, 5, 6, 7, 8})

	parts := backend.Chunk(x, 2, 1)
	if len(parts) != 2 {
		t.Fatalf("Chunk returned %d parts, want 2", len(parts))
	}
	for _, p := range parts {
		if !p.Shape().Equal(tensor.Shape{2, 2}) {
			t.Fatalf("part shape = %v, want [2 2]", p.Shape())
		}
	}
	assertFloats(t, parts[0].AsFloat32(), []float32{1, 2, 5, 6}, "parts[0]")
	assertFloats(t, parts[1].AsFloat32(), []float32{3, 4, 7, 8}, "parts[1]")
}

func TestChunkIndivisible(t *testing.T) {
	backend := New()

	x := newInput(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	defer func() {
		if r := recover(); r == nil {
			t.Error("Chunk(2) on a dim of size 3 should panic")
		}
	}()
	backend.Chunk(x, 2, 1)
}
