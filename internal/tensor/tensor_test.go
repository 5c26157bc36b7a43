package tensor

import (
	"math"
	"testing"
)

func TestZerosOnesFull(t *testing.T) {
	backend := NewMockBackend()

	zeros := Zeros[float32](Shape{2, 3}, backend)
	if !zeros.Shape().Equal(Shape{2, 3}) {
		t.Fatalf("Zeros shape = %v, want [2 3]", zeros.Shape())
	}
	for i, v := range zeros.Data() {
		if v != 0 {
			t.Errorf("Zeros[%d] = %v, want 0", i, v)
		}
	}

	ones := Ones[float32](Shape{4}, backend)
	for i, v := range ones.Data() {
		if v != 1 {
			t.Errorf("Ones[%d] = %v, want 1", i, v)
		}
	}

	full := Full[float64](Shape{2, 2}, 3.5, backend)
	for i, v := range full.Data() {
		if v != 3.5 {
			t.Errorf("Full[%d] = %v, want 3.5", i, v)
		}
	}
}

func TestFromSlice(t *testing.T) {
	backend := NewMockBackend()

	x, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, backend)
	if err != nil {
		t.Fatalf("FromSlice error: %v", err)
	}
	if x.At(0, 0) != 1 || x.At(1, 2) != 6 {
		t.Errorf("FromSlice values wrong: At(0,0)=%v At(1,2)=%v", x.At(0, 0), x.At(1, 2))
	}
}

func TestFromSliceLengthMismatch(t *testing.T) {
	backend := NewMockBackend()

	if _, err := FromSlice([]float32{1, 2, 3}, Shape{2, 3}, backend); err == nil {
		t.Error("FromSlice with 3 elements into Shape{2,3} should fail")
	}
}

func TestAtSet(t *testing.T) {
	backend := NewMockBackend()

	x := Zeros[float32](Shape{2, 3}, backend)
	x.Set(7, 1, 2)
	if got := x.At(1, 2); got != 7 {
		t.Errorf("At(1,2) = %v after Set, want 7", got)
	}
	// Row-major: [1,2] is flat index 5.
	if got := x.Data()[5]; got != 7 {
		t.Errorf("Data()[5] = %v, want 7", got)
	}
}

func TestItem(t *testing.T) {
	backend := NewMockBackend()

	x, err := FromSlice([]float32{42}, Shape{1}, backend)
	if err != nil {
		t.Fatalf("FromSlice error: %v", err)
	}
	if got := x.Item(); got != 42 {
		t.Errorf("Item() = %v, want 42", got)
	}
}

func TestAddBroadcast(t *testing.T) {
	backend := NewMockBackend()

	a, _ := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, backend)
	b, _ := FromSlice([]float32{10, 20, 30}, Shape{1, 3}, backend)

	c := a.Add(b)
	if !c.Shape().Equal(Shape{2, 3}) {
		t.Fatalf("Add shape = %v, want [2 3]", c.Shape())
	}
	want := []float32{11, 22, 33, 14, 25, 36}
	for i, w := range want {
		if c.Data()[i] != w {
			t.Errorf("Add[%d] = %v, want %v", i, c.Data()[i], w)
		}
	}
}

func TestScalarOps(t *testing.T) {
	backend := NewMockBackend()

	x, _ := FromSlice([]float32{1, 4, 9}, Shape{3}, backend)

	doubled := x.MulScalar(2)
	if got := doubled.Data()[2]; got != 18 {
		t.Errorf("MulScalar(2)[2] = %v, want 18", got)
	}

	rsqrt := x.Rsqrt()
	want := []float32{1, 0.5, 1.0 / 3.0}
	for i, w := range want {
		if math.Abs(float64(rsqrt.Data()[i]-w)) > 1e-6 {
			t.Errorf("Rsqrt[%d] = %v, want %v", i, rsqrt.Data()[i], w)
		}
	}

	floored := x.MaximumScalar(4)
	wantFloor := []float32{4, 4, 9}
	for i, w := range wantFloor {
		if floored.Data()[i] != w {
			t.Errorf("MaximumScalar(4)[%d] = %v, want %v", i, floored.Data()[i], w)
		}
	}
}

func TestReshape(t *testing.T) {
	backend := NewMockBackend()

	x, _ := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, backend)
	y := x.Reshape(3, 2)
	if !y.Shape().Equal(Shape{3, 2}) {
		t.Fatalf("Reshape shape = %v, want [3 2]", y.Shape())
	}
	if y.At(2, 1) != 6 {
		t.Errorf("Reshape At(2,1) = %v, want 6", y.At(2, 1))
	}
}

func TestSum(t *testing.T) {
	backend := NewMockBackend()

	x, _ := FromSlice([]float32{1, 2, 3, 4}, Shape{2, 2}, backend)
	if got := x.Sum().Item(); got != 10 {
		t.Errorf("Sum() = %v, want 10", got)
	}
}

func TestClone(t *testing.T) {
	backend := NewMockBackend()

	x, _ := FromSlice([]float32{1, 2, 3}, Shape{3}, backend)
	y := x.Clone()
	y.Set(99, 0)
	if x.At(0) != 1 {
		t.Errorf("Clone is not independent: x.At(0) = %v after mutating clone", x.At(0))
	}
}
