// Package cpu implements the pure-Go reference backend.
package cpu

import (
	"fmt"

	"github.com/deepmind/slowfast-nfnets/internal/parallel"
	"github.com/deepmind/slowfast-nfnets/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
type CPUBackend struct {
	device tensor.Device
	par    parallel.Config
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		par:    parallel.DefaultConfig(),
	}
}

// Name returns the backend name.
func (c *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (c *CPUBackend) Device() tensor.Device {
	return c.device
}

// load reads element i of a float tensor as float64.
func load(r *tensor.RawTensor, i int) float64 {
	switch r.DType() {
	case tensor.Float32:
		return float64(r.AsFloat32()[i])
	case tensor.Float64:
		return r.AsFloat64()[i]
	default:
		panic(fmt.Sprintf("unsupported dtype %s", r.DType()))
	}
}

// store writes element i of a float tensor from float64.
func store(r *tensor.RawTensor, i int, v float64) {
	switch r.DType() {
	case tensor.Float32:
		r.AsFloat32()[i] = float32(v)
	case tensor.Float64:
		r.AsFloat64()[i] = v
	default:
		panic(fmt.Sprintf("unsupported dtype %s", r.DType()))
	}
}

// binary applies f element-wise over two tensors with broadcasting.
func (c *CPUBackend) binary(op string, a, b *tensor.RawTensor, f func(x, y float64) float64) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", op, a.DType(), b.DType()))
	}

	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}

	out, err := tensor.NewRaw(outShape, a.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}

	if !needsBroadcast {
		// Fast path: identical shapes.
		for i := 0; i < out.NumElements(); i++ {
			store(out, i, f(load(a, i), load(b, i)))
		}
		return out
	}

	outStrides := outShape.ComputeStrides()
	coords := make([]int, len(outShape))
	for i := 0; i < out.NumElements(); i++ {
		rem := i
		for d, s := range outStrides {
			coords[d] = rem / s
			rem %= s
		}
		store(out, i, f(load(a, broadcastIndex(coords, a)), load(b, broadcastIndex(coords, b))))
	}
	return out
}

// broadcastIndex maps output coordinates to a flat index in t, treating
// size-1 dimensions of t as broadcast and missing leading dims as size 1.
func broadcastIndex(coords []int, t *tensor.RawTensor) int {
	shape := t.Shape()
	strides := t.Strides()
	offset := len(coords) - len(shape)
	idx := 0
	for d := range shape {
		cd := coords[offset+d]
		if shape[d] == 1 {
			cd = 0
		}
		idx += cd * strides[d]
	}
	return idx
}

// unary applies f element-wise over one tensor.
func (c *CPUBackend) unary(op string, x *tensor.RawTensor, f func(v float64) float64) *tensor.RawTensor {
	out, err := tensor.NewRaw(x.Shape(), x.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}
	for i := 0; i < out.NumElements(); i++ {
		store(out, i, f(load(x, i)))
	}
	return out
}

// Add performs element-wise addition with broadcasting.
func (c *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binary("add", a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (c *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binary("sub", a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (c *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binary("mul", a, b, func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (c *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binary("div", a, b, func(x, y float64) float64 { return x / y })
}
