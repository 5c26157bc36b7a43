package tensor

// Conv2DParams configures a 2D convolution: per-axis stride, symmetric
// per-axis zero padding, kernel dilation, and channel grouping.
// Zero values for Stride, Dilation and Groups mean "default" (1).
type Conv2DParams struct {
	Stride   [2]int // [stride_h, stride_w]
	Padding  [2]int // zeros added on each side: [pad_h, pad_w]
	Dilation [2]int // [dilation_h, dilation_w]
	Groups   int    // channel groups; in and out channels must divide evenly
}

// Normalized returns a copy with zero-valued fields upgraded to their
// defaults so backends can assume positive strides, dilations and groups.
func (p Conv2DParams) Normalized() Conv2DParams {
	for i := 0; i < 2; i++ {
		if p.Stride[i] == 0 {
			p.Stride[i] = 1
		}
		if p.Dilation[i] == 0 {
			p.Dilation[i] = 1
		}
	}
	if p.Groups == 0 {
		p.Groups = 1
	}
	return p
}

// OutputSize computes the spatial output dimensions for an input of
// inH x inW convolved with a kh x kw kernel under these parameters.
func (p Conv2DParams) OutputSize(inH, inW, kh, kw int) (int, int) {
	p = p.Normalized()
	outH := (inH+2*p.Padding[0]-p.Dilation[0]*(kh-1)-1)/p.Stride[0] + 1
	outW := (inW+2*p.Padding[1]-p.Dilation[1]*(kw-1)-1)/p.Stride[1] + 1
	return outH, outW
}

// Backend is the compute interface the layer library is written against.
// The CPU reference backend implements it; accelerator execution is the
// concern of an external numerical runtime, not of this library.
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// MatMul multiplies two 2D tensors: [M, K] @ [K, N] -> [M, N].
	MatMul(a, b *RawTensor) *RawTensor

	// Conv2D convolves an NHWC input [N, H, W, C_in] with an HWIO kernel
	// [kh, kw, C_in/groups, C_out], producing [N, H_out, W_out, C_out].
	Conv2D(input, kernel *RawTensor, params Conv2DParams) *RawTensor

	// Shape operations.
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Chunk(x *RawTensor, n, dim int) []*RawTensor

	// Scalar operations (element-wise with a scalar operand).
	AddScalar(x *RawTensor, scalar float64) *RawTensor
	SubScalar(x *RawTensor, scalar float64) *RawTensor
	MulScalar(x *RawTensor, scalar float64) *RawTensor
	DivScalar(x *RawTensor, scalar float64) *RawTensor
	MaximumScalar(x *RawTensor, scalar float64) *RawTensor

	// Math operations (element-wise).
	Exp(x *RawTensor) *RawTensor
	Log(x *RawTensor) *RawTensor
	Sqrt(x *RawTensor) *RawTensor
	Rsqrt(x *RawTensor) *RawTensor

	// Reduction operations.
	Sum(x *RawTensor) *RawTensor
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor
	MeanDim(x *RawTensor, dim int, keepDim bool) *RawTensor

	// Metadata.
	Name() string
	Device() Device
}
