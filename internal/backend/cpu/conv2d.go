package cpu

import (
	"fmt"

	"github.com/deepmind/slowfast-nfnets/internal/parallel"
	"github.com/deepmind/slowfast-nfnets/internal/tensor"
)

// Conv2D performs a grouped, dilated 2D convolution.
//
// Input shape:  [N, H, W, C_in]           (NHWC)
// Kernel shape: [kh, kw, C_in/groups, C_out] (HWIO)
// Output shape: [N, H_out, W_out, C_out]
//
// Output channel oc belongs to group oc/(C_out/groups) and convolves input
// channels [g*C_in/groups, (g+1)*C_in/groups). Padding positions read as
// zero. Spatial output sizes follow params.OutputSize.
func (c *CPUBackend) Conv2D(input, kernel *tensor.RawTensor, params tensor.Conv2DParams) *tensor.RawTensor {
	p := params.Normalized()
	inShape, kShape := input.Shape(), kernel.Shape()

	if len(inShape) != 4 {
		panic(fmt.Sprintf("conv2d: input must be 4D [N,H,W,C], got %dD", len(inShape)))
	}
	if len(kShape) != 4 {
		panic(fmt.Sprintf("conv2d: kernel must be 4D [kh,kw,C_in/groups,C_out], got %dD", len(kShape)))
	}
	if input.DType() != kernel.DType() {
		panic(fmt.Sprintf("conv2d: dtype mismatch %s vs %s", input.DType(), kernel.DType()))
	}

	n, h, w, cIn := inShape[0], inShape[1], inShape[2], inShape[3]
	kh, kw, cInG, cOut := kShape[0], kShape[1], kShape[2], kShape[3]

	if p.Groups <= 0 || cIn%p.Groups != 0 || cOut%p.Groups != 0 {
		panic(fmt.Sprintf("conv2d: groups=%d must divide in_channels=%d and out_channels=%d", p.Groups, cIn, cOut))
	}
	if cInG*p.Groups != cIn {
		panic(fmt.Sprintf("conv2d: kernel input channels %d * groups %d != input channels %d", cInG, p.Groups, cIn))
	}
	if p.Stride[0] <= 0 || p.Stride[1] <= 0 || p.Dilation[0] <= 0 || p.Dilation[1] <= 0 {
		panic(fmt.Sprintf("conv2d: invalid stride %v or dilation %v", p.Stride, p.Dilation))
	}

	hOut, wOut := p.OutputSize(h, w, kh, kw)
	if hOut <= 0 || wOut <= 0 {
		panic(fmt.Sprintf("conv2d: invalid output size %dx%d (input %dx%d, kernel %dx%d, params %+v)", hOut, wOut, h, w, kh, kw, p))
	}

	out, err := tensor.NewRaw(tensor.Shape{n, hOut, wOut, cOut}, input.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("conv2d: %v", err))
	}

	switch input.DType() {
	case tensor.Float32:
		conv2dTyped(out.AsFloat32(), input.AsFloat32(), kernel.AsFloat32(),
			n, h, w, cIn, kh, kw, cInG, cOut, hOut, wOut, p, c.par)
	case tensor.Float64:
		conv2dTyped(out.AsFloat64(), input.AsFloat64(), kernel.AsFloat64(),
			n, h, w, cIn, kh, kw, cInG, cOut, hOut, wOut, p, c.par)
	default:
		panic(fmt.Sprintf("conv2d: unsupported dtype %s", input.DType()))
	}
	return out
}

// conv2dTyped computes the convolution with a direct loop nest, parallelized
// over output rows (batch x out-height).
func conv2dTyped[T float32 | float64](out, in, k []T,
	n, h, w, cIn, kh, kw, cInG, cOut, hOut, wOut int,
	p tensor.Conv2DParams, par parallel.Config,
) {
	cOutG := cOut / p.Groups

	parallel.For(n*hOut, func(row int) {
		b := row / hOut
		oy := row % hOut
		for ox := 0; ox < wOut; ox++ {
			outBase := ((b*hOut+oy)*wOut + ox) * cOut
			for oc := 0; oc < cOut; oc++ {
				g := oc / cOutG
				var sum T
				for ky := 0; ky < kh; ky++ {
					iy := oy*p.Stride[0] - p.Padding[0] + ky*p.Dilation[0]
					if iy < 0 || iy >= h {
						continue
					}
					for kx := 0; kx < kw; kx++ {
						ix := ox*p.Stride[1] - p.Padding[1] + kx*p.Dilation[1]
						if ix < 0 || ix >= w {
							continue
						}
						inBase := ((b*h+iy)*w+ix)*cIn + g*cInG
						kBase := ((ky*kw+kx)*cInG)*cOut + oc
						for ic := 0; ic < cInG; ic++ {
							sum += in[inBase+ic] * k[kBase+ic*cOut]
						}
					}
				}
				out[outBase+oc] = sum
			}
		}
	}, par)
}
