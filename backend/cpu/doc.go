// Copyright 2026 The SlowFast-NFNets Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Direct-loop grouped dilated convolutions in NHWC/HWIO layout
//   - Float32 and Float64 support
//   - NumPy-compatible broadcasting
//   - Goroutine parallelism for convolutions and large element-wise ops
//
// # Basic Usage
//
//	import (
//	    "github.com/deepmind/slowfast-nfnets/backend/cpu"
//	    "github.com/deepmind/slowfast-nfnets/tensor"
//	    "github.com/deepmind/slowfast-nfnets/nn"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x := tensor.Randn[float32](tensor.Shape{1, 32, 32, 16}, backend)
//	    conv := nn.NewWSConv2D(nn.WSConv2DConfig{
//	        InChannels:  16,
//	        OutChannels: 32,
//	        KernelSize:  [2]int{3, 3},
//	        Padding:     [2]int{1, 1},
//	    }, backend)
//	    y := conv.Forward(x)  // Shape: [1, 32, 32, 32]
//	}
package cpu
