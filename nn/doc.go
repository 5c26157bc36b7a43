// Copyright 2026 The SlowFast-NFNets Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides normalizer-free network layers and building blocks.
//
// # Overview
//
// This package contains:
//   - Layers: WSConv2D (scaled weight standardization), SqueezeExcite, Linear
//   - Regularization: StochDepth (per-batch-element branch drop)
//   - Activations: gain-corrected nonlinearities via Nonlinearity and Gains
//   - Utilities: Module interface, Parameter
//   - Initialization: VarianceScaling, Xavier, Zeros, Ones
//
// # Basic Usage
//
//	import (
//	    "github.com/deepmind/slowfast-nfnets/nn"
//	    "github.com/deepmind/slowfast-nfnets/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    conv := nn.NewWSConv2D(nn.WSConv2DConfig{
//	        InChannels:  16,
//	        OutChannels: 32,
//	        KernelSize:  [2]int{3, 3},
//	        Padding:     nn.SamePadding([2]int{3, 3}, [2]int{1, 1}),
//	    }, backend)
//
//	    act, _ := nn.Nonlinearity[*cpu.Backend]("gelu")
//	    y := act(conv.Forward(x))
//	}
//
// # Weight-standardized convolution
//
// WSConv2D re-normalizes its kernel per output channel on every forward
// pass so that activations keep unit variance without batch normalization:
//
//	conv := nn.NewWSConv2D(cfg, backend)
//	y := conv.Forward(x)  // [N,H,W,C_in] -> [N,H_out,W_out,C_out]
//
// # Squeeze-and-excite
//
// SqueezeExcite produces per-channel sigmoid gates from globally pooled
// features; the caller multiplies them in:
//
//	se, err := nn.NewSqueezeExcite(c, c, 0.5, 0, nil, backend)
//	y := x.Mul(se.Forward(x)).MulScalar(2)
//
// # Stochastic depth
//
// StochDepth drops whole residual branches per batch element during
// training, with an explicit random source:
//
//	sd := nn.NewStochDepth[*cpu.Backend](0.2, false)
//	y := sd.Forward(branch, true, rng)
//
// # Gain-corrected activations
//
// Nonlinearity returns an activation scaled so that its output has unit
// variance for unit-variance Gaussian input:
//
//	act, err := nn.Nonlinearity[*cpu.Backend]("relu")  // relu(x) * 1.7139589
package nn
