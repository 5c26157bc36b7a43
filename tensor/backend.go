// Copyright 2026 The SlowFast-NFNets Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/deepmind/slowfast-nfnets/internal/tensor"

// Conv2DParams configures a 2D convolution: per-axis stride, symmetric
// zero padding, dilation, and feature groups. Zero values mean "default"
// (stride 1, no padding, dilation 1, one group).
type Conv2DParams = tensor.Conv2DParams

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// Implementations:
//   - backend/cpu: Pure Go, parallelized across goroutines
//
// Example:
//
//	import (
//	    "github.com/deepmind/slowfast-nfnets/tensor"
//	    "github.com/deepmind/slowfast-nfnets/backend/cpu"
//	)
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	z := x.Add(y)  // Uses backend.Add under the hood
type Backend = tensor.Backend
