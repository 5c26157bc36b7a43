// Copyright 2026 The SlowFast-NFNets Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/deepmind/slowfast-nfnets/internal/tensor"

// RawTensor is the low-level dtype-erased tensor storage.
//
// RawTensor holds contiguous row-major data with shape, strides, dtype and
// device. Backends operate on RawTensor; most users should work with the
// typed Tensor instead.
type RawTensor = tensor.RawTensor
