// Copyright 2026 The SlowFast-NFNets Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/deepmind/slowfast-nfnets/internal/nn"
	"github.com/deepmind/slowfast-nfnets/internal/tensor"
)

// Activation is an element-wise tensor function.
type Activation[B tensor.Backend] = nn.Activation[B]

// ActivationBackend is the capability interface backends implement to
// support the activation functions in this package.
type ActivationBackend = nn.ActivationBackend

// Gains maps nonlinearity names to the constant that restores unit output
// variance for unit-variance Gaussian input, i.e. 1/std of the raw
// activation's output under N(0, 1).
var Gains = nn.Gains

// Nonlinearity returns the named activation composed with its
// variance-preserving gain. An error is returned for unknown names.
//
// Example:
//
//	act, err := nn.Nonlinearity[*cpu.Backend]("silu")  // silu(x) * 1.7881293
func Nonlinearity[B tensor.Backend](name string) (Activation[B], error) {
	return nn.Nonlinearity[B](name)
}

// Raw (ungained) activation functions.

// Identity returns its input unchanged.
func Identity[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return nn.Identity(x)
}

// ReLU applies max(x, 0).
func ReLU[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return nn.ReLU(x)
}

// ReLU6 applies min(max(x, 0), 6).
func ReLU6[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return nn.ReLU6(x)
}

// LeakyReLU applies x for x >= 0 and 0.01*x otherwise.
func LeakyReLU[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return nn.LeakyReLU(x)
}

// ELU applies x for x >= 0 and exp(x)-1 otherwise.
func ELU[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return nn.ELU(x)
}

// CELU applies the continuously differentiable ELU with alpha 1.
func CELU[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return nn.CELU(x)
}

// SELU applies the self-normalizing ELU variant.
func SELU[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return nn.SELU(x)
}

// GELU applies the Gaussian Error Linear Unit (tanh approximation).
func GELU[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return nn.GELU(x)
}

// SiLU applies x * sigmoid(x).
func SiLU[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return nn.SiLU(x)
}

// Sigmoid applies 1 / (1 + exp(-x)).
func Sigmoid[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return nn.Sigmoid(x)
}

// LogSigmoid applies log(sigmoid(x)).
func LogSigmoid[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return nn.LogSigmoid(x)
}

// Softplus applies log(1 + exp(x)).
func Softplus[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return nn.Softplus(x)
}

// Softsign applies x / (1 + |x|).
func Softsign[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return nn.Softsign(x)
}

// Tanh applies the hyperbolic tangent.
func Tanh[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return nn.Tanh(x)
}

// LogSoftmax applies a numerically stable log-softmax along the last axis.
func LogSoftmax[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return nn.LogSoftmax(x)
}

// GLU splits the last axis in half and applies a * sigmoid(b). The last
// axis must have even size.
func GLU[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return nn.GLU(x)
}
