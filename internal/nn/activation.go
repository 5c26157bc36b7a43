package nn

import (
	"fmt"

	"github.com/deepmind/slowfast-nfnets/internal/tensor"
)

// Activation is a tensor-to-tensor activation function.
type Activation[B tensor.Backend] func(*tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

// ActivationBackend is the capability interface a backend must implement
// for the nonlinearity table. The CPU reference backend implements it.
type ActivationBackend interface {
	ReLU(*tensor.RawTensor) *tensor.RawTensor
	ReLU6(*tensor.RawTensor) *tensor.RawTensor
	LeakyReLU(x *tensor.RawTensor, negSlope float64) *tensor.RawTensor
	ELU(x *tensor.RawTensor, alpha float64) *tensor.RawTensor
	CELU(x *tensor.RawTensor, alpha float64) *tensor.RawTensor
	SELU(*tensor.RawTensor) *tensor.RawTensor
	GELU(*tensor.RawTensor) *tensor.RawTensor
	SiLU(*tensor.RawTensor) *tensor.RawTensor
	Sigmoid(*tensor.RawTensor) *tensor.RawTensor
	LogSigmoid(*tensor.RawTensor) *tensor.RawTensor
	Softplus(*tensor.RawTensor) *tensor.RawTensor
	Softsign(*tensor.RawTensor) *tensor.RawTensor
	Tanh(*tensor.RawTensor) *tensor.RawTensor
	LogSoftmax(x *tensor.RawTensor, dim int) *tensor.RawTensor
}

// activations asserts the backend's activation capability.
func activations[B tensor.Backend](backend B) ActivationBackend {
	ab, ok := any(backend).(ActivationBackend)
	if !ok {
		panic(fmt.Sprintf("nn: backend %T does not implement activation operations", backend))
	}
	return ab
}

func wrap[B tensor.Backend](raw *tensor.RawTensor, backend B) *tensor.Tensor[float32, B] {
	return tensor.New[float32, B](raw, backend)
}

// Identity returns its input unchanged.
func Identity[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return x
}

// ReLU computes max(0, x).
func ReLU[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return wrap(activations(x.Backend()).ReLU(x.Raw()), x.Backend())
}

// ReLU6 computes min(max(0, x), 6).
func ReLU6[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return wrap(activations(x.Backend()).ReLU6(x.Raw()), x.Backend())
}

// LeakyReLU computes x for x >= 0 and 0.01*x otherwise.
func LeakyReLU[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return wrap(activations(x.Backend()).LeakyReLU(x.Raw(), 0.01), x.Backend())
}

// ELU computes x for x > 0 and exp(x)-1 otherwise.
func ELU[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return wrap(activations(x.Backend()).ELU(x.Raw(), 1.0), x.Backend())
}

// CELU computes max(0, x) + min(0, exp(x)-1).
func CELU[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return wrap(activations(x.Backend()).CELU(x.Raw(), 1.0), x.Backend())
}

// SELU computes the self-normalizing ELU.
func SELU[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return wrap(activations(x.Backend()).SELU(x.Raw()), x.Backend())
}

// GELU computes the Gaussian error linear unit (tanh approximation).
func GELU[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return wrap(activations(x.Backend()).GELU(x.Raw()), x.Backend())
}

// SiLU computes x*sigmoid(x).
func SiLU[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return wrap(activations(x.Backend()).SiLU(x.Raw()), x.Backend())
}

// Sigmoid computes 1/(1+exp(-x)).
func Sigmoid[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return wrap(activations(x.Backend()).Sigmoid(x.Raw()), x.Backend())
}

// LogSigmoid computes log(sigmoid(x)).
func LogSigmoid[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return wrap(activations(x.Backend()).LogSigmoid(x.Raw()), x.Backend())
}

// Softplus computes log(1+exp(x)).
func Softplus[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return wrap(activations(x.Backend()).Softplus(x.Raw()), x.Backend())
}

// Softsign computes x/(1+|x|).
func Softsign[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return wrap(activations(x.Backend()).Softsign(x.Raw()), x.Backend())
}

// Tanh computes the hyperbolic tangent.
func Tanh[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return wrap(activations(x.Backend()).Tanh(x.Raw()), x.Backend())
}

// LogSoftmax computes log(softmax(x)) along the last dimension.
func LogSoftmax[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return wrap(activations(x.Backend()).LogSoftmax(x.Raw(), -1), x.Backend())
}

// Gains maps nonlinearity names to fixed empirical gain constants chosen so
// that gain*f(x) has approximately unit variance when x ~ N(0, 1). The
// constants are measured once, not recomputed at runtime. Not every entry
// is stable inside a network; good choices include relu, silu and gelu.
var Gains = map[string]float32{
	"identity":    1.0,
	"celu":        1.270926833152771,
	"elu":         1.2716004848480225,
	"gelu":        1.7015043497085571,
	"glu":         1.8484294414520264,
	"leaky_relu":  1.70590341091156,
	"log_sigmoid": 1.9193484783172607,
	"log_softmax": 1.0002083778381348,
	"relu":        1.7139588594436646,
	"relu6":       1.7131484746932983,
	"selu":        1.0008515119552612,
	"sigmoid":     4.803835391998291,
	"silu":        1.7881293296813965,
	"soft_sign":   2.338853120803833,
	"softplus":    1.9203323125839233,
	"tanh":        1.5939117670059204,
}

// Nonlinearity returns the variance-preserving activation for name: the base
// function composed with its gain constant from Gains. glu halves the last
// dimension; log_softmax normalizes along the last dimension; all other
// entries are pointwise. Unknown names return an error.
func Nonlinearity[B tensor.Backend](name string) (Activation[B], error) {
	gain, ok := Gains[name]
	if !ok {
		return nil, fmt.Errorf("nn: unknown nonlinearity %q", name)
	}

	base, err := baseActivation[B](name)
	if err != nil {
		return nil, err
	}

	if gain == 1.0 {
		return base, nil
	}
	return func(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
		return base(x).MulScalar(float64(gain))
	}, nil
}

func baseActivation[B tensor.Backend](name string) (Activation[B], error) {
	switch name {
	case "identity":
		return Identity[B], nil
	case "celu":
		return CELU[B], nil
	case "elu":
		return ELU[B], nil
	case "gelu":
		return GELU[B], nil
	case "glu":
		return GLU[B], nil
	case "leaky_relu":
		return LeakyReLU[B], nil
	case "log_sigmoid":
		return LogSigmoid[B], nil
	case "log_softmax":
		return LogSoftmax[B], nil
	case "relu":
		return ReLU[B], nil
	case "relu6":
		return ReLU6[B], nil
	case "selu":
		return SELU[B], nil
	case "sigmoid":
		return Sigmoid[B], nil
	case "silu":
		return SiLU[B], nil
	case "soft_sign":
		return Softsign[B], nil
	case "softplus":
		return Softplus[B], nil
	case "tanh":
		return Tanh[B], nil
	default:
		return nil, fmt.Errorf("nn: unknown nonlinearity %q", name)
	}
}
