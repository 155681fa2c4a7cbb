package nn

import (
	"math"
	"math/rand"

	"github.com/dilenc-ml/dilenc/internal/tensor"
)

// Xavier (Glorot) initialization for weights.
//
// Initializes weights with values drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
//
// This initialization (gain = 1) helps maintain variance of activations
// across layers.
//
// Parameters:
//   - fanIn: Number of input units
//   - fanOut: Number of output units
//   - shape: Shape of the weight tensor
//   - backend: Backend to use for tensor creation
//
// Returns a tensor initialized with the Xavier distribution.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	t := Zeros(shape, backend)
	FillXavier(t, fanIn, fanOut)
	return t
}

// Normal initialization for weights.
//
// Initializes weights with values drawn from N(mean, std^2). Small-variance
// normal initialization (e.g. std = 0.01) is appropriate for deep stacks of
// residual additions, preventing early-training divergence.
func Normal[B tensor.Backend](mean, std float32, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	t := Zeros(shape, backend)
	FillNormal(t, mean, std)
	return t
}

// Zeros creates a tensor filled with zeros.
//
// This is commonly used for bias initialization.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Zeros[float32](shape, backend)
}

// Ones creates a tensor filled with ones.
//
// This is commonly used for normalization scale initialization.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Ones[float32](shape, backend)
}

// FillXavier overwrites t in place with Xavier/Glorot uniform values.
//
// Used by one-shot initialization passes that re-initialize already
// constructed layers according to layer-kind-dependent rules.
func FillXavier[B tensor.Backend](t *tensor.Tensor[float32, B], fanIn, fanOut int) {
	// Xavier/Glorot bound: sqrt(6 / (fan_in + fan_out))
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	data := t.Data()
	for i := range data {
		//nolint:gosec // Using math/rand for weight initialization (not security-critical)
		data[i] = float32((rand.Float64()*2.0 - 1.0) * bound)
	}
}

// FillNormal overwrites t in place with values drawn from N(mean, std^2).
func FillNormal[B tensor.Backend](t *tensor.Tensor[float32, B], mean, std float32) {
	data := t.Data()
	for i := range data {
		//nolint:gosec // Using math/rand for weight initialization (not security-critical)
		data[i] = mean + std*float32(rand.NormFloat64())
	}
}

// FillConstant overwrites t in place with a constant value.
func FillConstant[B tensor.Backend](t *tensor.Tensor[float32, B], value float32) {
	data := t.Data()
	for i := range data {
		data[i] = value
	}
}
