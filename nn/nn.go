// Copyright 2026 DilEnc ML Library. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/dilenc-ml/dilenc/internal/nn"
	"github.com/dilenc-ml/dilenc/internal/tensor"
)

// Module interface defines the common interface for all neural network modules.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter represents a named parameter in a neural network.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Layers

// Conv2D represents a 2D convolutional layer.
type Conv2D[B tensor.Backend] = nn.Conv2D[B]

// NewConv2D creates a new 2D convolutional layer.
//
// Padding and dilation interact: a 3x3 kernel with stride 1, padding == dilation
// preserves the spatial dimensions of the input for any dilation rate.
//
// Example:
//
//	backend := cpu.New()
//	conv := nn.NewConv2D(128, 128, 3, 3, 1, 2, 2, true, backend)  // 3x3, stride=1, padding=2, dilation=2
func NewConv2D[B tensor.Backend](
	inChannels, outChannels int,
	kernelH, kernelW int,
	stride, padding, dilation int,
	useBias bool,
	backend B,
) *Conv2D[B] {
	return nn.NewConv2D(inChannels, outChannels, kernelH, kernelW, stride, padding, dilation, useBias, backend)
}

// BatchNorm2d represents per-channel batch normalization over [N, C, H, W] inputs.
type BatchNorm2d[B tensor.Backend] = nn.BatchNorm2d[B]

// NewBatchNorm2d creates a new batch normalization layer.
//
// The layer starts in training mode with scale 1, shift 0, running mean 0
// and running variance 1.
//
// Example:
//
//	backend := cpu.New()
//	norm := nn.NewBatchNorm2d(512, 1e-5, 0.1, backend)
func NewBatchNorm2d[B tensor.Backend](numFeatures int, epsilon, momentum float32, backend B) *BatchNorm2d[B] {
	return nn.NewBatchNorm2d(numFeatures, epsilon, momentum, backend)
}

// Activations

// ReLU represents the Rectified Linear Unit activation function.
type ReLU[B tensor.Backend] = nn.ReLU[B]

// NewReLU creates a new ReLU activation layer.
//
// Example:
//
//	relu := nn.NewReLU[B]()
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return nn.NewReLU[B]()
}

// Sequential

// Sequential represents a sequential container of modules.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a new sequential container.
//
// Example:
//
//	model := nn.NewSequential(
//	    nn.NewConv2D(1024, 512, 1, 1, 1, 0, 1, true, backend),
//	    nn.NewBatchNorm2d(512, 1e-5, 0.1, backend),
//	)
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential(modules...)
}

// Initialization

// Xavier creates a tensor initialized with Xavier/Glorot uniform values.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Xavier(fanIn, fanOut, shape, backend)
}

// Normal creates a tensor initialized with values drawn from N(mean, std^2).
func Normal[B tensor.Backend](mean, std float32, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Normal(mean, std, shape, backend)
}

// Zeros creates a tensor filled with zeros.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Zeros(shape, backend)
}

// Ones creates a tensor filled with ones.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Ones(shape, backend)
}

// FillXavier overwrites t in place with Xavier/Glorot uniform values.
func FillXavier[B tensor.Backend](t *tensor.Tensor[float32, B], fanIn, fanOut int) {
	nn.FillXavier(t, fanIn, fanOut)
}

// FillNormal overwrites t in place with values drawn from N(mean, std^2).
func FillNormal[B tensor.Backend](t *tensor.Tensor[float32, B], mean, std float32) {
	nn.FillNormal(t, mean, std)
}

// FillConstant overwrites t in place with a constant value.
func FillConstant[B tensor.Backend](t *tensor.Tensor[float32, B], value float32) {
	nn.FillConstant(t, value)
}
