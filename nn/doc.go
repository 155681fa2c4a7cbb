// Copyright 2026 DilEnc ML Library. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers and building blocks.
//
// # Overview
//
// This package contains:
//   - Layers: Conv2D (with dilation), BatchNorm2d
//   - Activations: ReLU
//   - Utilities: Sequential, Module interface, Parameter
//   - Initialization: Xavier, Normal, Zeros, Ones, in-place fills
//
// # Basic Usage
//
//	import (
//	    "github.com/dilenc-ml/dilenc/nn"
//	    "github.com/dilenc-ml/dilenc/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    // Build a conv + norm + activation stage
//	    model := nn.NewSequential(
//	        nn.NewConv2D(64, 32, 3, 3, 1, 2, 2, true, backend),
//	        nn.NewBatchNorm2d(32, 1e-5, 0.1, backend),
//	        nn.NewReLU[*cpu.Backend](),
//	    )
//
//	    // Forward pass
//	    output := model.Forward(input)
//	}
//
// # Layers
//
// Conv2D: 2D convolutional layer with im2col algorithm and dilation support
//
//	conv := nn.NewConv2D(inChannels, outChannels, kernelH, kernelW, stride, padding, dilation, useBias, backend)
//
// BatchNorm2d: per-channel batch normalization over [N, C, H, W] feature maps
//
//	norm := nn.NewBatchNorm2d(numFeatures, epsilon, momentum, backend)
//
// # Activations
//
//	relu := nn.NewReLU[B]()
//
// # Sequential Models
//
// Build models by composing layers:
//
//	model := nn.NewSequential(
//	    nn.NewConv2D(1024, 512, 1, 1, 1, 0, 1, true, backend),
//	    nn.NewBatchNorm2d(512, 1e-5, 0.1, backend),
//	)
//
// # Parameter Management
//
// Access model parameters:
//
//	params := model.Parameters()
//	for _, param := range params {
//	    fmt.Println(param.Name(), param.Tensor().Shape())
//	}
package nn
