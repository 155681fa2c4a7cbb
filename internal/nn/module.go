// Package nn implements neural network modules for the DilEnc library.
//
// This package provides the building blocks of the dilated feature encoder:
//   - Module interface: Base interface for all NN components
//   - Parameter: Named parameter tensors
//   - Conv2D: 2D convolution with stride, padding and dilation
//   - BatchNorm2d: Per-channel normalization over NCHW feature maps
//   - ReLU: Rectified linear activation
//   - Sequential: Container for stacking layers
//   - Initialization policies: Xavier, Normal, constant fills
//
// Design inspired by PyTorch's nn.Module but adapted for Go generics.
package nn

import (
	"github.com/dilenc-ml/dilenc/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Every NN module must implement:
//   - Forward: Compute output from input
//   - Parameters: Return all parameters
//   - StateDict: Export parameter tensors by name
//   - LoadStateDict: Import parameter tensors by name
//
// StateDict and LoadStateDict define the parameter-shape contract for any
// external persistence collaborator; the file format itself is not this
// library's concern.
//
// Modules can be composed to build larger architectures:
//
//	stages := nn.NewSequential[Backend](
//	    nn.NewConv2D(1024, 512, 1, 1, 1, 0, 1, true, backend),
//	    nn.NewBatchNorm2d(512, 1e-5, 0.1, backend),
//	)
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	//
	// The input tensor should have the appropriate shape for this module.
	// For example, Conv2D expects [batch, in_channels, height, width].
	//
	// Returns the output tensor with shape determined by the module type.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all parameters of this module.
	//
	// This includes weights, biases, and any nested module parameters.
	// Returns an empty slice for modules without parameters
	// (e.g., activation functions).
	Parameters() []*Parameter[B]

	// StateDict returns a map of parameter names to raw tensors.
	StateDict() map[string]*tensor.RawTensor

	// LoadStateDict loads parameters from a state dictionary.
	//
	// Returns an error if a required parameter is missing or has wrong shape.
	LoadStateDict(stateDict map[string]*tensor.RawTensor) error
}
