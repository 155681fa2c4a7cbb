package nn

import (
	"fmt"

	"github.com/dilenc-ml/dilenc/internal/tensor"
)

// BatchNorm2d applies per-channel batch normalization over an NCHW feature map.
//
// Formula: Y = gamma * (X - mean) / sqrt(var + eps) + beta
//
// Where:
//   - gamma is the learnable per-channel scale [C]
//   - beta is the learnable per-channel shift [C]
//   - mean and variance are computed over the batch and spatial
//     dimensions (N, H, W) in training mode, or taken from the running
//     statistics in eval mode
//
// The running statistics are internal to the layer: they are updated with
// an exponential moving average during training-mode forwards and consumed
// during eval-mode forwards.
//
// Example:
//
//	norm := nn.NewBatchNorm2d(512, 1e-5, 0.1, backend)
//	output := norm.Forward(features)  // [N, 512, H, W] -> [N, 512, H, W]
type BatchNorm2d[B tensor.Backend] struct {
	numFeatures int
	epsilon     float32
	momentum    float32
	training    bool

	Gamma *Parameter[B] // learnable per-channel scale [C]
	Beta  *Parameter[B] // learnable per-channel shift [C]

	runningMean *tensor.Tensor[float32, B] // [C]
	runningVar  *tensor.Tensor[float32, B] // [C]

	backend B
}

// NewBatchNorm2d creates a new BatchNorm2d layer.
//
// Parameters:
//   - numFeatures: channel count C of the NCHW input
//   - epsilon: small constant for numerical stability (typically 1e-5)
//   - momentum: running-statistics update factor (typically 0.1)
//   - backend: computation backend
//
// Gamma is initialized to ones, beta to zeros (identity transform),
// running mean to zeros and running variance to ones. The layer starts in
// training mode.
func NewBatchNorm2d[B tensor.Backend](numFeatures int, epsilon, momentum float32, backend B) *BatchNorm2d[B] {
	if numFeatures <= 0 {
		panic(fmt.Sprintf("batchnorm2d: invalid num_features %d", numFeatures))
	}

	gamma := Ones(tensor.Shape{numFeatures}, backend)
	beta := Zeros(tensor.Shape{numFeatures}, backend)

	return &BatchNorm2d[B]{
		numFeatures: numFeatures,
		epsilon:     epsilon,
		momentum:    momentum,
		training:    true,
		Gamma:       NewParameter("gamma", gamma),
		Beta:        NewParameter("beta", beta),
		runningMean: Zeros(tensor.Shape{numFeatures}, backend),
		runningVar:  Ones(tensor.Shape{numFeatures}, backend),
		backend:     backend,
	}
}

// Forward applies batch normalization to the input tensor.
//
// Shapes:
//   - input: [N, C, H, W]
//   - output: [N, C, H, W]
//
// Algorithm (training mode):
//  1. mean = mean(x) over (N, H, W), per channel
//  2. var = mean((x - mean)^2) over (N, H, W), per channel
//  3. Update running statistics with momentum
//  4. x_norm = (x - mean) / sqrt(var + epsilon)
//  5. output = gamma * x_norm + beta
//
// Eval mode uses the running statistics instead of batch statistics.
func (bn *BatchNorm2d[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := x.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("batchnorm2d: expected 4D input [N,C,H,W], got %dD", len(shape)))
	}
	if shape[1] != bn.numFeatures {
		panic(fmt.Sprintf("batchnorm2d: input channels %d != expected %d", shape[1], bn.numFeatures))
	}

	var mean, variance *tensor.Tensor[float32, B]

	if bn.training {
		// Per-channel statistics over (N, H, W), kept as [1, C, 1, 1]
		mean = x.MeanDim(0, true).MeanDim(2, true).MeanDim(3, true)
		centered := x.Sub(mean)
		variance = centered.Mul(centered).MeanDim(0, true).MeanDim(2, true).MeanDim(3, true)

		// Exponential moving average of the running statistics
		m := bn.momentum
		bn.runningMean = bn.runningMean.MulScalar(1 - m).Add(mean.Reshape(bn.numFeatures).MulScalar(m))
		bn.runningVar = bn.runningVar.MulScalar(1 - m).Add(variance.Reshape(bn.numFeatures).MulScalar(m))
	} else {
		mean = bn.runningMean.Reshape(1, bn.numFeatures, 1, 1)
		variance = bn.runningVar.Reshape(1, bn.numFeatures, 1, 1)
	}

	std := variance.AddScalar(bn.epsilon).Sqrt()
	normalized := x.Sub(mean).Div(std)

	gamma := bn.Gamma.Tensor().Reshape(1, bn.numFeatures, 1, 1)
	beta := bn.Beta.Tensor().Reshape(1, bn.numFeatures, 1, 1)

	return normalized.Mul(gamma).Add(beta)
}

// Parameters returns the learnable parameters (gamma, beta).
func (bn *BatchNorm2d[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{bn.Gamma, bn.Beta}
}

// NumFeatures returns the channel count this layer normalizes.
func (bn *BatchNorm2d[B]) NumFeatures() int {
	return bn.numFeatures
}

// Train puts the layer in training mode (batch statistics).
func (bn *BatchNorm2d[B]) Train() {
	bn.training = true
}

// Eval puts the layer in eval mode (running statistics).
func (bn *BatchNorm2d[B]) Eval() {
	bn.training = false
}

// Training reports whether the layer is in training mode.
func (bn *BatchNorm2d[B]) Training() bool {
	return bn.training
}

// RunningMean returns the running mean statistics [C].
func (bn *BatchNorm2d[B]) RunningMean() *tensor.Tensor[float32, B] {
	return bn.runningMean
}

// RunningVar returns the running variance statistics [C].
func (bn *BatchNorm2d[B]) RunningVar() *tensor.Tensor[float32, B] {
	return bn.runningVar
}

// String returns a string representation of the layer.
func (bn *BatchNorm2d[B]) String() string {
	return fmt.Sprintf("BatchNorm2d(num_features=%d, eps=%g, momentum=%g)",
		bn.numFeatures, bn.epsilon, bn.momentum)
}

// StateDict returns a map of parameter names to raw tensors, including the
// running statistics.
func (bn *BatchNorm2d[B]) StateDict() map[string]*tensor.RawTensor {
	return map[string]*tensor.RawTensor{
		"gamma":        bn.Gamma.Tensor().Raw(),
		"beta":         bn.Beta.Tensor().Raw(),
		"running_mean": bn.runningMean.Raw(),
		"running_var":  bn.runningVar.Raw(),
	}
}

// LoadStateDict loads parameters from a state dictionary. Gamma and beta
// are required; running statistics are loaded when present.
func (bn *BatchNorm2d[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	gammaRaw, ok := stateDict["gamma"]
	if !ok {
		return fmt.Errorf("missing gamma in state dict")
	}
	if err := bn.Gamma.loadInto(gammaRaw); err != nil {
		return err
	}

	betaRaw, ok := stateDict["beta"]
	if !ok {
		return fmt.Errorf("missing beta in state dict")
	}
	if err := bn.Beta.loadInto(betaRaw); err != nil {
		return err
	}

	expected := tensor.Shape{bn.numFeatures}
	if meanRaw, ok := stateDict["running_mean"]; ok {
		if !meanRaw.Shape().Equal(expected) {
			return fmt.Errorf("running_mean shape mismatch: expected %v, got %v", expected, meanRaw.Shape())
		}
		copy(bn.runningMean.Data(), meanRaw.AsFloat32())
	}
	if varRaw, ok := stateDict["running_var"]; ok {
		if !varRaw.Shape().Equal(expected) {
			return fmt.Errorf("running_var shape mismatch: expected %v, got %v", expected, varRaw.Shape())
		}
		copy(bn.runningVar.Data(), varRaw.AsFloat32())
	}

	return nil
}
