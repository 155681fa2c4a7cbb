package encoder

import (
	"fmt"

	"github.com/dilenc-ml/dilenc/internal/nn"
	"github.com/dilenc-ml/dilenc/internal/tensor"
)

// Normalization constants shared by every layer in the encoder.
const (
	batchNormEpsilon  = 1e-5
	batchNormMomentum = 0.1
)

// Bottleneck is a dilated residual block.
//
// It applies a three-stage transform with a skip connection:
//  1. 1x1 conv reducing channels in -> mid, BatchNorm2d, ReLU
//  2. 3x3 conv at width mid with padding == dilation and the given
//     dilation rate (spatial dimensions preserved), BatchNorm2d, ReLU
//  3. 1x1 conv restoring channels mid -> in, BatchNorm2d, ReLU
//
// Output = stage-3 result + input. Channel count and spatial dimensions
// are identical between input and output, so the element-wise addition is
// always well-formed for a correctly constructed block.
type Bottleneck[B tensor.Backend] struct {
	inChannels  int
	midChannels int
	dilation    int

	conv1 *nn.Conv2D[B]
	norm1 *nn.BatchNorm2d[B]
	conv2 *nn.Conv2D[B]
	norm2 *nn.BatchNorm2d[B]
	conv3 *nn.Conv2D[B]
	norm3 *nn.BatchNorm2d[B]
	relu  *nn.ReLU[B]

	backend B
}

// NewBottleneck creates a dilated residual block.
//
// All of inChannels, midChannels and dilation must be positive; invalid
// values panic (a block is only ever built from a validated encoder
// configuration).
func NewBottleneck[B tensor.Backend](inChannels, midChannels, dilation int, backend B) *Bottleneck[B] {
	if dilation <= 0 {
		panic(fmt.Sprintf("bottleneck: invalid dilation %d", dilation))
	}

	return &Bottleneck[B]{
		inChannels:  inChannels,
		midChannels: midChannels,
		dilation:    dilation,
		conv1:       nn.NewConv2D(inChannels, midChannels, 1, 1, 1, 0, 1, true, backend),
		norm1:       nn.NewBatchNorm2d(midChannels, batchNormEpsilon, batchNormMomentum, backend),
		conv2:       nn.NewConv2D(midChannels, midChannels, 3, 3, 1, dilation, dilation, true, backend),
		norm2:       nn.NewBatchNorm2d(midChannels, batchNormEpsilon, batchNormMomentum, backend),
		conv3:       nn.NewConv2D(midChannels, inChannels, 1, 1, 1, 0, 1, true, backend),
		norm3:       nn.NewBatchNorm2d(inChannels, batchNormEpsilon, batchNormMomentum, backend),
		relu:        nn.NewReLU[B](),
		backend:     backend,
	}
}

// Forward applies the block.
//
// Input: [N, in_channels, H, W]
// Output: [N, in_channels, H, W] (shape identical to the input).
//
// The ReLU after the channel-restoring conv is applied before the residual
// addition, matching the reference architecture.
func (b *Bottleneck[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	out := b.relu.Forward(b.norm1.Forward(b.conv1.Forward(x)))
	out = b.relu.Forward(b.norm2.Forward(b.conv2.Forward(out)))
	out = b.relu.Forward(b.norm3.Forward(b.conv3.Forward(out)))
	return out.Add(x)
}

// Dilation returns the block's dilation rate.
func (b *Bottleneck[B]) Dilation() int {
	return b.dilation
}

// InChannels returns the block's input (and output) channel count.
func (b *Bottleneck[B]) InChannels() int {
	return b.inChannels
}

// MidChannels returns the block's bottleneck width.
func (b *Bottleneck[B]) MidChannels() int {
	return b.midChannels
}

// initWeights re-initializes the block's layers: every conv weight is
// drawn from N(0, 0.01^2) with zero bias, every norm is reset to the
// identity transform.
func (b *Bottleneck[B]) initWeights() {
	for _, conv := range []*nn.Conv2D[B]{b.conv1, b.conv2, b.conv3} {
		nn.FillNormal(conv.Weight().Tensor(), 0, 0.01)
		if bias := conv.Bias(); bias != nil {
			nn.FillConstant(bias.Tensor(), 0)
		}
	}
	for _, norm := range []*nn.BatchNorm2d[B]{b.norm1, b.norm2, b.norm3} {
		nn.FillConstant(norm.Gamma.Tensor(), 1)
		nn.FillConstant(norm.Beta.Tensor(), 0)
	}
}

// norms returns the block's normalization layers in pipeline order.
func (b *Bottleneck[B]) norms() []*nn.BatchNorm2d[B] {
	return []*nn.BatchNorm2d[B]{b.norm1, b.norm2, b.norm3}
}

// Parameters returns all parameters of the block's three conv+norm stages.
func (b *Bottleneck[B]) Parameters() []*nn.Parameter[B] {
	var params []*nn.Parameter[B]
	for _, m := range b.stages() {
		params = append(params, m.Parameters()...)
	}
	return params
}

// stages lists the block's parameterized sub-modules with their state-dict
// name prefixes.
func (b *Bottleneck[B]) stages() []nn.Module[B] {
	return []nn.Module[B]{b.conv1, b.norm1, b.conv2, b.norm2, b.conv3, b.norm3}
}

var stageNames = []string{"conv1", "norm1", "conv2", "norm2", "conv3", "norm3"}

// StateDict returns the block's parameters keyed by stage-qualified names
// (e.g. "conv2.weight", "norm3.gamma").
func (b *Bottleneck[B]) StateDict() map[string]*tensor.RawTensor {
	stateDict := make(map[string]*tensor.RawTensor)
	for i, m := range b.stages() {
		for name, raw := range m.StateDict() {
			stateDict[stageNames[i]+"."+name] = raw
		}
	}
	return stateDict
}

// LoadStateDict loads the block's parameters from stage-qualified names.
func (b *Bottleneck[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	for i, m := range b.stages() {
		prefix := stageNames[i] + "."
		sub := make(map[string]*tensor.RawTensor)
		for key, raw := range stateDict {
			if len(key) > len(prefix) && key[:len(prefix)] == prefix {
				sub[key[len(prefix):]] = raw
			}
		}
		if len(sub) > 0 {
			if err := m.LoadStateDict(sub); err != nil {
				return fmt.Errorf("failed to load %s: %w", stageNames[i], err)
			}
		}
	}
	return nil
}
