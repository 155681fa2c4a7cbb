package encoder

import (
	"fmt"

	"github.com/dilenc-ml/dilenc/internal/nn"
	"github.com/dilenc-ml/dilenc/internal/tensor"
)

// DilatedEncoder transforms a backbone feature map before it reaches a
// detection head, enlarging the effective receptive field while keeping
// the spatial resolution fixed.
//
// It composes a projection sub-stage with an ordered stack of dilated
// residual blocks:
//
//	input [N, in_channels, H, W]
//	  -> 1x1 conv (in_channels -> encoder_channels) + BatchNorm2d
//	  -> 3x3 conv (padding 1) at encoder_channels + BatchNorm2d
//	  -> Bottleneck(dilation=d_0) -> ... -> Bottleneck(dilation=d_{n-1})
//	output [N, encoder_channels, H, W]
//
// The projection deliberately carries no activation, keeping the lateral
// path near-linear. All layers are created and initialized once at
// construction, and the encoder starts in eval mode, so forward passes
// mutate no state and a single encoder is safe for concurrent forward
// calls. Train switches the normalization layers to batch statistics;
// training-mode forwards update those statistics, so they must be
// serialized by the caller, as must weight loading.
type DilatedEncoder[B tensor.Backend] struct {
	cfg Config

	lateralConv *nn.Conv2D[B]
	lateralNorm *nn.BatchNorm2d[B]
	fpnConv     *nn.Conv2D[B]
	fpnNorm     *nn.BatchNorm2d[B]
	blocks      []*Bottleneck[B]

	// stages holds the fixed linear ordering of all sub-stages, composed
	// by sequential application.
	stages *nn.Sequential[B]

	backend B
}

// New builds a DilatedEncoder from the given configuration.
//
// The configuration is validated first; an invalid configuration (in
// particular a block_dilations length that does not match
// num_residual_blocks) returns an error and no encoder.
//
// The encoder is returned in eval mode: its normalization layers use
// their running statistics. Call Train to opt in to batch statistics.
func New[B tensor.Backend](cfg Config, backend B) (*DilatedEncoder[B], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("dilated encoder: %w", err)
	}

	e := &DilatedEncoder[B]{
		cfg:         cfg,
		lateralConv: nn.NewConv2D(cfg.InChannels, cfg.EncoderChannels, 1, 1, 1, 0, 1, true, backend),
		lateralNorm: nn.NewBatchNorm2d(cfg.EncoderChannels, batchNormEpsilon, batchNormMomentum, backend),
		fpnConv:     nn.NewConv2D(cfg.EncoderChannels, cfg.EncoderChannels, 3, 3, 1, 1, 1, true, backend),
		fpnNorm:     nn.NewBatchNorm2d(cfg.EncoderChannels, batchNormEpsilon, batchNormMomentum, backend),
		backend:     backend,
	}

	e.blocks = make([]*Bottleneck[B], cfg.NumResidualBlocks)
	for i, dilation := range cfg.BlockDilations {
		e.blocks[i] = NewBottleneck(cfg.EncoderChannels, cfg.BlockMidChannels, dilation, backend)
	}

	e.stages = nn.NewSequential[B](e.lateralConv, e.lateralNorm, e.fpnConv, e.fpnNorm)
	for _, block := range e.blocks {
		e.stages.Add(block)
	}

	e.initWeights()
	e.Eval()

	return e, nil
}

// initWeights applies the layer-kind-dependent initialization rules once:
//
//   - projection (lateral, fpn) conv weights: Xavier/Glorot uniform,
//     gain 1, zero bias
//   - projection norms: scale 1, shift 0
//   - residual-block convs: N(0, 0.01^2) weights, zero bias
//   - residual-block norms: scale 1, shift 0
//
// Dispatch is static on the concrete layer fields the encoder owns; no
// runtime type inspection is involved.
func (e *DilatedEncoder[B]) initWeights() {
	for _, conv := range []*nn.Conv2D[B]{e.lateralConv, e.fpnConv} {
		ks := conv.KernelSize()
		fanIn := conv.InChannels() * ks[0] * ks[1]
		fanOut := conv.OutChannels() * ks[0] * ks[1]
		nn.FillXavier(conv.Weight().Tensor(), fanIn, fanOut)
		if bias := conv.Bias(); bias != nil {
			nn.FillConstant(bias.Tensor(), 0)
		}
	}
	for _, norm := range []*nn.BatchNorm2d[B]{e.lateralNorm, e.fpnNorm} {
		nn.FillConstant(norm.Gamma.Tensor(), 1)
		nn.FillConstant(norm.Beta.Tensor(), 0)
	}
	for _, block := range e.blocks {
		block.initWeights()
	}
}

// Forward applies the encoder.
//
// Input: [N, in_channels, H, W]
// Output: [N, encoder_channels, H, W], spatial dimensions unchanged.
//
// Panics if the input is not 4D or its channel count does not match the
// configured in_channels.
func (e *DilatedEncoder[B]) Forward(feature *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := feature.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("dilated encoder: expected 4D input [N,C,H,W], got %dD", len(shape)))
	}
	if shape[1] != e.cfg.InChannels {
		panic(fmt.Sprintf("dilated encoder: input channels %d != configured in_channels %d",
			shape[1], e.cfg.InChannels))
	}

	return e.stages.Forward(feature)
}

// Config returns the encoder's configuration.
func (e *DilatedEncoder[B]) Config() Config {
	return e.cfg
}

// InChannels returns the expected input channel depth.
func (e *DilatedEncoder[B]) InChannels() int {
	return e.cfg.InChannels
}

// OutChannels returns the output channel depth.
func (e *DilatedEncoder[B]) OutChannels() int {
	return e.cfg.EncoderChannels
}

// Blocks returns the ordered residual blocks.
func (e *DilatedEncoder[B]) Blocks() []*Bottleneck[B] {
	return e.blocks
}

// Train puts every normalization layer in training mode (batch statistics).
func (e *DilatedEncoder[B]) Train() {
	for _, norm := range e.norms() {
		norm.Train()
	}
}

// Eval puts every normalization layer in eval mode (running statistics).
func (e *DilatedEncoder[B]) Eval() {
	for _, norm := range e.norms() {
		norm.Eval()
	}
}

func (e *DilatedEncoder[B]) norms() []*nn.BatchNorm2d[B] {
	norms := []*nn.BatchNorm2d[B]{e.lateralNorm, e.fpnNorm}
	for _, block := range e.blocks {
		norms = append(norms, block.norms()...)
	}
	return norms
}

// Parameters returns all parameters of the encoder's stages in order.
func (e *DilatedEncoder[B]) Parameters() []*nn.Parameter[B] {
	return e.stages.Parameters()
}

// StateDict returns all parameter tensors keyed by stage-index-qualified
// names (e.g. "0.weight" for the lateral conv weight, "4.conv2.weight"
// for the first block's dilated conv). This is the shape contract any
// external persistence collaborator serializes.
func (e *DilatedEncoder[B]) StateDict() map[string]*tensor.RawTensor {
	return e.stages.StateDict()
}

// LoadStateDict loads parameter tensors produced by StateDict.
func (e *DilatedEncoder[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	return e.stages.LoadStateDict(stateDict)
}
