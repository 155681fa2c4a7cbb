package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dilenc-ml/dilenc/internal/backend/cpu"
	"github.com/dilenc-ml/dilenc/internal/nn"
	"github.com/dilenc-ml/dilenc/internal/tensor"
)

func TestBottleneck_ShapePreservation(t *testing.T) {
	backend := cpu.New()

	for _, dilation := range []int{1, 2, 4, 6, 8} {
		block := NewBottleneck(32, 16, dilation, backend)

		input := tensor.Randn[float32](tensor.Shape{2, 32, 9, 9}, backend)
		output := block.Forward(input)

		assert.True(t, output.Shape().Equal(input.Shape()),
			"dilation=%d: output shape %v != input shape %v", dilation, output.Shape(), input.Shape())
	}
}

func TestBottleneck_Accessors(t *testing.T) {
	backend := cpu.New()

	block := NewBottleneck(64, 16, 4, backend)

	assert.Equal(t, 64, block.InChannels())
	assert.Equal(t, 16, block.MidChannels())
	assert.Equal(t, 4, block.Dilation())
}

func TestBottleneck_InvalidDilationPanics(t *testing.T) {
	backend := cpu.New()

	assert.Panics(t, func() {
		NewBottleneck(32, 16, 0, backend)
	})
}

func TestBottleneck_InitWeights(t *testing.T) {
	backend := cpu.New()

	block := NewBottleneck(32, 16, 2, backend)
	block.initWeights()

	// Norms are reset to the identity transform
	for _, norm := range block.norms() {
		for _, v := range norm.Gamma.Tensor().Data() {
			require.Equal(t, float32(1), v)
		}
		for _, v := range norm.Beta.Tensor().Data() {
			require.Equal(t, float32(0), v)
		}
	}

	// Conv biases are zeroed, weights drawn from N(0, 0.01^2)
	for _, conv := range []*nn.Conv2D[*cpu.CPUBackend]{block.conv1, block.conv2, block.conv3} {
		for _, v := range conv.Bias().Tensor().Data() {
			require.Equal(t, float32(0), v)
		}
		for _, v := range conv.Weight().Tensor().Data() {
			require.Less(t, v, float32(0.1))
			require.Greater(t, v, float32(-0.1))
		}
	}
}

func TestBottleneck_ResidualPath(t *testing.T) {
	backend := cpu.New()

	block := NewBottleneck(8, 4, 2, backend)
	block.initWeights()
	for _, norm := range block.norms() {
		norm.Eval()
	}

	// Zero all conv weights: the transform branch becomes
	// relu(norm(bias)) at each stage. With zero biases too, the block
	// output must equal the input exactly (pure residual path).
	for _, conv := range []*tensor.Tensor[float32, *cpu.CPUBackend]{
		block.conv1.Weight().Tensor(),
		block.conv2.Weight().Tensor(),
		block.conv3.Weight().Tensor(),
	} {
		for i := range conv.Data() {
			conv.Data()[i] = 0
		}
	}

	input, err := tensor.FromSlice(
		[]float32{1, -2, 3, -4, 5, -6, 7, -8},
		tensor.Shape{1, 8, 1, 1}, backend)
	require.NoError(t, err)

	output := block.Forward(input)

	require.True(t, output.Shape().Equal(input.Shape()))
	for i, v := range input.Data() {
		assert.InDelta(t, v, output.Data()[i], 1e-5, "residual output[%d]", i)
	}
}

func TestBottleneck_Parameters(t *testing.T) {
	backend := cpu.New()

	block := NewBottleneck(32, 16, 2, backend)

	// 3 convs (weight+bias) + 3 norms (gamma+beta) = 12 parameters
	assert.Len(t, block.Parameters(), 12)
}

func TestBottleneck_StateDictRoundTrip(t *testing.T) {
	backend := cpu.New()

	src := NewBottleneck(16, 8, 2, backend)
	dst := NewBottleneck(16, 8, 2, backend)

	stateDict := src.StateDict()
	assert.Contains(t, stateDict, "conv1.weight")
	assert.Contains(t, stateDict, "conv2.weight")
	assert.Contains(t, stateDict, "norm3.gamma")

	require.NoError(t, dst.LoadStateDict(stateDict))

	srcWeight := src.conv2.Weight().Tensor().Data()
	dstWeight := dst.conv2.Weight().Tensor().Data()
	for i := range srcWeight {
		require.Equal(t, srcWeight[i], dstWeight[i], "conv2.weight[%d]", i)
	}
}
