// Copyright 2026 DilEnc ML Library. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package encoder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dilenc-ml/dilenc/backend/cpu"
	"github.com/dilenc-ml/dilenc/encoder"
	"github.com/dilenc-ml/dilenc/tensor"
)

// TestEncoderEndToEnd exercises the full public API: config, construction,
// forward pass, and state persistence.
func TestEncoderEndToEnd(t *testing.T) {
	backend := cpu.New()

	cfg := encoder.Config{
		InChannels:        64,
		EncoderChannels:   32,
		BlockMidChannels:  16,
		NumResidualBlocks: 2,
		BlockDilations:    []int{2, 4},
	}

	enc, err := encoder.New(cfg, backend)
	require.NoError(t, err)

	feature := tensor.Randn[float32](tensor.Shape{1, 64, 20, 20}, backend)
	out := enc.Forward(feature)

	assert.True(t, out.Shape().Equal(tensor.Shape{1, 32, 20, 20}),
		"output shape %v, want [1 32 20 20]", out.Shape())

	// Round-trip the state through a second encoder
	clone, err := encoder.New(cfg, backend)
	require.NoError(t, err)
	require.NoError(t, clone.LoadStateDict(enc.StateDict()))

	enc.Eval()
	clone.Eval()

	a := enc.Forward(feature)
	b := clone.Forward(feature)
	for i := range a.Data() {
		require.Equal(t, a.Data()[i], b.Data()[i], "output[%d]", i)
	}
}

// TestStandaloneBottleneck exercises a block built outside an encoder.
func TestStandaloneBottleneck(t *testing.T) {
	backend := cpu.New()

	block := encoder.NewBottleneck(16, 8, 4, backend)

	x := tensor.Randn[float32](tensor.Shape{1, 16, 9, 9}, backend)
	y := block.Forward(x)

	assert.True(t, y.Shape().Equal(x.Shape()))
}

// TestDefaultConfigRoundTrip parses the default configuration from YAML.
func TestDefaultConfigRoundTrip(t *testing.T) {
	cfg, err := encoder.ParseConfig([]byte("in_channels: 1024\n"))
	require.NoError(t, err)
	assert.Equal(t, encoder.DefaultConfig(), cfg)
}
