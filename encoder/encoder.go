// Copyright 2026 DilEnc ML Library. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package encoder

import (
	"github.com/dilenc-ml/dilenc/internal/encoder"
	"github.com/dilenc-ml/dilenc/internal/tensor"
)

// Config holds the dilated encoder configuration.
type Config = encoder.Config

// DefaultConfig returns the baseline configuration: a 1024-channel input
// projected to 512 channels, followed by four residual blocks of bottleneck
// width 128 with dilations 2, 4, 6, 8.
func DefaultConfig() Config {
	return encoder.DefaultConfig()
}

// LoadConfig reads a YAML configuration file over the defaults.
func LoadConfig(path string) (Config, error) {
	return encoder.LoadConfig(path)
}

// ParseConfig parses YAML configuration bytes over the defaults.
func ParseConfig(data []byte) (Config, error) {
	return encoder.ParseConfig(data)
}

// DilatedEncoder is the dilated feature encoder model.
type DilatedEncoder[B tensor.Backend] = encoder.DilatedEncoder[B]

// Bottleneck is a dilated residual block.
type Bottleneck[B tensor.Backend] = encoder.Bottleneck[B]

// New builds a DilatedEncoder from the given configuration. The encoder
// starts in eval mode; call Train to switch its normalization layers to
// batch statistics.
//
// Example:
//
//	backend := cpu.New()
//	enc, err := encoder.New(encoder.DefaultConfig(), backend)
func New[B tensor.Backend](cfg Config, backend B) (*DilatedEncoder[B], error) {
	return encoder.New(cfg, backend)
}

// NewBottleneck creates a standalone dilated residual block.
//
// Most users build whole encoders with New; standalone blocks are useful
// when composing custom stacks.
func NewBottleneck[B tensor.Backend](inChannels, midChannels, dilation int, backend B) *Bottleneck[B] {
	return encoder.NewBottleneck(inChannels, midChannels, dilation, backend)
}
