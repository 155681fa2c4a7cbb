// Package encoder implements the dilated feature encoder: a channel
// projection followed by a stack of dilated residual blocks that enlarges
// the receptive field of a backbone feature map while preserving its
// spatial resolution.
package encoder

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the dilated encoder configuration.
//
// The zero value is not usable; start from DefaultConfig and override
// fields, or load a YAML file with LoadConfig.
type Config struct {
	// InChannels is the channel depth of the backbone feature map.
	InChannels int `yaml:"in_channels"`

	// EncoderChannels is the working channel width of the encoder and the
	// channel depth of its output.
	EncoderChannels int `yaml:"encoder_channels"`

	// BlockMidChannels is the bottleneck width inside each residual block.
	BlockMidChannels int `yaml:"block_mid_channels"`

	// NumResidualBlocks is the depth of the dilated residual stack.
	NumResidualBlocks int `yaml:"num_residual_blocks"`

	// BlockDilations holds the per-block dilation rate. Its length must
	// equal NumResidualBlocks.
	BlockDilations []int `yaml:"block_dilations"`
}

// DefaultConfig returns the baseline configuration: a 1024-channel input
// projected to 512 channels, followed by four residual blocks of bottleneck
// width 128 with dilations 2, 4, 6, 8.
func DefaultConfig() Config {
	return Config{
		InChannels:        1024,
		EncoderChannels:   512,
		BlockMidChannels:  128,
		NumResidualBlocks: 4,
		BlockDilations:    []int{2, 4, 6, 8},
	}
}

// Validate checks the configuration once. A non-nil error means the
// configuration is rejected and no encoder can be built from it.
func (c Config) Validate() error {
	if c.InChannels <= 0 {
		return fmt.Errorf("in_channels must be > 0, got %d", c.InChannels)
	}
	if c.EncoderChannels <= 0 {
		return fmt.Errorf("encoder_channels must be > 0, got %d", c.EncoderChannels)
	}
	if c.BlockMidChannels <= 0 {
		return fmt.Errorf("block_mid_channels must be > 0, got %d", c.BlockMidChannels)
	}
	if c.NumResidualBlocks <= 0 {
		return fmt.Errorf("num_residual_blocks must be > 0, got %d", c.NumResidualBlocks)
	}
	if len(c.BlockDilations) != c.NumResidualBlocks {
		return fmt.Errorf("block_dilations length %d != num_residual_blocks %d",
			len(c.BlockDilations), c.NumResidualBlocks)
	}
	for i, d := range c.BlockDilations {
		if d <= 0 {
			return fmt.Errorf("block_dilations[%d] must be > 0, got %d", i, d)
		}
	}
	return nil
}

// LoadConfig reads a YAML configuration file over the defaults.
//
// Fields absent from the file keep their DefaultConfig values. Unknown
// fields are rejected. The returned configuration is validated.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML configuration bytes over the defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
