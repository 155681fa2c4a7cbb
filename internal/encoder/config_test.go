package encoder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 1024, cfg.InChannels)
	assert.Equal(t, 512, cfg.EncoderChannels)
	assert.Equal(t, 128, cfg.BlockMidChannels)
	assert.Equal(t, 4, cfg.NumResidualBlocks)
	assert.Equal(t, []int{2, 4, 6, 8}, cfg.BlockDilations)

	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "zero in_channels",
			mutate:  func(c *Config) { c.InChannels = 0 },
			wantErr: "in_channels",
		},
		{
			name:    "negative encoder_channels",
			mutate:  func(c *Config) { c.EncoderChannels = -1 },
			wantErr: "encoder_channels",
		},
		{
			name:    "zero block_mid_channels",
			mutate:  func(c *Config) { c.BlockMidChannels = 0 },
			wantErr: "block_mid_channels",
		},
		{
			name:    "zero num_residual_blocks",
			mutate:  func(c *Config) { c.NumResidualBlocks = 0 },
			wantErr: "num_residual_blocks",
		},
		{
			name: "dilations length mismatch",
			mutate: func(c *Config) {
				c.NumResidualBlocks = 3
				c.BlockDilations = []int{1, 2}
			},
			wantErr: "block_dilations length 2 != num_residual_blocks 3",
		},
		{
			name: "non-positive dilation",
			mutate: func(c *Config) {
				c.NumResidualBlocks = 2
				c.BlockDilations = []int{2, 0}
			},
			wantErr: "block_dilations[1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestParseConfig(t *testing.T) {
	yaml := []byte(`
in_channels: 64
encoder_channels: 32
block_mid_channels: 16
num_residual_blocks: 2
block_dilations: [1, 1]
`)

	cfg, err := ParseConfig(yaml)
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.InChannels)
	assert.Equal(t, 32, cfg.EncoderChannels)
	assert.Equal(t, 16, cfg.BlockMidChannels)
	assert.Equal(t, 2, cfg.NumResidualBlocks)
	assert.Equal(t, []int{1, 1}, cfg.BlockDilations)
}

func TestParseConfigPartialOverride(t *testing.T) {
	// Absent fields keep their defaults
	cfg, err := ParseConfig([]byte("in_channels: 2048\n"))
	require.NoError(t, err)

	assert.Equal(t, 2048, cfg.InChannels)
	assert.Equal(t, 512, cfg.EncoderChannels)
	assert.Equal(t, []int{2, 4, 6, 8}, cfg.BlockDilations)
}

func TestParseConfigEmpty(t *testing.T) {
	cfg, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParseConfigUnknownField(t *testing.T) {
	_, err := ParseConfig([]byte("unknown_key: 42\n"))
	assert.Error(t, err)
}

func TestParseConfigInvalid(t *testing.T) {
	// Overriding the dilation list without the block count must fail validation
	_, err := ParseConfig([]byte("block_dilations: [2, 4]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "block_dilations length")
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "encoder.yaml")

	content := []byte(`
in_channels: 256
encoder_channels: 128
block_mid_channels: 32
num_residual_blocks: 2
block_dilations: [2, 4]
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.InChannels)
	assert.Equal(t, []int{2, 4}, cfg.BlockDilations)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
