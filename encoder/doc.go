// Copyright 2026 DilEnc ML Library. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package encoder provides the dilated feature encoder.
//
// # Overview
//
// The encoder transforms a backbone feature map before it reaches a
// detection head: a 1x1 channel projection and a 3x3 refinement (each
// followed by batch normalization, with no activation), then a stack of
// dilated residual bottleneck blocks. Spatial dimensions are preserved
// end to end; only the channel depth changes, from in_channels to
// encoder_channels.
//
// # Basic Usage
//
//	import (
//	    "github.com/dilenc-ml/dilenc/backend/cpu"
//	    "github.com/dilenc-ml/dilenc/encoder"
//	    "github.com/dilenc-ml/dilenc/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    enc, err := encoder.New(encoder.DefaultConfig(), backend)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    feature := tensor.Randn[float32](tensor.Shape{16, 1024, 13, 13}, backend)
//	    out := enc.Forward(feature)  // [16, 512, 13, 13]
//	}
//
// # Configuration
//
// Configurations come from DefaultConfig, struct literals, or YAML files:
//
//	cfg, err := encoder.LoadConfig("encoder.yaml")
//
// with YAML keys in_channels, encoder_channels, block_mid_channels,
// num_residual_blocks and block_dilations. The block_dilations list must
// have exactly num_residual_blocks entries.
package encoder
