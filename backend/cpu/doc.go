// Copyright 2026 DilEnc ML Library. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Im2col algorithm for convolutions, including dilated convolutions
//   - Float32 and Float64 support
//   - Batch processing
//   - NumPy-compatible broadcasting
//
// # Basic Usage
//
//	import (
//	    "github.com/dilenc-ml/dilenc/backend/cpu"
//	    "github.com/dilenc-ml/dilenc/tensor"
//	    "github.com/dilenc-ml/dilenc/nn"
//	)
//
//	func main() {
//	    // Create CPU backend
//	    backend := cpu.New()
//
//	    // Use with tensors
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	    z := x.Add(y)
//
//	    // Use with neural networks
//	    conv := nn.NewConv2D(64, 32, 3, 3, 1, 2, 2, true, backend)
//	}
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each tensor operation
// allocates its own result and does not share mutable state.
package cpu
