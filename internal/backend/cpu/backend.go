// Package cpu implements the pure Go CPU backend for tensor operations.
package cpu

import (
	"fmt"

	"github.com/dilenc-ml/dilenc/internal/tensor"
)

// CPUBackend implements tensor operations on CPU in pure Go.
type CPUBackend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("add", a, b, addFloat32, addFloat64)
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("sub", a, b, subFloat32, subFloat64)
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("mul", a, b, mulFloat32, mulFloat64)
}

// Div performs element-wise division with broadcasting.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("div", a, b, divFloat32, divFloat64)
}

// binaryOp dispatches an element-wise binary operation, choosing the
// vectorized same-shape path or the broadcasting path.
func (cpu *CPUBackend) binaryOp(
	name string,
	a, b *tensor.RawTensor,
	opF32 func(x, y float32) float32,
	opF64 func(x, y float64) float64,
) *tensor.RawTensor {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	result, err := tensor.NewRaw(outShape, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}

	switch a.DType() {
	case tensor.Float32:
		if !needsBroadcast {
			dst, x, y := result.AsFloat32(), a.AsFloat32(), b.AsFloat32()
			for i := range dst {
				dst[i] = opF32(x[i], y[i])
			}
		} else {
			broadcastFloat32(result, a, b, outShape, opF32)
		}
	case tensor.Float64:
		if !needsBroadcast {
			dst, x, y := result.AsFloat64(), a.AsFloat64(), b.AsFloat64()
			for i := range dst {
				dst[i] = opF64(x[i], y[i])
			}
		} else {
			broadcastFloat64(result, a, b, outShape, opF64)
		}
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s (only float32/float64 supported)", name, a.DType()))
	}

	return result
}

func addFloat32(x, y float32) float32 { return x + y }
func subFloat32(x, y float32) float32 { return x - y }
func mulFloat32(x, y float32) float32 { return x * y }
func divFloat32(x, y float32) float32 { return x / y }

func addFloat64(x, y float64) float64 { return x + y }
func subFloat64(x, y float64) float64 { return x - y }
func mulFloat64(x, y float64) float64 { return x * y }
func divFloat64(x, y float64) float64 { return x / y }

// Reshape returns a tensor with the same data but different shape.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if err := newShape.Validate(); err != nil {
		panic(fmt.Sprintf("reshape: invalid shape: %v", err))
	}

	if t.NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("reshape: incompatible shapes: %v -> %v (different number of elements)",
			t.Shape(), newShape))
	}

	result, err := tensor.NewRaw(newShape, t.DType(), t.Device())
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}

	copy(result.Data(), t.Data())
	return result
}
