package cpu

import (
	"fmt"

	"github.com/dilenc-ml/dilenc/internal/tensor"
)

// SumDim sums tensor elements along the specified dimension.
//
// Parameters:
//   - dim: dimension to reduce (supports negative indexing: -1 = last dim)
//   - keepDim: if true, keep the reduced dimension with size 1; if false, remove it
//
// Example:
//
//	x := tensor.Randn[float32](tensor.Shape{2, 3, 4}, backend)
//	y := backend.SumDim(x.Raw(), -1, true)   // shape: [2, 3, 1]
//	z := backend.SumDim(x.Raw(), -1, false)  // shape: [2, 3]
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	// Normalize negative dimension
	if dim < 0 {
		dim = ndim + dim
	}

	// Validate dimension
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("sumdim: dimension %d out of range for %dD tensor", dim, ndim))
	}

	// Calculate output shape
	var outShape tensor.Shape
	if keepDim {
		outShape = shape.Clone()
		outShape[dim] = 1
	} else {
		outShape = make(tensor.Shape, 0, ndim-1)
		for i := 0; i < ndim; i++ {
			if i != dim {
				outShape = append(outShape, shape[i])
			}
		}
	}

	// Create result tensor
	result, err := tensor.NewRaw(outShape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("sumdim: %v", err))
	}

	// Perform reduction
	switch x.DType() {
	case tensor.Float32:
		sumDimFloat32(x.AsFloat32(), result.AsFloat32(), shape, dim)
	case tensor.Float64:
		sumDimFloat64(x.AsFloat64(), result.AsFloat64(), shape, dim)
	default:
		panic(fmt.Sprintf("sumdim: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}

// MeanDim computes the mean of tensor elements along the specified dimension.
//
// Parameters:
//   - dim: dimension to reduce (supports negative indexing: -1 = last dim)
//   - keepDim: if true, keep the reduced dimension with size 1; if false, remove it
func (cpu *CPUBackend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	// Sum along dimension
	sumResult := cpu.SumDim(x, dim, keepDim)

	// Normalize negative dimension for division
	shape := x.Shape()
	ndim := len(shape)
	if dim < 0 {
		dim = ndim + dim
	}

	// Divide by the size of the reduced dimension
	divisor := float64(shape[dim])

	switch sumResult.DType() {
	case tensor.Float32:
		data := sumResult.AsFloat32()
		divisorF32 := float32(divisor)
		for i := range data {
			data[i] /= divisorF32
		}
	case tensor.Float64:
		data := sumResult.AsFloat64()
		for i := range data {
			data[i] /= divisor
		}
	default:
		panic(fmt.Sprintf("meandim: unsupported dtype %s (only float32/float64 supported)", sumResult.DType()))
	}

	return sumResult
}

// Sum computes the total sum of all elements, returning a scalar tensor.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(tensor.Shape{}, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("sum: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		var total float32
		for _, v := range x.AsFloat32() {
			total += v
		}
		result.AsFloat32()[0] = total
	case tensor.Float64:
		var total float64
		for _, v := range x.AsFloat64() {
			total += v
		}
		result.AsFloat64()[0] = total
	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}

// sumDimFloat32 performs dimension reduction for float32 tensors.
func sumDimFloat32(data, result []float32, shape tensor.Shape, dim int) {
	for i := range result {
		result[i] = 0
	}

	// outer: product of dimensions before dim
	// dimSize: size of the reduced dimension
	// inner: product of dimensions after dim
	outer, dimSize, inner := splitShape(shape, dim)

	for o := 0; o < outer; o++ {
		for d := 0; d < dimSize; d++ {
			srcBase := (o*dimSize + d) * inner
			dstBase := o * inner
			for in := 0; in < inner; in++ {
				result[dstBase+in] += data[srcBase+in]
			}
		}
	}
}

// sumDimFloat64 performs dimension reduction for float64 tensors.
func sumDimFloat64(data, result []float64, shape tensor.Shape, dim int) {
	for i := range result {
		result[i] = 0
	}

	outer, dimSize, inner := splitShape(shape, dim)

	for o := 0; o < outer; o++ {
		for d := 0; d < dimSize; d++ {
			srcBase := (o*dimSize + d) * inner
			dstBase := o * inner
			for in := 0; in < inner; in++ {
				result[dstBase+in] += data[srcBase+in]
			}
		}
	}
}

// splitShape factors a shape around the reduced dimension into
// (outer, dimSize, inner) products for contiguous row-major iteration.
func splitShape(shape tensor.Shape, dim int) (outer, dimSize, inner int) {
	outer, dimSize, inner = 1, shape[dim], 1
	for i := 0; i < dim; i++ {
		outer *= shape[i]
	}
	for i := dim + 1; i < len(shape); i++ {
		inner *= shape[i]
	}
	return outer, dimSize, inner
}
