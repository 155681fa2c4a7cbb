package cpu

import (
	"github.com/dilenc-ml/dilenc/internal/tensor"
)

// broadcastIndex maps a flat index into the output shape onto the flat
// index of a (possibly lower-rank, size-1 padded) operand shape.
func broadcastIndex(flatIdx int, outShape, srcShape tensor.Shape, srcStrides []int) int {
	srcIdx := 0
	rankDiff := len(outShape) - len(srcShape)

	// Walk output coordinates from the last dimension backwards.
	remaining := flatIdx
	for i := len(outShape) - 1; i >= 0; i-- {
		coord := remaining % outShape[i]
		remaining /= outShape[i]

		srcDim := i - rankDiff
		if srcDim < 0 {
			continue // dimension missing in source, treated as size 1
		}
		if srcShape[srcDim] == 1 {
			continue // broadcast dimension, coordinate pinned to 0
		}
		srcIdx += coord * srcStrides[srcDim]
	}

	return srcIdx
}

// broadcastFloat32 applies op element-wise with broadcasting for float32 tensors.
func broadcastFloat32(result, a, b *tensor.RawTensor, outShape tensor.Shape, op func(x, y float32) float32) {
	dst := result.AsFloat32()
	aData := a.AsFloat32()
	bData := b.AsFloat32()
	aShape, bShape := a.Shape(), b.Shape()
	aStrides, bStrides := a.Strides(), b.Strides()

	for i := range dst {
		aIdx := broadcastIndex(i, outShape, aShape, aStrides)
		bIdx := broadcastIndex(i, outShape, bShape, bStrides)
		dst[i] = op(aData[aIdx], bData[bIdx])
	}
}

// broadcastFloat64 applies op element-wise with broadcasting for float64 tensors.
func broadcastFloat64(result, a, b *tensor.RawTensor, outShape tensor.Shape, op func(x, y float64) float64) {
	dst := result.AsFloat64()
	aData := a.AsFloat64()
	bData := b.AsFloat64()
	aShape, bShape := a.Shape(), b.Shape()
	aStrides, bStrides := a.Strides(), b.Strides()

	for i := range dst {
		aIdx := broadcastIndex(i, outShape, aShape, aStrides)
		bIdx := broadcastIndex(i, outShape, bShape, bStrides)
		dst[i] = op(aData[aIdx], bData[bIdx])
	}
}
