package tensor

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// The CPU backend is the reference implementation (pure Go). Device
// backends can be added behind the same interface.
type Backend interface {
	// Element-wise binary operations
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Conv2D performs 2D convolution over NCHW input.
	// Padding is applied symmetrically; dilation inserts dilation-1 gaps
	// between kernel taps. dilation=1 is an ordinary convolution.
	Conv2D(input, kernel *RawTensor, stride, padding, dilation int) *RawTensor

	// Shape operations
	Reshape(t *RawTensor, newShape Shape) *RawTensor

	// Scalar operations (element-wise with scalar)
	MulScalar(x *RawTensor, scalar any) *RawTensor // multiply by scalar
	AddScalar(x *RawTensor, scalar any) *RawTensor // add scalar

	// Math operations (element-wise)
	Sqrt(x *RawTensor) *RawTensor // square root

	// Reduction operations
	Sum(x *RawTensor) *RawTensor                            // total sum (scalar result)
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor  // sum along dimension
	MeanDim(x *RawTensor, dim int, keepDim bool) *RawTensor // mean along dimension

	// Metadata
	Name() string
	Device() Device
}
