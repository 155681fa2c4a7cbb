// Package tensor provides the core tensor types and operations for the DilEnc library.
package tensor

// DType constrains the element types the library computes with. Feature
// maps and parameters use float32; float64 is available for
// higher-precision verification.
type DType interface {
	~float32 | ~float64
}

// DataType is the runtime tag matching a DType instantiation.
type DataType int

// Supported data types.
const (
	Float32 DataType = iota
	Float64
)

// Size returns the element size in bytes.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// inferDataType maps a generic element type to its runtime tag.
func inferDataType[T DType](dummy T) DataType {
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	default:
		panic("unsupported type")
	}
}
