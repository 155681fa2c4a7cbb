package nn

import (
	"fmt"

	"github.com/dilenc-ml/dilenc/internal/tensor"
)

// Parameter represents a named parameter tensor in a neural network.
//
// Parameters typically represent weights and biases of layers. In this
// library they are written only during the one-time initialization pass at
// construction; gradient updates belong to an external optimizer.
//
// Example:
//
//	weight := nn.NewParameter("weight", weightTensor)
//	w := weight.Tensor()
type Parameter[B tensor.Backend] struct {
	name   string                     // Parameter name (e.g., "weight", "bias")
	tensor *tensor.Tensor[float32, B] // The parameter tensor
}

// NewParameter creates a new parameter.
//
// The parameter tensor should be initialized before creating the Parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.tensor
}

// loadInto validates the shape and dtype of raw against the parameter and
// copies the data in. Shared by the layers' LoadStateDict implementations.
func (p *Parameter[B]) loadInto(raw *tensor.RawTensor) error {
	if !raw.Shape().Equal(p.tensor.Shape()) {
		return fmt.Errorf("%s shape mismatch: expected %v, got %v",
			p.name, p.tensor.Shape(), raw.Shape())
	}
	if raw.DType() != tensor.Float32 {
		return fmt.Errorf("%s dtype mismatch: expected float32, got %v", p.name, raw.DType())
	}
	copy(p.tensor.Data(), raw.AsFloat32())
	return nil
}
