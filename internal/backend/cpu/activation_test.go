package cpu

import (
	"testing"

	"github.com/dilenc-ml/dilenc/internal/tensor"
)

func TestReLU(t *testing.T) {
	backend := New()

	a := newFloat32(t, tensor.Shape{5}, []float32{-2, -0.5, 0, 0.5, 2})
	result := backend.ReLU(a).AsFloat32()

	expected := []float32{0, 0, 0, 0.5, 2}
	for i, exp := range expected {
		if result[i] != exp {
			t.Errorf("ReLU[%d] = %v, want %v", i, result[i], exp)
		}
	}

	// Input must be untouched
	if a.AsFloat32()[0] != -2 {
		t.Error("ReLU must not mutate its input")
	}
}

func TestReLUFloat64(t *testing.T) {
	backend := New()

	raw, _ := tensor.NewRaw(tensor.Shape{3}, tensor.Float64, tensor.CPU)
	copy(raw.AsFloat64(), []float64{-1, 0, 1})

	result := backend.ReLU(raw).AsFloat64()
	expected := []float64{0, 0, 1}
	for i, exp := range expected {
		if result[i] != exp {
			t.Errorf("ReLU[%d] = %v, want %v", i, result[i], exp)
		}
	}
}
