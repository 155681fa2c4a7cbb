package nn

import (
	"testing"

	"github.com/dilenc-ml/dilenc/internal/backend/cpu"
	"github.com/dilenc-ml/dilenc/internal/tensor"
)

// TestReLU_Forward tests ReLU activation.
func TestReLU_Forward(t *testing.T) {
	backend := cpu.New()

	relu := NewReLU[*cpu.CPUBackend]()

	input, _ := tensor.FromSlice([]float32{-2, -0.5, 0, 0.5, 2, -1}, tensor.Shape{1, 1, 2, 3}, backend)
	output := relu.Forward(input)

	if !output.Shape().Equal(input.Shape()) {
		t.Fatalf("Output shape: expected %v, got %v", input.Shape(), output.Shape())
	}

	expected := []float32{0, 0, 0, 0.5, 2, 0}
	for i, exp := range expected {
		if output.Data()[i] != exp {
			t.Errorf("Output[%d] = %v, want %v", i, output.Data()[i], exp)
		}
	}
}

// TestReLU_NoParameters tests that ReLU carries no state.
func TestReLU_NoParameters(t *testing.T) {
	relu := NewReLU[*cpu.CPUBackend]()

	if len(relu.Parameters()) != 0 {
		t.Errorf("Expected no parameters, got %d", len(relu.Parameters()))
	}
	if len(relu.StateDict()) != 0 {
		t.Errorf("Expected empty state dict, got %d entries", len(relu.StateDict()))
	}
	if err := relu.LoadStateDict(map[string]*tensor.RawTensor{}); err != nil {
		t.Errorf("LoadStateDict should be a no-op, got %v", err)
	}
}
