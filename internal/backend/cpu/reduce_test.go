package cpu

import (
	"math"
	"testing"

	"github.com/dilenc-ml/dilenc/internal/tensor"
)

func TestSum(t *testing.T) {
	backend := New()

	a := newFloat32(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	result := backend.Sum(a)

	if !result.Shape().Equal(tensor.Shape{}) {
		t.Fatalf("Sum shape = %v, want scalar", result.Shape())
	}
	if result.AsFloat32()[0] != 21 {
		t.Errorf("Sum = %v, want 21", result.AsFloat32()[0])
	}
}

func TestSumDim(t *testing.T) {
	backend := New()

	// 2x3 matrix:
	// 1 2 3
	// 4 5 6
	a := newFloat32(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})

	// Sum over rows (dim 0)
	s0 := backend.SumDim(a, 0, false)
	if !s0.Shape().Equal(tensor.Shape{3}) {
		t.Fatalf("SumDim(0) shape = %v, want [3]", s0.Shape())
	}
	expected0 := []float32{5, 7, 9}
	for i, exp := range expected0 {
		if s0.AsFloat32()[i] != exp {
			t.Errorf("SumDim(0)[%d] = %v, want %v", i, s0.AsFloat32()[i], exp)
		}
	}

	// Sum over columns (dim 1) with keepDim
	s1 := backend.SumDim(a, 1, true)
	if !s1.Shape().Equal(tensor.Shape{2, 1}) {
		t.Fatalf("SumDim(1, keepDim) shape = %v, want [2 1]", s1.Shape())
	}
	expected1 := []float32{6, 15}
	for i, exp := range expected1 {
		if s1.AsFloat32()[i] != exp {
			t.Errorf("SumDim(1)[%d] = %v, want %v", i, s1.AsFloat32()[i], exp)
		}
	}
}

func TestSumDimNegativeIndex(t *testing.T) {
	backend := New()

	a := newFloat32(t, tensor.Shape{2, 2}, []float32{1, 2, 3, 4})

	result := backend.SumDim(a, -1, false)
	if !result.Shape().Equal(tensor.Shape{2}) {
		t.Fatalf("SumDim(-1) shape = %v, want [2]", result.Shape())
	}
	if result.AsFloat32()[0] != 3 || result.AsFloat32()[1] != 7 {
		t.Errorf("SumDim(-1) = %v, want [3 7]", result.AsFloat32())
	}
}

func TestSumDimOutOfRange(t *testing.T) {
	backend := New()

	a := newFloat32(t, tensor.Shape{2, 2}, make([]float32, 4))

	defer func() {
		if r := recover(); r == nil {
			t.Error("SumDim with out-of-range dim should panic")
		}
	}()
	backend.SumDim(a, 2, false)
}

func TestMeanDim(t *testing.T) {
	backend := New()

	a := newFloat32(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})

	result := backend.MeanDim(a, 1, false)
	if !result.Shape().Equal(tensor.Shape{2}) {
		t.Fatalf("MeanDim shape = %v, want [2]", result.Shape())
	}
	if result.AsFloat32()[0] != 2 || result.AsFloat32()[1] != 5 {
		t.Errorf("MeanDim = %v, want [2 5]", result.AsFloat32())
	}
}

// TestMeanDimChannelStats verifies the chained per-channel reduction over
// an NCHW tensor: MeanDim(0) -> MeanDim(2) -> MeanDim(3) with keepDim.
func TestMeanDimChannelStats(t *testing.T) {
	backend := New()

	// [2, 2, 2, 2]: values chosen so channel means differ per channel
	values := make([]float32, 16)
	for i := range values {
		values[i] = float32(i)
	}
	a := newFloat32(t, tensor.Shape{2, 2, 2, 2}, values)

	mean := backend.MeanDim(backend.MeanDim(backend.MeanDim(a, 0, true), 2, true), 3, true)

	if !mean.Shape().Equal(tensor.Shape{1, 2, 1, 1}) {
		t.Fatalf("channel mean shape = %v, want [1 2 1 1]", mean.Shape())
	}

	// Channel 0 holds indices {0..3, 8..11}, mean 5.5
	// Channel 1 holds indices {4..7, 12..15}, mean 9.5
	expected := []float32{5.5, 9.5}
	for i, exp := range expected {
		if math.Abs(float64(mean.AsFloat32()[i]-exp)) > 1e-6 {
			t.Errorf("channel mean[%d] = %v, want %v", i, mean.AsFloat32()[i], exp)
		}
	}
}

func TestSumDimFloat64(t *testing.T) {
	backend := New()

	raw, _ := tensor.NewRaw(tensor.Shape{2, 2}, tensor.Float64, tensor.CPU)
	copy(raw.AsFloat64(), []float64{1, 2, 3, 4})

	result := backend.SumDim(raw, 0, false)
	if result.AsFloat64()[0] != 4 || result.AsFloat64()[1] != 6 {
		t.Errorf("SumDim float64 = %v, want [4 6]", result.AsFloat64())
	}
}
