package tensor

import (
	"testing"
)

func TestAdd(t *testing.T) {
	backend := NewMockBackend()

	a, _ := FromSlice([]float32{1, 2, 3, 4}, Shape{2, 2}, backend)
	b, _ := FromSlice([]float32{10, 20, 30, 40}, Shape{2, 2}, backend)

	c := a.Add(b)

	expected := []float32{11, 22, 33, 44}
	for i, want := range expected {
		if c.Data()[i] != want {
			t.Errorf("Add[%d] = %v, want %v", i, c.Data()[i], want)
		}
	}
}

func TestAddBroadcast(t *testing.T) {
	backend := NewMockBackend()

	// [2, 3] + [1, 3] broadcast over rows
	a, _ := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, backend)
	b, _ := FromSlice([]float32{10, 20, 30}, Shape{1, 3}, backend)

	c := a.Add(b)

	assertEqualShape(t, Shape{2, 3}, c.Shape(), "broadcast shape")
	expected := []float32{11, 22, 33, 14, 25, 36}
	for i, want := range expected {
		if c.Data()[i] != want {
			t.Errorf("Add[%d] = %v, want %v", i, c.Data()[i], want)
		}
	}
}

func TestAddBiasBroadcast(t *testing.T) {
	backend := NewMockBackend()

	// Conv-bias pattern: [1, 2, 2, 2] output plus [1, 2, 1, 1] per-channel bias
	out, _ := FromSlice([]float32{1, 2, 3, 4, 5, 6, 7, 8}, Shape{1, 2, 2, 2}, backend)
	bias, _ := FromSlice([]float32{10, 100}, Shape{1, 2, 1, 1}, backend)

	c := out.Add(bias)

	expected := []float32{11, 12, 13, 14, 105, 106, 107, 108}
	for i, want := range expected {
		if c.Data()[i] != want {
			t.Errorf("Add[%d] = %v, want %v", i, c.Data()[i], want)
		}
	}
}

func TestSubMulDiv(t *testing.T) {
	backend := NewMockBackend()

	a, _ := FromSlice([]float32{10, 20, 30, 40}, Shape{4}, backend)
	b, _ := FromSlice([]float32{2, 4, 5, 8}, Shape{4}, backend)

	sub := a.Sub(b)
	mul := a.Mul(b)
	div := a.Div(b)

	expectedSub := []float32{8, 16, 25, 32}
	expectedMul := []float32{20, 80, 150, 320}
	expectedDiv := []float32{5, 5, 6, 5}

	for i := range expectedSub {
		if sub.Data()[i] != expectedSub[i] {
			t.Errorf("Sub[%d] = %v, want %v", i, sub.Data()[i], expectedSub[i])
		}
		if mul.Data()[i] != expectedMul[i] {
			t.Errorf("Mul[%d] = %v, want %v", i, mul.Data()[i], expectedMul[i])
		}
		if div.Data()[i] != expectedDiv[i] {
			t.Errorf("Div[%d] = %v, want %v", i, div.Data()[i], expectedDiv[i])
		}
	}
}

func TestReshape(t *testing.T) {
	backend := NewMockBackend()

	a, _ := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{6}, backend)
	b := a.Reshape(2, 3)

	assertEqualShape(t, Shape{2, 3}, b.Shape(), "reshape shape")
	assertEqualFloat32(t, 6, b.At(1, 2), "At(1,2)")
}

func TestScalarOps(t *testing.T) {
	backend := NewMockBackend()

	a, _ := FromSlice([]float32{1, 2, 3, 4}, Shape{4}, backend)

	mul := a.MulScalar(2)
	add := a.AddScalar(10)

	for i := range a.Data() {
		assertEqualFloat32(t, a.Data()[i]*2, mul.Data()[i], "MulScalar")
		assertEqualFloat32(t, a.Data()[i]+10, add.Data()[i], "AddScalar")
	}
}

func TestSqrt(t *testing.T) {
	backend := NewMockBackend()

	a, _ := FromSlice([]float32{1, 4, 9, 16}, Shape{4}, backend)
	b := a.Sqrt()

	expected := []float32{1, 2, 3, 4}
	for i, want := range expected {
		assertEqualFloat32(t, want, b.Data()[i], "Sqrt")
	}
}

func TestSum(t *testing.T) {
	backend := NewMockBackend()

	a, _ := FromSlice([]float32{1, 2, 3, 4}, Shape{2, 2}, backend)
	s := a.Sum()

	assertEqualShape(t, Shape{}, s.Shape(), "Sum shape")
	assertEqualFloat32(t, 10, s.Item(), "Sum value")
}

func TestSumDim(t *testing.T) {
	backend := NewMockBackend()

	a, _ := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, backend)

	// Sum over rows (dim 0)
	s0 := a.SumDim(0, false)
	assertEqualShape(t, Shape{3}, s0.Shape(), "SumDim(0) shape")
	expected0 := []float32{5, 7, 9}
	for i, want := range expected0 {
		assertEqualFloat32(t, want, s0.Data()[i], "SumDim(0)")
	}

	// Sum over columns (dim 1) with keepDim
	s1 := a.SumDim(1, true)
	assertEqualShape(t, Shape{2, 1}, s1.Shape(), "SumDim(1, keepDim) shape")
	expected1 := []float32{6, 15}
	for i, want := range expected1 {
		assertEqualFloat32(t, want, s1.Data()[i], "SumDim(1)")
	}
}

func TestMeanDim(t *testing.T) {
	backend := NewMockBackend()

	a, _ := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, backend)

	m := a.MeanDim(1, false)
	assertEqualShape(t, Shape{2}, m.Shape(), "MeanDim shape")
	assertEqualFloat32(t, 2, m.Data()[0], "MeanDim row 0")
	assertEqualFloat32(t, 5, m.Data()[1], "MeanDim row 1")
}

func TestMeanDimNegative(t *testing.T) {
	backend := NewMockBackend()

	a, _ := FromSlice([]float32{1, 2, 3, 4}, Shape{2, 2}, backend)

	m := a.MeanDim(-1, false)
	assertEqualShape(t, Shape{2}, m.Shape(), "MeanDim(-1) shape")
	assertEqualFloat32(t, 1.5, m.Data()[0], "MeanDim(-1) row 0")
	assertEqualFloat32(t, 3.5, m.Data()[1], "MeanDim(-1) row 1")
}

// Per-channel statistics pattern used by batch normalization: chained
// MeanDim over N, H, W of an NCHW tensor.
func TestChannelMeanChain(t *testing.T) {
	backend := NewMockBackend()

	// [1, 2, 2, 2]: channel 0 holds 1..4, channel 1 holds 5..8
	a, _ := FromSlice([]float32{1, 2, 3, 4, 5, 6, 7, 8}, Shape{1, 2, 2, 2}, backend)

	mean := a.MeanDim(0, true).MeanDim(2, true).MeanDim(3, true)

	assertEqualShape(t, Shape{1, 2, 1, 1}, mean.Shape(), "channel mean shape")
	assertEqualFloat32(t, 2.5, mean.Data()[0], "channel 0 mean")
	assertEqualFloat32(t, 6.5, mean.Data()[1], "channel 1 mean")
}

func TestClone(t *testing.T) {
	backend := NewMockBackend()

	a, _ := FromSlice([]float32{1, 2, 3, 4}, Shape{2, 2}, backend)
	b := a.Clone()

	assertEqualShape(t, a.Shape(), b.Shape(), "clone shape")
	assertEqualFloat32(t, a.At(0, 1), b.At(0, 1), "clone data")
}
