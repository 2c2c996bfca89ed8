package ubloxtec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUncertainAddCombinesStdevInQuadrature(t *testing.T) {
	a := Uncertain{Value: 3, Stdev: 4}
	b := Uncertain{Value: 5, Stdev: 3}
	got := a.Add(b)
	assert.InDelta(t, 8, got.Value, 1e-12)
	assert.InDelta(t, 5, got.Stdev, 1e-12) // hypot(4,3) = 5
}

func TestUncertainAdditiveIdentity(t *testing.T) {
	a := Uncertain{Value: 7.5, Stdev: 1.2}
	zero := Exact(0)
	got := a.Add(zero)
	assert.InDelta(t, a.Value, got.Value, 1e-12)
	assert.InDelta(t, a.Stdev, got.Stdev, 1e-12)
}

func TestUncertainNegPreservesStdev(t *testing.T) {
	a := Uncertain{Value: 2, Stdev: 0.5}
	got := a.Neg()
	assert.Equal(t, -2.0, got.Value)
	assert.Equal(t, 0.5, got.Stdev)
}

func TestUncertainSubIsAddOfNeg(t *testing.T) {
	a := Uncertain{Value: 10, Stdev: 0.3}
	b := Uncertain{Value: 4, Stdev: 0.4}
	got := a.Sub(b)
	assert.InDelta(t, 6, got.Value, 1e-12)
	assert.InDelta(t, 0.5, got.Stdev, 1e-12) // hypot(0.3, 0.4) = 0.5
}

func TestUncertainMulRescalesToAbsoluteStdev(t *testing.T) {
	a := Uncertain{Value: 4, Stdev: 1} // 25% relative error
	b := Uncertain{Value: 2, Stdev: 0} // exact
	got := a.Mul(b)
	assert.InDelta(t, 8, got.Value, 1e-12)
	assert.InDelta(t, 2, got.Stdev, 1e-12) // |4*2| * (1/4) = 2
}

func TestUncertainMultiplicativeIdentity(t *testing.T) {
	a := Uncertain{Value: 9, Stdev: 0.2}
	one := Exact(1)
	got := a.Mul(one)
	assert.InDelta(t, a.Value, got.Value, 1e-12)
	assert.InDelta(t, a.Stdev, got.Stdev, 1e-12)
}

func TestUncertainInvMatchesSourceFormula(t *testing.T) {
	a := Uncertain{Value: 5, Stdev: 0.5}
	got := a.Inv()
	assert.InDelta(t, 0.2, got.Value, 1e-12)
	assert.InDelta(t, math.Abs(0.5/(5*5)), got.Stdev, 1e-12)
}

func TestUncertainDivIsMulOfInv(t *testing.T) {
	a := Uncertain{Value: 10, Stdev: 1}
	b := Uncertain{Value: 5, Stdev: 0}
	got := a.Div(b)
	want := a.Mul(b.Inv())
	assert.InDelta(t, want.Value, got.Value, 1e-12)
	assert.InDelta(t, want.Stdev, got.Stdev, 1e-12)
}

func TestUncertainScaleIsMulByExact(t *testing.T) {
	a := Uncertain{Value: 3, Stdev: 0.6}
	got := a.Scale(2)
	assert.InDelta(t, 6, got.Value, 1e-12)
	assert.InDelta(t, 1.2, got.Stdev, 1e-12)
}
