package odr2gml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcatenatedPolynomialsWithPrefix(t *testing.T) {
	zero := 0.0
	fn, messages, err := NewConcatenatedPolynomials(
		[]float64{20, 50},
		[][]float64{{1, 0.5}, {2}},
		&zero)
	require.NoError(t, err)
	assert.Empty(t, messages)

	// before the first entry the prepended constant applies
	for _, x := range []float64{-100, 0, 19.9} {
		v, err := fn.Value(x)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, v, DefaultTolerance)
	}

	// first member evaluates in local coordinates
	v, err := fn.Value(30)
	require.NoError(t, err)
	assert.InDelta(t, 1+0.5*10, v, DefaultTolerance)

	// last member is unbounded
	v, err = fn.Value(1e6)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, v, DefaultTolerance)
}

func TestConcatenatedPolynomialsContinuity(t *testing.T) {
	// members agree at the internal boundary: f1(10) = 1 + 10 = 11 = f2(0)
	fn, _, err := NewConcatenatedPolynomials(
		[]float64{0, 10},
		[][]float64{{1, 1}, {11, -1}},
		nil)
	require.NoError(t, err)

	below, err := fn.Value(10 - 1e-9)
	require.NoError(t, err)
	above, err := fn.Value(10)
	require.NoError(t, err)
	assert.InDelta(t, below, above, 1e-6)
}

func TestConcatenatedPolynomialsRejectsUnsortedStarts(t *testing.T) {
	_, _, err := NewConcatenatedPolynomials(
		[]float64{10, 10},
		[][]float64{{1}, {2}},
		nil)
	require.Error(t, err)
	assert.True(t, IsIllegalState(err))
}

func TestConcatenatedFunctionFuzzyMemberSelection(t *testing.T) {
	fn, _, err := NewConcatenatedPolynomials(
		[]float64{0, 10, 20},
		[][]float64{{1}, {2}, {3}},
		nil)
	require.NoError(t, err)

	// all positions within tolerance of the boundary resolve to the same member
	tolerance := 1e-4
	for _, delta := range []float64{-0.5e-4, 0, 0.5e-4} {
		v, err := fn.ValueFuzzy(10+delta, tolerance)
		require.NoError(t, err)
		assert.Equal(t, 2.0, v)
	}

	// strict evaluation splits at the boundary instead
	v, err := fn.Value(10 - 1e-9)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
	v, err = fn.Value(10)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
}

func TestConcatenatedFunctionOutOfDomain(t *testing.T) {
	fn, _, err := NewConcatenatedPolynomials(
		[]float64{0, 10},
		[][]float64{{1}, {2}},
		nil)
	require.NoError(t, err)

	_, err = fn.Value(-0.001)
	assert.True(t, IsOutOfDomain(err))

	// the fuzzy evaluation accepts the lower endpoint neighbourhood
	v, err := fn.ValueFuzzy(-0.5e-7, DefaultTolerance)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestConcatenatedValueFuzzyClampsToTheDomain(t *testing.T) {
	fn, err := NewConcatenatedFunction([]UnivariateFunction{
		NewLinearFunction(1, 0, NewRangeClosedOpen(0, 10)),
		NewLinearFunction(2, 0, NewRangeClosed(0, 10)),
	}, 0)
	require.NoError(t, err)

	// past the upper endpoint the boundary value applies, not an extrapolation
	v, err := fn.ValueFuzzy(20.4, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 20.0, v)

	// before the lower endpoint the first member's start value applies
	v, err = fn.ValueFuzzy(-0.4, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	_, err = fn.ValueFuzzy(21, 0.5)
	assert.True(t, IsOutOfDomain(err))
}

func TestConcatenatedLinears(t *testing.T) {
	fn, err := NewConcatenatedLinears([]float64{0, 10, 20}, []float64{1, 2, 3}, nil)
	require.NoError(t, err)

	// zero slopes yield a step function over the intercepts
	v, err := fn.Value(5)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
	v, err = fn.Value(15)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
	v, err = fn.Value(1e9)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	withSlopes, err := NewConcatenatedLinears([]float64{0, 10}, []float64{0, 5}, []float64{0.5, 0})
	require.NoError(t, err)
	v, err = withSlopes.Value(4)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, v, DefaultTolerance)
}

func TestConcatenatedFunctionOfFunctions(t *testing.T) {
	fn, err := NewConcatenatedFunction([]UnivariateFunction{
		NewConstantFunction(5, NewRangeClosedOpen(0, 10)),
		NewConstantFunction(7, NewRangeAtLeast(0)),
	}, 100)
	require.NoError(t, err)

	assert.Equal(t, 100.0, fn.Domain().Lower())

	v, err := fn.Value(105)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)
	v, err = fn.Value(110)
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)

	// an unbounded member in the middle can not tile
	_, err = NewConcatenatedFunction([]UnivariateFunction{
		NewConstantFunction(5, NewRangeAtLeast(0)),
		NewConstantFunction(7, NewRangeAtLeast(0)),
	}, 0)
	require.Error(t, err)
	assert.True(t, IsIllegalState(err))
}
