package odr2gml

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeContains(t *testing.T) {
	closedOpen := NewRangeClosedOpen(0, 10)
	assert.True(t, closedOpen.Contains(0))
	assert.True(t, closedOpen.Contains(9.999999))
	assert.False(t, closedOpen.Contains(10))
	assert.False(t, closedOpen.Contains(-0.0001))

	closed := NewRangeClosed(0, 10)
	assert.True(t, closed.Contains(10))

	atLeast := NewRangeAtLeast(5)
	assert.True(t, atLeast.Contains(math.MaxFloat64))
	assert.False(t, atLeast.Contains(4.9))

	all := NewRangeAll()
	assert.True(t, all.Contains(-math.MaxFloat64))
}

func TestRangeFuzzyContains(t *testing.T) {
	r := NewRangeClosedOpen(0, 10)
	assert.True(t, r.FuzzyContains(10, DefaultTolerance))
	assert.True(t, r.FuzzyContains(10+0.5e-7, DefaultTolerance))
	assert.False(t, r.FuzzyContains(10.001, DefaultTolerance))
	assert.True(t, r.FuzzyContains(-0.5e-7, DefaultTolerance))
}

func TestRangeLength(t *testing.T) {
	assert.Equal(t, 10.0, NewRangeClosedOpen(5, 15).Length())
	assert.True(t, math.IsInf(NewRangeAtLeast(5).Length(), 1))
}

func TestRangeIntersection(t *testing.T) {
	a := NewRangeClosed(0, 10)
	b := NewRangeClosed(5, 20)
	intersection, ok := a.Intersection(b)
	require.True(t, ok)
	assert.Equal(t, 5.0, intersection.Lower())
	assert.Equal(t, 10.0, intersection.Upper())

	c := NewRangeClosed(11, 20)
	_, ok = a.Intersection(c)
	assert.False(t, ok)

	// touching ranges with an open side do not intersect
	d := NewRangeClosedOpen(0, 5)
	e := NewRangeClosedOpen(5, 10)
	_, ok = d.Intersection(e)
	assert.False(t, ok)

	// touching closed ranges intersect in a single point
	intersection, ok = NewRangeClosed(0, 5).Intersection(NewRangeClosed(5, 10))
	require.True(t, ok)
	assert.Equal(t, 5.0, intersection.Lower())
	assert.Equal(t, 5.0, intersection.Upper())

	// unbounded range passes the other range through
	intersection, ok = NewRangeAll().Intersection(a)
	require.True(t, ok)
	assert.Equal(t, 0.0, intersection.Lower())
	assert.Equal(t, 10.0, intersection.Upper())
}

func TestRangeContainsRange(t *testing.T) {
	outer := NewRangeClosed(0, 100)
	assert.True(t, outer.ContainsRange(NewRangeClosed(0, 100)))
	assert.True(t, outer.ContainsRange(NewRangeClosedOpen(20, 80)))
	assert.False(t, outer.ContainsRange(NewRangeClosed(20, 101)))
	assert.False(t, outer.ContainsRange(NewRangeAtLeast(20)))
	assert.True(t, NewRangeAll().ContainsRange(NewRangeAtLeast(20)))
}

func TestRangeClamp(t *testing.T) {
	r := NewRangeClosed(0, 10)
	assert.Equal(t, 0.0, r.Clamp(-5))
	assert.Equal(t, 10.0, r.Clamp(15))
	assert.Equal(t, 7.5, r.Clamp(7.5))
}
