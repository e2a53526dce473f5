package odr2gml

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// concatenationMember is a local function placed at an absolute start
// coordinate. The member covers the absolute interval obtained by shifting
// its local domain by the start.
type concatenationMember struct {
	start float64
	fn    UnivariateFunction
}

func (m concatenationMember) absoluteLower() float64 {
	return m.start + m.fn.Domain().Lower()
}

func (m concatenationMember) absoluteUpper() float64 {
	return m.start + m.fn.Domain().Upper()
}

// ConcatenatedFunction is a univariate function backed by an ordered sequence
// of member functions tiling a contiguous domain. Evaluation translates the
// global position into the selected member's local coordinate and delegates.
type ConcatenatedFunction struct {
	members []concatenationMember
	domain  Range
}

// NewConcatenatedFunction arranges given member functions end-to-end starting
// at given absolute origin. Every member domain must have a finite lower
// endpoint; every member but the last must also have a finite upper endpoint.
func NewConcatenatedFunction(fns []UnivariateFunction, origin float64) (*ConcatenatedFunction, error) {
	if len(fns) == 0 {
		return nil, newIllegalState("concatenation of zero functions")
	}
	members := make([]concatenationMember, 0, len(fns))
	cursor := origin
	for i, fn := range fns {
		domain := fn.Domain()
		if !domain.HasLowerBound() {
			return nil, newIllegalState("member %d has an unbounded lower domain endpoint", i)
		}
		if i != len(fns)-1 && !domain.HasUpperBound() {
			return nil, newIllegalState("member %d has an unbounded upper domain endpoint but is not the last member", i)
		}
		members = append(members, concatenationMember{start: cursor - domain.Lower(), fn: fn})
		cursor += domain.Length()
	}
	return newConcatenatedFunction(members)
}

func newConcatenatedFunction(members []concatenationMember) (*ConcatenatedFunction, error) {
	if len(members) == 0 {
		return nil, newIllegalState("concatenation of zero functions")
	}
	first := members[0]
	last := members[len(members)-1]
	domain := NewRange(
		first.absoluteLower(), first.fn.Domain().LowerType(),
		last.absoluteUpper(), last.fn.Domain().UpperType())
	return &ConcatenatedFunction{members: members, domain: domain}, nil
}

// NewConcatenatedPolynomials builds a concatenated function out of cubic (or
// any degree) polynomials placed at strictly ascending start positions. The
// length of each member is the difference to the next start; the last member
// is unbounded. Members with length zero are dropped and reported. When
// prependConstant is provided, a constant valued prefix on (-inf, starts[0])
// is added, so the function is defined before the first entry.
func NewConcatenatedPolynomials(starts []float64, coefficients [][]float64, prependConstant *float64) (*ConcatenatedFunction, []string, error) {
	if len(starts) == 0 {
		return nil, nil, newIllegalState("no polynomial entries given")
	}
	if len(starts) != len(coefficients) {
		return nil, nil, newIllegalState("number of starts (%d) does not match number of coefficient sets (%d)", len(starts), len(coefficients))
	}
	for i := 1; i < len(starts); i++ {
		if starts[i-1] >= starts[i] {
			return nil, nil, newIllegalState("start positions are not in strict ascending order: %f >= %f", starts[i-1], starts[i])
		}
	}

	var messages []string
	members := make([]concatenationMember, 0, len(starts)+1)
	if prependConstant != nil {
		prefix := NewConstantFunction(*prependConstant, NewRangeLessThan(0))
		members = append(members, concatenationMember{start: starts[0], fn: prefix})
	}
	for i := range starts {
		length := math.Inf(1)
		if i != len(starts)-1 {
			length = starts[i+1] - starts[i]
		}
		if length == 0 {
			messages = append(messages, fmt.Sprintf("Removing zero length function at start position %f", starts[i]))
			continue
		}
		members = append(members, concatenationMember{start: starts[i], fn: NewPolynomialFunction(coefficients[i], length)})
	}

	fn, err := newConcatenatedFunction(members)
	if err != nil {
		return nil, nil, errors.Wrap(err, "Can't concatenate polynomial functions")
	}
	return fn, messages, nil
}

// NewConcatenatedLinears builds a concatenated function out of linear
// members placed at strictly ascending start positions. Missing slopes
// default to zero, which yields a step function over the intercepts.
func NewConcatenatedLinears(starts []float64, intercepts []float64, slopes []float64) (*ConcatenatedFunction, error) {
	if len(starts) == 0 {
		return nil, newIllegalState("no linear entries given")
	}
	if len(starts) != len(intercepts) {
		return nil, newIllegalState("number of starts (%d) does not match number of intercepts (%d)", len(starts), len(intercepts))
	}
	if slopes == nil {
		slopes = make([]float64, len(starts))
	}
	if len(starts) != len(slopes) {
		return nil, newIllegalState("number of starts (%d) does not match number of slopes (%d)", len(starts), len(slopes))
	}
	for i := 1; i < len(starts); i++ {
		if starts[i-1] >= starts[i] {
			return nil, newIllegalState("start positions are not in strict ascending order: %f >= %f", starts[i-1], starts[i])
		}
	}

	members := make([]concatenationMember, 0, len(starts))
	for i := range starts {
		domain := NewRangeAtLeast(0)
		if i != len(starts)-1 {
			domain = NewRangeClosedOpen(0, starts[i+1]-starts[i])
		}
		members = append(members, concatenationMember{start: starts[i], fn: NewLinearFunction(slopes[i], intercepts[i], domain)})
	}
	return newConcatenatedFunction(members)
}

// Domain returns the range of arguments the function is defined on
func (cf *ConcatenatedFunction) Domain() Range {
	return cf.domain
}

// strictSelectMember returns the unique member whose absolute domain contains
// given position
func (cf *ConcatenatedFunction) strictSelectMember(x float64) (int, error) {
	for i, member := range cf.members {
		if member.fn.Domain().Contains(x - member.start) {
			return i, nil
		}
	}
	return 0, newOutOfDomain(x, cf.domain)
}

// fuzzySelectMember returns the member responsible for given position. A
// position within tolerance of an internal boundary resolves to the member
// starting at that boundary; within tolerance of the outer endpoints to the
// first respectively last member; anywhere else selection is strict.
func (cf *ConcatenatedFunction) fuzzySelectMember(x, tolerance float64) (int, error) {
	for i := 1; i < len(cf.members); i++ {
		if fuzzyEquals(x, cf.members[i].absoluteLower(), tolerance) {
			return i, nil
		}
	}
	if cf.domain.HasLowerBound() && fuzzyEquals(x, cf.domain.Lower(), tolerance) {
		return 0, nil
	}
	if cf.domain.HasUpperBound() && fuzzyEquals(x, cf.domain.Upper(), tolerance) {
		return len(cf.members) - 1, nil
	}
	return cf.strictSelectMember(x)
}

// Value evaluates the function at given position
func (cf *ConcatenatedFunction) Value(x float64) (float64, error) {
	i, err := cf.strictSelectMember(x)
	if err != nil {
		return 0, err
	}
	member := cf.members[i]
	return member.fn.Value(x - member.start)
}

// Slope evaluates the first derivative at given position
func (cf *ConcatenatedFunction) Slope(x float64) (float64, error) {
	i, err := cf.strictSelectMember(x)
	if err != nil {
		return 0, err
	}
	member := cf.members[i]
	return member.fn.Slope(x - member.start)
}

// ValueFuzzy evaluates the function accepting positions within given
// tolerance of the domain endpoints and of internal member boundaries.
// Positions slightly outside the domain or a member domain are clamped onto
// the nearest contained coordinate.
func (cf *ConcatenatedFunction) ValueFuzzy(x, tolerance float64) (float64, error) {
	if !cf.domain.FuzzyContains(x, tolerance) {
		return 0, newOutOfDomain(x, cf.domain)
	}
	clamped := cf.domain.Clamp(x)
	i, err := cf.fuzzySelectMember(clamped, tolerance)
	if err != nil {
		return 0, err
	}
	member := cf.members[i]
	return member.fn.ValueFuzzy(clamped-member.start, tolerance)
}
