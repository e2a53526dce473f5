package odr2gml

import (
	"math"
)

// PolynomialFunction represents f(x) = sum(coefficients[i] * x^i) on [0, length)
type PolynomialFunction struct {
	coefficients []float64
	domain       Range
}

// NewPolynomialFunction returns polynomial with given coefficients in
// ascending order of degree, defined on [0, length). Infinite length yields
// the domain [0, +inf).
func NewPolynomialFunction(coefficients []float64, length float64) *PolynomialFunction {
	domain := NewRangeAtLeast(0)
	if !math.IsInf(length, 1) {
		domain = NewRangeClosedOpen(0, length)
	}
	owned := make([]float64, len(coefficients))
	copy(owned, coefficients)
	return &PolynomialFunction{coefficients: owned, domain: domain}
}

// Domain returns the range of arguments the function is defined on
func (f *PolynomialFunction) Domain() Range {
	return f.domain
}

// evaluate computes the polynomial by Horner's scheme, ignoring the domain
func (f *PolynomialFunction) evaluate(x float64) float64 {
	result := 0.0
	for i := len(f.coefficients) - 1; i >= 0; i-- {
		result = result*x + f.coefficients[i]
	}
	return result
}

// evaluateSlope computes the first derivative by Horner's scheme, ignoring the domain
func (f *PolynomialFunction) evaluateSlope(x float64) float64 {
	result := 0.0
	for i := len(f.coefficients) - 1; i >= 1; i-- {
		result = result*x + float64(i)*f.coefficients[i]
	}
	return result
}

// Value evaluates the function at given position
func (f *PolynomialFunction) Value(x float64) (float64, error) {
	if !f.domain.Contains(x) {
		return 0, newOutOfDomain(x, f.domain)
	}
	return f.evaluate(x), nil
}

// Slope evaluates the first derivative at given position
func (f *PolynomialFunction) Slope(x float64) (float64, error) {
	if !f.domain.Contains(x) {
		return 0, newOutOfDomain(x, f.domain)
	}
	return f.evaluateSlope(x), nil
}

// ValueFuzzy evaluates the function accepting positions within given
// tolerance of the domain endpoints, clamping them onto the domain
func (f *PolynomialFunction) ValueFuzzy(x, tolerance float64) (float64, error) {
	if !f.domain.FuzzyContains(x, tolerance) {
		return 0, newOutOfDomain(x, f.domain)
	}
	return f.evaluate(f.domain.Clamp(x)), nil
}
