package odr2gml

import (
	"gonum.org/v1/gonum/floats/scalar"
)

// DefaultTolerance is used for fuzzy comparisons whenever the caller does not provide own tolerance
const DefaultTolerance = 1e-7

// fuzzyEquals checks if two values are equal within given tolerance
func fuzzyEquals(a, b, tolerance float64) bool {
	return scalar.EqualWithinAbs(a, b, tolerance)
}

// fuzzyLessThanOrEquals checks if a <= b allowing overshoot within given tolerance
func fuzzyLessThanOrEquals(a, b, tolerance float64) bool {
	return a <= b || scalar.EqualWithinAbs(a, b, tolerance)
}

// fuzzyMoreThanOrEquals checks if a >= b allowing undershoot within given tolerance
func fuzzyMoreThanOrEquals(a, b, tolerance float64) bool {
	return a >= b || scalar.EqualWithinAbs(a, b, tolerance)
}

// sign returns -1/0/+1 for given integer
func sign(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}
