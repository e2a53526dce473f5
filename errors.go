package odr2gml

import (
	"errors"
	"fmt"
)

// OutOfDomainError occurs when a function is evaluated outside of its
// (possibly fuzzy extended) domain
type OutOfDomainError struct {
	X      float64
	Domain Range
}

func (e *OutOfDomainError) Error() string {
	return fmt.Sprintf("value %f is out of domain %s", e.X, e.Domain)
}

// NotFoundError occurs when an identifier lookup against the road-space model fails
type NotFoundError struct {
	What string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.What, e.ID)
}

// IllegalStateError occurs when a constructor invariant is violated
type IllegalStateError struct {
	Reason string
}

func (e *IllegalStateError) Error() string {
	return e.Reason
}

// GeometryError occurs on degenerate geometry or failed sampling
type GeometryError struct {
	Reason string
}

func (e *GeometryError) Error() string {
	return e.Reason
}

// IsOutOfDomain checks if given error is caused by an out-of-domain evaluation
func IsOutOfDomain(err error) bool {
	var target *OutOfDomainError
	return errors.As(err, &target)
}

// IsNotFound checks if given error is caused by a failed identifier lookup
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsIllegalState checks if given error is caused by a violated invariant
func IsIllegalState(err error) bool {
	var target *IllegalStateError
	return errors.As(err, &target)
}

// IsGeometry checks if given error is caused by degenerate geometry
func IsGeometry(err error) bool {
	var target *GeometryError
	return errors.As(err, &target)
}

func newOutOfDomain(x float64, domain Range) error {
	return &OutOfDomainError{X: x, Domain: domain}
}

func newIllegalState(format string, args ...interface{}) error {
	return &IllegalStateError{Reason: fmt.Sprintf(format, args...)}
}

func newGeometry(format string, args ...interface{}) error {
	return &GeometryError{Reason: fmt.Sprintf(format, args...)}
}
