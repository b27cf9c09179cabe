// Package errors gives every failure of the pipeline a [Code].
//
// Domain packages declare coded sentinels and wrap them with detail:
//
//	var ErrNotClosed = errors.New(errors.ErrCodeNotClosed, "map is not closed")
//	return fmt.Errorf("%w: dart %d is unpaired", ErrNotClosed, x)
//
// The CLI prints [UserMessage]; the API server answers with the code and
// [HTTPStatus]. Geometric precondition failures (an open map, a
// non-orientable surface, a diverging solver) are input problems and map
// to 422.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a stable, machine-readable failure class.
type Code string

const (
	// Map structure and surgery
	ErrCodeStructuralInvariant   Code = "STRUCTURAL_INVARIANT"
	ErrCodeIncompatibleBoundary  Code = "INCOMPATIBLE_BOUNDARY"
	ErrCodeInvalidBoundaryVector Code = "INVALID_BOUNDARY_VECTOR"
	ErrCodeNotClosed             Code = "NOT_CLOSED"

	// Surface classification
	ErrCodeNotAFace                     Code = "NOT_A_FACE"
	ErrCodeUnsupportedBoundaryCondition Code = "UNSUPPORTED_BOUNDARY_CONDITION"
	ErrCodeUnsupportedGeometry          Code = "UNSUPPORTED_GEOMETRY"
	ErrCodeInconsistentCircles          Code = "INCONSISTENT_CIRCLE_ASSIGNMENT"
	ErrCodeNonOrientable                Code = "NON_ORIENTABLE"

	// Solving and layout
	ErrCodeNonConvergent             Code = "NON_CONVERGENT"
	ErrCodeDisconnectedTriangulation Code = "DISCONNECTED_TRIANGULATION"
	ErrCodeDegenerateDiagram         Code = "DEGENERATE_DIAGRAM"

	// Requests
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidExpression Code = "INVALID_EXPRESSION"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidPath       Code = "INVALID_PATH"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeUpstream Code = "UPSTREAM_ERROR"

	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is [New] with a cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

func find(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// Is reports whether the first *Error in err's chain has code.
func Is(err error, code Code) bool {
	e := find(err)
	return e != nil && e.Code == code
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	if e := find(err); e != nil {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without its code prefix, or err.Error()
// for uncoded errors.
func UserMessage(err error) string {
	if e := find(err); e != nil {
		return e.Message
	}
	return err.Error()
}

var statuses = map[Code]int{
	ErrCodeInvalidInput:      http.StatusBadRequest,
	ErrCodeInvalidExpression: http.StatusBadRequest,
	ErrCodeInvalidFormat:     http.StatusBadRequest,
	ErrCodeInvalidPath:       http.StatusBadRequest,

	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeFileNotFound: http.StatusNotFound,

	ErrCodeTimeout:  http.StatusGatewayTimeout,
	ErrCodeUpstream: http.StatusBadGateway,

	ErrCodeUnsupported:                  http.StatusNotImplemented,
	ErrCodeUnsupportedBoundaryCondition: http.StatusNotImplemented,
	ErrCodeUnsupportedGeometry:          http.StatusNotImplemented,

	ErrCodeStructuralInvariant:       http.StatusUnprocessableEntity,
	ErrCodeIncompatibleBoundary:      http.StatusUnprocessableEntity,
	ErrCodeInvalidBoundaryVector:     http.StatusUnprocessableEntity,
	ErrCodeNotClosed:                 http.StatusUnprocessableEntity,
	ErrCodeNotAFace:                  http.StatusUnprocessableEntity,
	ErrCodeInconsistentCircles:       http.StatusUnprocessableEntity,
	ErrCodeNonOrientable:             http.StatusUnprocessableEntity,
	ErrCodeNonConvergent:             http.StatusUnprocessableEntity,
	ErrCodeDisconnectedTriangulation: http.StatusUnprocessableEntity,
	ErrCodeDegenerateDiagram:         http.StatusUnprocessableEntity,
}

// HTTPStatus maps err to the status the API answers with; uncoded errors
// and ErrCodeInternal give 500.
func HTTPStatus(err error) int {
	if st, ok := statuses[GetCode(err)]; ok {
		return st
	}
	return http.StatusInternalServerError
}
