package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxExpressionLength bounds an expression accepted from the command line
// or an API request.
const MaxExpressionLength = 4096

const maxExampleName = 64

// MaxDarts bounds the size of any map built from an expression, document
// or example. Packing is quadratic in the number of darts.
const MaxDarts = 20000

// MaxTreeSize bounds the number of trivalent vertices of tree(n, i).
const MaxTreeSize = 30

var exampleName = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ValidateExpression rejects blank, oversized and control-character input
// before it reaches the parser, which reports grammar errors itself.
func ValidateExpression(src string) error {
	switch {
	case strings.TrimSpace(src) == "":
		return New(ErrCodeInvalidExpression, "expression cannot be empty")
	case len(src) > MaxExpressionLength:
		return New(ErrCodeInvalidExpression, "expression too long (max %d characters)", MaxExpressionLength)
	case strings.IndexFunc(src, isStrayControl) >= 0:
		return New(ErrCodeInvalidExpression, "expression contains control characters")
	}
	return nil
}

// isStrayControl reports control characters other than line breaks and tabs.
func isStrayControl(r rune) bool {
	return unicode.IsControl(r) && !strings.ContainsRune("\n\r\t", r)
}

// ValidateExampleName checks a catalog name: lower case, starting with a
// letter, at most 64 bytes.
func ValidateExampleName(name string) error {
	switch {
	case name == "":
		return New(ErrCodeInvalidInput, "example name cannot be empty")
	case len(name) > maxExampleName:
		return New(ErrCodeInvalidInput, "example name too long (max %d characters)", maxExampleName)
	case !exampleName.MatchString(name):
		return New(ErrCodeInvalidInput, "invalid example name: %q", name)
	}
	return nil
}

// ValidateBoundaryVector checks a boundary valence vector on its own: at
// least three corners, none negative. Its sum is checked against the map
// during closure.
func ValidateBoundaryVector(bv []int) error {
	if len(bv) < 3 {
		return New(ErrCodeInvalidBoundaryVector, "need at least 3 corners, got %d", len(bv))
	}
	for i, v := range bv {
		if v < 0 {
			return New(ErrCodeInvalidBoundaryVector, "entry %d is negative (%d)", i, v)
		}
	}
	return nil
}

// ValidateDarts checks that something needing per darts for each of n units
// stays within [MaxDarts].
func ValidateDarts(what string, n, per int) error {
	if per < 1 {
		per = 1
	}
	if n > MaxDarts/per {
		return New(ErrCodeInvalidInput, "%s needs more than %d darts", what, MaxDarts)
	}
	return nil
}

// ValidateTreeSize checks the vertex count of a binary tree.
func ValidateTreeSize(n int) error {
	switch {
	case n < 0:
		return New(ErrCodeInvalidInput, "tree size cannot be negative, got %d", n)
	case n > MaxTreeSize:
		return New(ErrCodeInvalidInput, "tree size %d too large (max %d)", n, MaxTreeSize)
	}
	return nil
}
