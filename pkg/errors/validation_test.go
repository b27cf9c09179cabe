package errors

import (
	"strings"
	"testing"
)

func TestValidateExpression(t *testing.T) {
	ok := []string{"polygon(5)", "closure(\n\tpolygon(5))", "glue(a, b)\r\n"}
	bad := []string{"", "   ", strings.Repeat("a", MaxExpressionLength+1), "polygon(5)\x00", "polygon\x01(5)"}

	for _, src := range ok {
		if err := ValidateExpression(src); err != nil {
			t.Errorf("ValidateExpression(%q) = %v", src, err)
		}
	}
	for _, src := range bad {
		err := ValidateExpression(src)
		if !Is(err, ErrCodeInvalidExpression) {
			t.Errorf("ValidateExpression(%.20q) = %v, want INVALID_EXPRESSION", src, err)
		}
	}
}

func TestValidateExampleName(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"pentagon", true},
		{"glued-vertices", true},
		{"tree-3", true},
		{"", false},
		{"Pentagon", false},
		{"3tree", false},
		{"two words", false},
		{strings.Repeat("a", 65), false},
	}
	for _, tt := range tests {
		if err := ValidateExampleName(tt.in); (err == nil) != tt.ok {
			t.Errorf("ValidateExampleName(%q) = %v", tt.in, err)
		}
	}
}

func TestValidateBoundaryVector(t *testing.T) {
	tests := []struct {
		bv []int
		ok bool
	}{
		{[]int{1, 1, 1}, true},
		{[]int{2, 0, 3, 0}, true},
		{nil, false},
		{[]int{2, 2}, false},
		{[]int{1, -1, 2}, false},
	}
	for _, tt := range tests {
		err := ValidateBoundaryVector(tt.bv)
		if (err == nil) != tt.ok {
			t.Errorf("ValidateBoundaryVector(%v) = %v", tt.bv, err)
		}
		if err != nil && GetCode(err) != ErrCodeInvalidBoundaryVector {
			t.Errorf("code = %s", GetCode(err))
		}
	}
}

func TestValidateDarts(t *testing.T) {
	tests := []struct {
		name   string
		n, per int
		ok     bool
	}{
		{"small", 5, 3, true},
		{"at limit", MaxDarts, 1, true},
		{"over limit", MaxDarts + 1, 1, false},
		{"polygon over limit", MaxDarts/3 + 1, 3, false},
		{"huge", 300000, 3, false},
		{"zero per", 10, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDarts("polygon", tt.n, tt.per)
			if tt.ok && err != nil {
				t.Errorf("ValidateDarts(%d, %d) = %v", tt.n, tt.per, err)
			}
			if !tt.ok && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateDarts(%d, %d) = %v, want INVALID_INPUT", tt.n, tt.per, err)
			}
		})
	}
}

func TestValidateTreeSize(t *testing.T) {
	for _, n := range []int{0, 1, 9, MaxTreeSize} {
		if err := ValidateTreeSize(n); err != nil {
			t.Errorf("ValidateTreeSize(%d) = %v", n, err)
		}
	}
	for _, n := range []int{-1, MaxTreeSize + 1, 1000} {
		if err := ValidateTreeSize(n); !Is(err, ErrCodeInvalidInput) {
			t.Errorf("ValidateTreeSize(%d) = %v, want INVALID_INPUT", n, err)
		}
	}
}
