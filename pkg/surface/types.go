package surface

import (
	"fmt"
	"strings"

	"github.com/matzehuels/ribbonpack/pkg/ribbon"
)

// Geometry selects the model space of the packing.
type Geometry int

const (
	Euclidean Geometry = iota
	Hyperbolic
)

func (g Geometry) String() string {
	if g == Hyperbolic {
		return "hyperbolic"
	}
	return "euclidean"
}

// ParseGeometry converts a name to a Geometry. Matching is case-insensitive.
func ParseGeometry(s string) (Geometry, error) {
	switch strings.ToLower(s) {
	case "", "euclidean":
		return Euclidean, nil
	case "hyperbolic":
		return Hyperbolic, nil
	}
	return Euclidean, fmt.Errorf("unknown geometry %q", s)
}

// BoundaryCondition selects how the outer boundary is constrained.
type BoundaryCondition int

const (
	Neumann BoundaryCondition = iota
	Dirichlet
	Cauchy
)

func (b BoundaryCondition) String() string {
	switch b {
	case Dirichlet:
		return "dirichlet"
	case Cauchy:
		return "cauchy"
	default:
		return "neumann"
	}
}

// ParseBoundaryCondition converts a name to a BoundaryCondition.
// Matching is case-insensitive.
func ParseBoundaryCondition(s string) (BoundaryCondition, error) {
	switch strings.ToLower(s) {
	case "", "neumann":
		return Neumann, nil
	case "dirichlet":
		return Dirichlet, nil
	case "cauchy":
		return Cauchy, nil
	}
	return Neumann, fmt.Errorf("unknown boundary condition %q", s)
}

// Role classifies a circle.
type Role int

const (
	Corner Role = iota
	BoundaryVertex
	InteriorVertex
	BoundaryEdge
	InteriorEdge
	Face
)

var roleNames = [...]string{"corner", "boundary-vertex", "interior-vertex", "boundary-edge", "interior-edge", "face"}

// Roles lists every role in circle order.
var Roles = []Role{Corner, BoundaryVertex, InteriorVertex, BoundaryEdge, InteriorEdge, Face}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleNames[r]
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// IsVertex reports whether the role belongs to a vertex circle.
func (r Role) IsVertex() bool { return r <= InteriorVertex }

// IsEdge reports whether the role belongs to an edge circle.
func (r Role) IsEdge() bool { return r == BoundaryEdge || r == InteriorEdge }

// Circle is one circle of the packing. Circles are immutable once built.
//
// Boundary marks a circle whose radius is prescribed rather than solved
// for. The Neumann condition prescribes no radii, so it is always false
// for the surfaces [New] accepts today; the solver then fixes only the
// anchor. Dirichlet and Cauchy surfaces would set it on the rim.
type Circle struct {
	Index    int           // Position in the surface's circle list
	Role     Role          // Classification
	Angle    float64       // Target cone angle in radians
	Boundary bool          // Radius prescribed, held fixed by the solver
	Darts    []ribbon.Dart // The orbit the circle stands for
}

// Triangle ties a vertex circle, an edge circle and a face circle that
// meet at a dart. Positive is false for the mirror triangle built from the
// paired dart.
type Triangle struct {
	V, E, F  int
	Positive bool
}

// Circles returns the three circle indices in V, E, F order.
func (t Triangle) Circles() [3]int { return [3]int{t.V, t.E, t.F} }

// Contains reports whether circle c is a corner of the triangle.
func (t Triangle) Contains(c int) bool { return t.V == c || t.E == c || t.F == c }
