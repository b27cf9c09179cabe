package surface

import (
	"fmt"
	"math"

	perrors "github.com/matzehuels/ribbonpack/pkg/errors"
	"github.com/matzehuels/ribbonpack/pkg/ribbon"
)

var (
	// ErrNotClosed is returned by [New] when some dart of the map is unpaired.
	ErrNotClosed = perrors.New(perrors.ErrCodeNotClosed, "map is not closed")

	// ErrNotAFace is returned by [New] when the outer darts are not exactly
	// one face orbit.
	ErrNotAFace = perrors.New(perrors.ErrCodeNotAFace, "outer darts are not a face")

	// ErrUnsupportedBoundaryCondition is returned for Dirichlet and Cauchy.
	ErrUnsupportedBoundaryCondition = perrors.New(perrors.ErrCodeUnsupportedBoundaryCondition, "unsupported boundary condition")

	// ErrUnsupportedGeometry is returned for hyperbolic geometry.
	ErrUnsupportedGeometry = perrors.New(perrors.ErrCodeUnsupportedGeometry, "unsupported geometry")

	// ErrInconsistentCircles is returned when a dart outside the outer face
	// does not lie in exactly one vertex, edge and face circle.
	ErrInconsistentCircles = perrors.New(perrors.ErrCodeInconsistentCircles, "inconsistent circle assignment")

	// ErrNonOrientable is returned by [Surface.Genus] for an odd Euler
	// characteristic, which no closed orientable surface has.
	ErrNonOrientable = perrors.New(perrors.ErrCodeNonOrientable, "odd Euler characteristic")
)

// Option configures [New].
type Option func(*Surface)

// WithGeometry sets the geometry. The default is Euclidean.
func WithGeometry(g Geometry) Option { return func(s *Surface) { s.geometry = g } }

// WithBoundaryCondition sets the boundary condition. The default is Neumann.
func WithBoundaryCondition(b BoundaryCondition) Option {
	return func(s *Surface) { s.boundary = b }
}

// WithName attaches a display name.
func WithName(name string) Option { return func(s *Surface) { s.name = name } }

// Surface is a closed map with a distinguished outer face, classified into
// circles and triangles. It keeps its own copy of the map and is read-only
// after construction.
type Surface struct {
	m        *ribbon.Map
	outer    []ribbon.Dart
	geometry Geometry
	boundary BoundaryCondition
	name     string

	vertices [][]ribbon.Dart
	edges    [][]ribbon.Dart
	faces    [][]ribbon.Dart

	circles   []Circle
	vertexOf  []int // dart -> vertex circle
	edgeOf    []int // dart -> edge circle
	faceOf    []int // dart -> face circle, -1 on the outer face
	triangles []Triangle
}

// New validates m and outer and classifies the surface.
func New(m *ribbon.Map, outer []ribbon.Dart, opts ...Option) (*Surface, error) {
	s := &Surface{}
	for _, opt := range opts {
		opt(s)
	}

	if s.geometry != Euclidean {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGeometry, s.geometry)
	}
	if s.boundary != Neumann {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBoundaryCondition, s.boundary)
	}
	if !m.IsClosed() {
		return nil, ErrNotClosed
	}

	s.m, _ = m.Copy()
	s.vertices = s.m.Vertices()
	s.edges = s.m.Edges()
	s.faces = s.m.Faces()

	outerFace, err := s.findOuter(outer)
	if err != nil {
		return nil, err
	}
	s.outer = append([]ribbon.Dart(nil), outer...)

	s.classify(outerFace)
	if err := s.buildTriangles(); err != nil {
		return nil, err
	}
	return s, nil
}

// findOuter returns the index of the face orbit equal to outer as a set.
func (s *Surface) findOuter(outer []ribbon.Dart) (int, error) {
	if len(outer) == 0 {
		return -1, fmt.Errorf("%w: empty outer face", ErrNotAFace)
	}
	n := s.m.Len()
	idx := ribbon.OrbitIndex(n, s.faces)
	seen := make(map[ribbon.Dart]bool, len(outer))
	for _, x := range outer {
		if int(x) < 0 || int(x) >= n {
			return -1, fmt.Errorf("%w: dart %d out of range", ErrNotAFace, x)
		}
		if seen[x] {
			return -1, fmt.Errorf("%w: dart %d listed twice", ErrNotAFace, x)
		}
		seen[x] = true
	}
	f := idx[outer[0]]
	for _, x := range outer {
		if idx[x] != f {
			return -1, fmt.Errorf("%w: darts %d and %d lie on different faces", ErrNotAFace, outer[0], x)
		}
	}
	if len(s.faces[f]) != len(outer) {
		return -1, fmt.Errorf("%w: face has %d darts, %d given", ErrNotAFace, len(s.faces[f]), len(outer))
	}
	return f, nil
}

func (s *Surface) classify(outerFace int) {
	n := s.m.Len()
	inBoundary := make([]bool, n)
	for _, x := range s.outer {
		inBoundary[x] = true
		inBoundary[s.m.E(x)] = true
	}

	var corners, bdVertices, inVertices [][]ribbon.Dart
	for _, v := range s.vertices {
		out := false
		for _, x := range v {
			if inBoundary[x] {
				out = true
				break
			}
		}
		switch {
		case out && len(v) == 2:
			corners = append(corners, v)
		case out:
			bdVertices = append(bdVertices, v)
		default:
			inVertices = append(inVertices, v)
		}
	}

	var bdEdges, inEdges [][]ribbon.Dart
	for _, e := range s.edges {
		all := true
		for _, x := range e {
			if !inBoundary[x] {
				all = false
				break
			}
		}
		if all {
			bdEdges = append(bdEdges, e)
		} else {
			inEdges = append(inEdges, e)
		}
	}

	cornerAngle := 0.0
	if c := len(corners); c > 0 {
		cornerAngle = (1 - 2/float64(c)) * math.Pi
	}

	s.vertexOf = make([]int, n)
	s.edgeOf = make([]int, n)
	s.faceOf = make([]int, n)
	for i := range s.faceOf {
		s.vertexOf[i], s.edgeOf[i], s.faceOf[i] = -1, -1, -1
	}

	add := func(orbits [][]ribbon.Dart, role Role, angle float64, of []int) {
		for _, o := range orbits {
			c := Circle{Index: len(s.circles), Role: role, Angle: angle, Darts: o}
			for _, x := range o {
				of[x] = c.Index
			}
			s.circles = append(s.circles, c)
		}
	}
	add(corners, Corner, cornerAngle, s.vertexOf)
	add(bdVertices, BoundaryVertex, math.Pi, s.vertexOf)
	add(inVertices, InteriorVertex, 2*math.Pi, s.vertexOf)
	add(bdEdges, BoundaryEdge, math.Pi, s.edgeOf)
	add(inEdges, InteriorEdge, 2*math.Pi, s.edgeOf)

	var faces [][]ribbon.Dart
	for i, f := range s.faces {
		if i != outerFace {
			faces = append(faces, f)
		}
	}
	add(faces, Face, 2*math.Pi, s.faceOf)
}

func (s *Surface) buildTriangles() error {
	var pos, neg []Triangle
	for x := range s.faceOf {
		f := s.faceOf[x]
		if f < 0 {
			continue
		}
		a := ribbon.Dart(x)
		b := s.m.E(a)
		v, e, w := s.vertexOf[a], s.edgeOf[a], s.vertexOf[b]
		if v < 0 || e < 0 || w < 0 || s.edgeOf[b] != e {
			return fmt.Errorf("%w: dart %d", ErrInconsistentCircles, a)
		}
		pos = append(pos, Triangle{V: v, E: e, F: f, Positive: true})
		neg = append(neg, Triangle{V: w, E: e, F: f, Positive: false})
	}
	s.triangles = append(pos, neg...)
	return nil
}

// Map returns the surface's own copy of the map. Callers must not modify it.
func (s *Surface) Map() *ribbon.Map { return s.m }

// Outer returns a copy of the outer face.
func (s *Surface) Outer() []ribbon.Dart { return append([]ribbon.Dart(nil), s.outer...) }

// Name returns the display name, if any.
func (s *Surface) Name() string { return s.name }

// Geometry returns the configured geometry.
func (s *Surface) Geometry() Geometry { return s.geometry }

// BoundaryCondition returns the configured boundary condition.
func (s *Surface) BoundaryCondition() BoundaryCondition { return s.boundary }

// Circles returns the circles in classification order. The slice is shared;
// callers must not modify it.
func (s *Surface) Circles() []Circle { return s.circles }

// Circle returns circle i.
func (s *Surface) Circle(i int) Circle { return s.circles[i] }

// Anchor returns the index of the circle whose radius is held fixed.
func (s *Surface) Anchor() int { return 0 }

// Triangles returns the oriented triangles: first the positive triangle of
// every non-outer dart, then the negative ones. The slice is shared.
func (s *Surface) Triangles() []Triangle { return s.triangles }

// VertexCircle returns the index of the vertex circle containing x.
func (s *Surface) VertexCircle(x ribbon.Dart) int { return s.vertexOf[x] }

// EdgeCircle returns the index of the edge circle containing x.
func (s *Surface) EdgeCircle(x ribbon.Dart) int { return s.edgeOf[x] }

// FaceCircle returns the index of the face circle containing x, or -1 for
// darts of the outer face.
func (s *Surface) FaceCircle(x ribbon.Dart) int { return s.faceOf[x] }

// Vertices returns the vertex orbits.
func (s *Surface) Vertices() [][]ribbon.Dart { return s.vertices }

// Edges returns the edge orbits.
func (s *Surface) Edges() [][]ribbon.Dart { return s.edges }

// Faces returns the face orbits, including the outer face.
func (s *Surface) Faces() [][]ribbon.Dart { return s.faces }

// RoleCounts returns how many circles have each role.
func (s *Surface) RoleCounts() map[Role]int {
	counts := make(map[Role]int, len(Roles))
	for _, c := range s.circles {
		counts[c.Role]++
	}
	return counts
}

// EulerCharacteristic returns V - E + F of the closed map.
func (s *Surface) EulerCharacteristic() int {
	return len(s.vertices) - len(s.edges) + len(s.faces)
}

// Genus returns the genus of the surface, (2 - χ)/2.
func (s *Surface) Genus() (int, error) {
	return genusFromEuler(s.EulerCharacteristic())
}

func genusFromEuler(chi int) (int, error) {
	if chi%2 != 0 {
		return 0, fmt.Errorf("%w: χ = %d", ErrNonOrientable, chi)
	}
	return (2 - chi) / 2, nil
}

// HasTadpole reports whether some face contains both a dart and its pair.
// Such a diagram cannot be laid out; check before packing.
func (s *Surface) HasTadpole() bool {
	idx := ribbon.OrbitIndex(s.m.Len(), s.faces)
	for x := range idx {
		if idx[x] == idx[s.m.E(ribbon.Dart(x))] {
			return true
		}
	}
	return false
}
