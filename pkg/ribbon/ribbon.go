package ribbon

import (
	"fmt"

	perrors "github.com/matzehuels/ribbonpack/pkg/errors"
)

var (
	// ErrInvariant is returned by [New] when the supplied permutations do
	// not describe a combinatorial map: the rotation is not a bijection,
	// or the pairing is out of range, not involutive, or has a fixed point.
	ErrInvariant = perrors.New(perrors.ErrCodeStructuralInvariant, "structural invariant violated")

	// ErrIncompatibleBoundary is returned by [Map.Stitch] and [Join] when
	// the darts to be bridged are not both boundary darts, or their colours
	// or directions do not match.
	ErrIncompatibleBoundary = perrors.New(perrors.ErrCodeIncompatibleBoundary, "incompatible boundary")

	// ErrInvalidBoundaryVector is returned by [Map.Closure] when the
	// boundary valence vector does not fit the map's boundary.
	ErrInvalidBoundaryVector = perrors.New(perrors.ErrCodeInvalidBoundaryVector, "invalid boundary vector")

	// ErrNotClosed is returned by operations that need every dart paired,
	// such as [Map.Dual] and [Map.Subdivision].
	ErrNotClosed = perrors.New(perrors.ErrCodeNotClosed, "map is not closed")

	// ErrInvalidArgument is returned for out-of-range darts and sizes.
	ErrInvalidArgument = perrors.New(perrors.ErrCodeInvalidInput, "invalid argument")
)

// Dart is the index of a half-edge within its owning [Map].
type Dart int

// NoDart marks an undefined pairing.
const NoDart Dart = -1

// Direction tags the orientation of the strand a dart belongs to.
type Direction int

const (
	// Neither means the strand is unoriented.
	Neither Direction = iota
	// Head marks the incoming end of an oriented strand.
	Head
	// Tail marks the outgoing end of an oriented strand.
	Tail
)

// String returns the lower-case name of the direction.
func (d Direction) String() string {
	switch d {
	case Head:
		return "head"
	case Tail:
		return "tail"
	default:
		return "neither"
	}
}

// Switch returns the opposite end: Head and Tail swap, Neither is fixed.
func (d Direction) Switch() Direction {
	switch d {
	case Head:
		return Tail
	case Tail:
		return Head
	default:
		return Neither
	}
}

// ParseDirection converts "head", "tail" or "neither" (or "") to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "head":
		return Head, nil
	case "tail":
		return Tail, nil
	case "neither", "":
		return Neither, nil
	}
	return Neither, fmt.Errorf("%w: unknown direction %q", ErrInvalidArgument, s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Decoration is the payload carried by a dart.
type Decoration struct {
	Direction Direction `json:"direction" toml:"direction"`
	Colour    string    `json:"colour" toml:"colour"`
	Over      bool      `json:"over" toml:"over"`
}

// Default colours used by the constructors.
const (
	DefaultColour = "red"
	RimColour     = "black"
	MedialColour  = "none"
)

// Vanilla is the decoration given to darts created without one.
var Vanilla = Decoration{Direction: Neither, Colour: DefaultColour, Over: true}

// Map is a combinatorial map stored as an arena of darts.
//
// rot is the rotation c, pair the pairing e (NoDart where undefined),
// interior marks bookkeeping darts that Normalize may contract.
//
// The zero value is an empty map. Map is not safe for concurrent use.
type Map struct {
	rot      []Dart
	pair     []Dart
	deco     []Decoration
	interior []bool
}

// New builds a map from raw arrays and validates it. deco and interior may
// be nil, in which case every dart gets [Vanilla] and interior false.
// The slices are copied.
func New(rot, pair []Dart, deco []Decoration, interior []bool) (*Map, error) {
	n := len(rot)
	if len(pair) != n {
		return nil, fmt.Errorf("%w: %d rotation entries but %d pairing entries", ErrInvariant, n, len(pair))
	}
	if deco != nil && len(deco) != n {
		return nil, fmt.Errorf("%w: %d decorations for %d darts", ErrInvariant, len(deco), n)
	}
	if interior != nil && len(interior) != n {
		return nil, fmt.Errorf("%w: %d interior flags for %d darts", ErrInvariant, len(interior), n)
	}

	m := &Map{
		rot:      append([]Dart(nil), rot...),
		pair:     append([]Dart(nil), pair...),
		deco:     make([]Decoration, n),
		interior: make([]bool, n),
	}
	for i := range m.deco {
		m.deco[i] = Vanilla
	}
	copy(m.deco, deco)
	copy(m.interior, interior)

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks the map invariants: c is a bijection on the darts, and
// e is an involution without fixed points wherever it is defined.
func (m *Map) Validate() error {
	n := len(m.rot)
	seen := make([]bool, n)
	for x, y := range m.rot {
		if y < 0 || int(y) >= n {
			return fmt.Errorf("%w: c(%d) = %d out of range", ErrInvariant, x, y)
		}
		if seen[y] {
			return fmt.Errorf("%w: c is not a bijection, %d has two preimages", ErrInvariant, y)
		}
		seen[y] = true
	}
	for x, y := range m.pair {
		if y == NoDart {
			continue
		}
		if y < 0 || int(y) >= n {
			return fmt.Errorf("%w: e(%d) = %d out of range", ErrInvariant, x, y)
		}
		if int(y) == x {
			return fmt.Errorf("%w: e has a fixed point at %d", ErrInvariant, x)
		}
		if int(m.pair[y]) != x {
			return fmt.Errorf("%w: e is not an involution at %d", ErrInvariant, x)
		}
	}
	return nil
}

// Len returns the number of darts.
func (m *Map) Len() int { return len(m.rot) }

// Darts returns every dart in index order.
func (m *Map) Darts() []Dart {
	ds := make([]Dart, len(m.rot))
	for i := range ds {
		ds[i] = Dart(i)
	}
	return ds
}

// C returns the rotation successor of x.
func (m *Map) C(x Dart) Dart { return m.rot[x] }

// E returns the pair of x, or NoDart for a boundary dart.
func (m *Map) E(x Dart) Dart { return m.pair[x] }

// Anti returns the rotation predecessor of x.
func (m *Map) Anti(x Dart) Dart {
	s, t := x, m.rot[x]
	for t != x {
		s, t = t, m.rot[t]
	}
	return s
}

// Decoration returns the decoration of x.
func (m *Map) Decoration(x Dart) Decoration { return m.deco[x] }

// SetDecoration replaces the decoration of x.
func (m *Map) SetDecoration(x Dart, d Decoration) { m.deco[x] = d }

// IsInterior reports whether x is a bookkeeping dart.
func (m *Map) IsInterior(x Dart) bool { return m.interior[x] }

// IsBoundary reports whether x is unpaired.
func (m *Map) IsBoundary(x Dart) bool { return m.pair[x] == NoDart }

// IsClosed reports whether every dart is paired.
func (m *Map) IsClosed() bool {
	for _, y := range m.pair {
		if y == NoDart {
			return false
		}
	}
	return true
}

// BoundaryDarts returns the unpaired darts in index order.
func (m *Map) BoundaryDarts() []Dart {
	var b []Dart
	for x, y := range m.pair {
		if y == NoDart {
			b = append(b, Dart(x))
		}
	}
	return b
}

// Rotation returns a copy of the rotation array.
func (m *Map) Rotation() []Dart { return append([]Dart(nil), m.rot...) }

// Pairing returns a copy of the pairing array.
func (m *Map) Pairing() []Dart { return append([]Dart(nil), m.pair...) }

// Decorations returns a copy of the decoration array.
func (m *Map) Decorations() []Decoration { return append([]Decoration(nil), m.deco...) }

// InteriorFlags returns a copy of the interior flags.
func (m *Map) InteriorFlags() []bool { return append([]bool(nil), m.interior...) }

func (m *Map) valid(x Dart) bool { return x >= 0 && int(x) < len(m.rot) }

// add appends a fixed dart (c(x) = x, e(x) undefined) and returns it.
func (m *Map) add(d Decoration, interior bool) Dart {
	x := Dart(len(m.rot))
	m.rot = append(m.rot, x)
	m.pair = append(m.pair, NoDart)
	m.deco = append(m.deco, d)
	m.interior = append(m.interior, interior)
	return x
}

// link pairs x and y symmetrically.
func (m *Map) link(x, y Dart) {
	m.pair[x] = y
	m.pair[y] = x
}
