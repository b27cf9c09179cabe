package ribbon

// Orbits partitions the darts into the cycles of f, which must be a
// permutation of the darts. Each cycle starts at its smallest dart and
// cycles are listed by start dart, but callers should not rely on either.
func (m *Map) Orbits(f func(Dart) Dart) [][]Dart {
	n := len(m.rot)
	seen := make([]bool, n)
	var orbits [][]Dart
	for i := 0; i < n; i++ {
		if seen[i] {
			continue
		}
		var cycle []Dart
		for x := Dart(i); !seen[x]; x = f(x) {
			seen[x] = true
			cycle = append(cycle, x)
		}
		orbits = append(orbits, cycle)
	}
	return orbits
}

// pairOrSelf is e extended by the identity on boundary darts.
func (m *Map) pairOrSelf(x Dart) Dart {
	if y := m.pair[x]; y != NoDart {
		return y
	}
	return x
}

// faceStep is x -> c(e(x)).
func (m *Map) faceStep(x Dart) Dart { return m.rot[m.pairOrSelf(x)] }

// Vertices returns the cycles of the rotation.
func (m *Map) Vertices() [][]Dart { return m.Orbits(m.C) }

// Edges returns the cycles of the pairing; boundary darts form singletons.
func (m *Map) Edges() [][]Dart { return m.Orbits(m.pairOrSelf) }

// Faces returns the cycles of x -> c(e(x)).
func (m *Map) Faces() [][]Dart { return m.Orbits(m.faceStep) }

// FaceOf returns the face cycle starting at x, in walking order.
func (m *Map) FaceOf(x Dart) []Dart {
	cycle := []Dart{x}
	for s := m.faceStep(x); s != x; s = m.faceStep(s) {
		cycle = append(cycle, s)
	}
	return cycle
}

// OrbitIndex returns, for every dart, the index of its orbit in orbits.
func OrbitIndex(n int, orbits [][]Dart) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = -1
	}
	for k, o := range orbits {
		for _, x := range o {
			idx[x] = k
		}
	}
	return idx
}

// CountVertices returns the valency histogram: entry k is the number of
// vertices of valency k, up to the maximum valency. The first entry is
// always zero.
func (m *Map) CountVertices() []int {
	vs := m.Vertices()
	maxV := 0
	for _, v := range vs {
		maxV = max(maxV, len(v))
	}
	counts := make([]int, maxV+1)
	for _, v := range vs {
		counts[len(v)]++
	}
	return counts
}

// EulerCharacteristic returns V - E + F.
func (m *Map) EulerCharacteristic() int {
	return len(m.Vertices()) - len(m.Edges()) + len(m.Faces())
}
