package web

import (
	"fmt"
	"slices"

	"github.com/matzehuels/ribbonpack/pkg/ribbon"
)

// Morphism is a web whose boundary is split into a domain (read along the
// bottom) and a codomain (read along the top), the usual picture of a
// morphism in a pivotal category.
type Morphism struct {
	m        *ribbon.Map
	domain   []ribbon.Dart
	codomain []ribbon.Dart
}

// Morphism splits the boundary of w: the first n points form the domain
// and the remaining points, reversed, form the codomain.
func (w *Web) Morphism(n int) (*Morphism, error) {
	if n < 0 || n > len(w.bd) {
		return nil, fmt.Errorf("%w: cannot take %d domain points from %d", ErrInvalidWeb, n, len(w.bd))
	}
	c := w.Copy()
	co := slices.Clone(c.bd[n:])
	slices.Reverse(co)
	return &Morphism{m: c.m, domain: slices.Clone(c.bd[:n]), codomain: co}, nil
}

// Domain returns a copy of the domain points.
func (f *Morphism) Domain() []ribbon.Dart { return slices.Clone(f.domain) }

// Codomain returns a copy of the codomain points.
func (f *Morphism) Codomain() []ribbon.Dart { return slices.Clone(f.codomain) }

// Map returns the underlying map. Callers must not modify it.
func (f *Morphism) Map() *ribbon.Map { return f.m }

// Web returns the web with boundary domain followed by the reversed
// codomain.
func (f *Morphism) Web() *Web {
	c := f.copy()
	co := slices.Clone(c.codomain)
	slices.Reverse(co)
	return &Web{m: c.m, bd: append(c.domain, co...)}
}

func (f *Morphism) copy() *Morphism {
	m, tr := f.m.Copy()
	return &Morphism{m: m, domain: translate(tr, f.domain), codomain: translate(tr, f.codomain)}
}

// Compose stitches the codomain of f to the domain of g and normalizes.
// The result has the domain of f and the codomain of g.
func (f *Morphism) Compose(g *Morphism) (*Morphism, error) {
	if len(f.codomain) != len(g.domain) {
		return nil, fmt.Errorf("%w: codomain has %d points, domain has %d", ErrInvalidWeb, len(f.codomain), len(g.domain))
	}
	u, tf, tg := ribbon.Union(f.m, g.m)
	for i := range f.codomain {
		if err := u.Stitch(tf[f.codomain[i]], tg[g.domain[i]]); err != nil {
			return nil, err
		}
	}
	dom := translate(tf, f.domain)
	cod := translate(tg, g.codomain)
	tr := u.Normalize()
	return &Morphism{m: u, domain: translate(tr, dom), codomain: translate(tr, cod)}, nil
}

// Tensor places f and g side by side.
func (f *Morphism) Tensor(g *Morphism) *Morphism {
	u, tf, tg := ribbon.Union(f.m, g.m)
	return &Morphism{
		m:        u,
		domain:   append(translate(tf, f.domain), translate(tg, g.domain)...),
		codomain: append(translate(tf, f.codomain), translate(tg, g.codomain)...),
	}
}

// Closure closes the morphism as a rectangle: the domain along one side,
// the codomain along the opposite side, and two empty sides between them.
func (f *Morphism) Closure() (*ribbon.Map, []ribbon.Dart, error) {
	return f.Web().Closure([]int{len(f.domain), 0, len(f.codomain), 0})
}
