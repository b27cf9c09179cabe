// Package catalog holds named example surfaces.
//
// Each [Example] is an expression in the [expr] language. The catalog is
// ordered by name so listings are stable across runs.
package catalog

import (
	"context"
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"

	perrors "github.com/matzehuels/ribbonpack/pkg/errors"
	"github.com/matzehuels/ribbonpack/pkg/expr"
)

// ErrUnknownExample is returned by [Get] for names not in the catalog.
var ErrUnknownExample = perrors.New(perrors.ErrCodeNotFound, "unknown example")

// Example is a named expression.
type Example struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Expr        string `json:"expr"`
}

// Build evaluates the example to a closed map with its outer face.
func (e Example) Build() (*expr.Surface, error) {
	return e.BuildContext(context.Background())
}

// BuildContext is [Example.Build] with cancellation.
func (e Example) BuildContext(ctx context.Context) (*expr.Surface, error) {
	s, err := expr.ClosedContext(ctx, e.Expr)
	if err != nil {
		return nil, fmt.Errorf("example %s: %w", e.Name, err)
	}
	return s, nil
}

var examples = newCatalog(
	Example{"vertex", "A single four-valent vertex", "vertex(4)"},
	Example{"triangle", "The smallest polygon with a clean closure", "polygon(3)"},
	Example{"square", "A square with one boundary point per corner", "polygon(4)"},
	Example{"pentagon", "A pentagon, the classic first packing", "closure(polygon(5), [1, 1, 1, 1, 1])"},
	Example{"hexagon", "A hexagon", "polygon(6)"},
	Example{"rotated", "A four-valent vertex with the base point moved", "rotate(vertex(4), 3)"},
	Example{"glued", "A four-valent and a trivalent vertex glued along one edge", "normal(glue(vertex(4), vertex(3), 1))"},
	Example{"tree", "The first planar binary tree with three vertices", "tree(3, 0)"},
	Example{"morphism", "A pentagon read as a morphism from two points to three", "morphism(polygon(5), 2)"},
	Example{"composite", "Two four-valent vertices composed as morphisms", "compose(morphism(vertex(4), 2), morphism(vertex(4), 2))"},
)

func newCatalog(es ...Example) *treemap.Map {
	m := treemap.NewWithStringComparator()
	for _, e := range es {
		m.Put(e.Name, e)
	}
	return m
}

// Names returns the example names in sorted order.
func Names() []string {
	names := make([]string, 0, examples.Size())
	for _, k := range examples.Keys() {
		names = append(names, k.(string))
	}
	return names
}

// All returns every example, sorted by name.
func All() []Example {
	out := make([]Example, 0, examples.Size())
	it := examples.Iterator()
	for it.Next() {
		out = append(out, it.Value().(Example))
	}
	return out
}

// Get looks up an example by name.
func Get(name string) (Example, error) {
	if err := perrors.ValidateExampleName(name); err != nil {
		return Example{}, err
	}
	v, ok := examples.Get(name)
	if !ok {
		return Example{}, fmt.Errorf("%w: %q", ErrUnknownExample, name)
	}
	return v.(Example), nil
}
