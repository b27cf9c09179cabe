package expr

import (
	"fmt"

	perrors "github.com/matzehuels/ribbonpack/pkg/errors"
	"github.com/matzehuels/ribbonpack/pkg/ribbon"
	"github.com/matzehuels/ribbonpack/pkg/web"
)

type builtin struct {
	min, max int
	usage    string
	fn       func(argList) (Value, error)
}

var builtins = map[string]builtin{
	"vertex": {1, 1, "vertex(n)", func(a argList) (Value, error) {
		n, err := a.num(0)
		if err != nil {
			return nil, err
		}
		if err := perrors.ValidateDarts("vertex", n, 1); err != nil {
			return nil, err
		}
		return web.Vertex(n)
	}},
	"line": {0, 0, "line()", func(argList) (Value, error) {
		return web.Line(), nil
	}},
	"polygon": {1, 1, "polygon(n)", func(a argList) (Value, error) {
		n, err := a.num(0)
		if err != nil {
			return nil, err
		}
		if err := perrors.ValidateDarts("polygon", n, 3); err != nil {
			return nil, err
		}
		return web.Polygon(n)
	}},
	"rotate": {2, 2, "rotate(web, n)", func(a argList) (Value, error) {
		w, err := a.web(0)
		if err != nil {
			return nil, err
		}
		n, err := a.num(1)
		if err != nil {
			return nil, err
		}
		return w.Rotate(n), nil
	}},
	"glue": {3, 3, "glue(web, web, n)", func(a argList) (Value, error) {
		g, err := a.web(0)
		if err != nil {
			return nil, err
		}
		h, err := a.web(1)
		if err != nil {
			return nil, err
		}
		n, err := a.num(2)
		if err != nil {
			return nil, err
		}
		return web.Glue(g, h, n)
	}},
	"normal": {1, 1, "normal(web)", func(a argList) (Value, error) {
		w, err := a.web(0)
		if err != nil {
			return nil, err
		}
		return w.Normal(), nil
	}},
	"tree": {2, 2, "tree(n, i)", func(a argList) (Value, error) {
		n, err := a.num(0)
		if err != nil {
			return nil, err
		}
		i, err := a.num(1)
		if err != nil {
			return nil, err
		}
		if err := perrors.ValidateTreeSize(n); err != nil {
			return nil, err
		}
		count, err := web.CountTrees(n)
		if err != nil {
			return nil, err
		}
		if i < 0 || i >= count {
			return nil, fmt.Errorf("%w: tree index %d out of range [0, %d)", ErrInvalidExpression, i, count)
		}
		return web.Tree(n, i)
	}},
	"morphism": {2, 2, "morphism(web, n)", func(a argList) (Value, error) {
		w, err := a.web(0)
		if err != nil {
			return nil, err
		}
		n, err := a.num(1)
		if err != nil {
			return nil, err
		}
		return w.Morphism(n)
	}},
	"compose": {2, 2, "compose(morphism, morphism)", func(a argList) (Value, error) {
		f, err := a.morphism(0)
		if err != nil {
			return nil, err
		}
		g, err := a.morphism(1)
		if err != nil {
			return nil, err
		}
		return f.Compose(g)
	}},
	"tensor": {2, 2, "tensor(morphism, morphism)", func(a argList) (Value, error) {
		f, err := a.morphism(0)
		if err != nil {
			return nil, err
		}
		g, err := a.morphism(1)
		if err != nil {
			return nil, err
		}
		return f.Tensor(g), nil
	}},
	"closure": {1, 2, "closure(web [, boundary vector]) or closure(morphism)", func(a argList) (Value, error) {
		if f, ok := a.vals[0].(*web.Morphism); ok {
			if len(a.vals) > 1 {
				return nil, fmt.Errorf("%w: a morphism closure takes no boundary vector", ErrInvalidExpression)
			}
			m, outer, err := f.Closure()
			if err != nil {
				return nil, err
			}
			return &Surface{Map: m, Outer: outer}, nil
		}
		w, err := a.web(0)
		if err != nil {
			return nil, err
		}
		var bv []int
		if len(a.vals) > 1 {
			if bv, err = a.list(1); err != nil {
				return nil, err
			}
		}
		m, outer, err := w.Closure(bv)
		if err != nil {
			return nil, err
		}
		return &Surface{Map: m, Outer: outer}, nil
	}},
	"join": {4, 4, "join(web, web, darts, darts)", func(a argList) (Value, error) {
		g, err := a.web(0)
		if err != nil {
			return nil, err
		}
		h, err := a.web(1)
		if err != nil {
			return nil, err
		}
		ra, err := a.darts(2)
		if err != nil {
			return nil, err
		}
		rb, err := a.darts(3)
		if err != nil {
			return nil, err
		}
		m, err := ribbon.Join(g.Map(), h.Map(), ra, rb)
		if err != nil {
			return nil, err
		}
		return &Surface{Map: m}, nil
	}},
	"dual": {1, 1, "dual(map)", func(a argList) (Value, error) {
		s, err := a.surface(0)
		if err != nil {
			return nil, err
		}
		d, err := s.Map.Dual()
		if err != nil {
			return nil, err
		}
		return &Surface{Map: d}, nil
	}},
	"subdivision": {1, 1, "subdivision(map)", func(a argList) (Value, error) {
		s, err := a.surface(0)
		if err != nil {
			return nil, err
		}
		m, _, err := s.Map.Subdivision()
		if err != nil {
			return nil, err
		}
		return &Surface{Map: m}, nil
	}},
	"face": {2, 2, "face(map, dart)", func(a argList) (Value, error) {
		s, err := a.surface(0)
		if err != nil {
			return nil, err
		}
		x, err := a.num(1)
		if err != nil {
			return nil, err
		}
		if x < 0 || x >= s.Map.Len() {
			return nil, fmt.Errorf("%w: dart %d out of range [0, %d)", ErrInvalidExpression, x, s.Map.Len())
		}
		return &Surface{Map: s.Map, Outer: s.Map.FaceOf(ribbon.Dart(x))}, nil
	}},
}

type argList struct {
	name string
	vals []Value
}

func (a argList) mismatch(i int, want string) error {
	return fmt.Errorf("%w: argument %d of %s must be %s, got %s", ErrInvalidExpression, i+1, a.name, want, kindOf(a.vals[i]))
}

func (a argList) num(i int) (int, error) {
	n, ok := a.vals[i].(int)
	if !ok {
		return 0, a.mismatch(i, "an int")
	}
	return n, nil
}

func (a argList) list(i int) ([]int, error) {
	l, ok := a.vals[i].([]int)
	if !ok {
		return nil, a.mismatch(i, "a list")
	}
	return l, nil
}

func (a argList) darts(i int) ([]ribbon.Dart, error) {
	l, err := a.list(i)
	if err != nil {
		return nil, err
	}
	ds := make([]ribbon.Dart, len(l))
	for j, x := range l {
		ds[j] = ribbon.Dart(x)
	}
	return ds, nil
}

func (a argList) web(i int) (*web.Web, error) {
	w, ok := a.vals[i].(*web.Web)
	if !ok {
		return nil, a.mismatch(i, "a web")
	}
	return w, nil
}

func (a argList) morphism(i int) (*web.Morphism, error) {
	f, ok := a.vals[i].(*web.Morphism)
	if !ok {
		return nil, a.mismatch(i, "a morphism")
	}
	return f, nil
}

func (a argList) surface(i int) (*Surface, error) {
	s, ok := a.vals[i].(*Surface)
	if !ok {
		return nil, a.mismatch(i, "a map")
	}
	return s, nil
}
