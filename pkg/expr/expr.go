package expr

import (
	"context"
	"fmt"
	"sort"
	"strings"

	perrors "github.com/matzehuels/ribbonpack/pkg/errors"
	"github.com/matzehuels/ribbonpack/pkg/ribbon"
	"github.com/matzehuels/ribbonpack/pkg/web"
)

// ErrInvalidExpression is returned for expressions that do not parse or
// apply a builtin to the wrong arguments.
var ErrInvalidExpression = perrors.New(perrors.ErrCodeInvalidExpression, "invalid expression")

// Surface is a map together with the face chosen as outer face. Outer is
// nil when no face has been chosen yet.
type Surface struct {
	Map   *ribbon.Map
	Outer []ribbon.Dart
}

// Value is the result of evaluating an expression: an int, a []int, a
// *web.Web, a *web.Morphism or a *Surface.
type Value any

// Parse parses src without evaluating it.
func Parse(src string) (*Expr, error) {
	if err := perrors.ValidateExpression(src); err != nil {
		return nil, err
	}
	e, err := parser.ParseString("", src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}
	return e, nil
}

// Eval parses and evaluates src.
func Eval(src string) (Value, error) {
	return EvalContext(context.Background(), src)
}

// EvalContext is [Eval] with cancellation: evaluation stops before the next
// call once ctx is done and returns ctx.Err().
func EvalContext(ctx context.Context, src string) (Value, error) {
	e, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return e.EvalContext(ctx)
}

// Closed evaluates src and returns a closed map with its outer face. Webs
// are closed with one boundary point per corner and morphisms with their
// rectangular closure, so "polygon(5)" and "closure(polygon(5))" agree.
func Closed(src string) (*Surface, error) {
	return ClosedContext(context.Background(), src)
}

// ClosedContext is [Closed] with cancellation.
func ClosedContext(ctx context.Context, src string) (*Surface, error) {
	v, err := EvalContext(ctx, src)
	if err != nil {
		return nil, err
	}
	return toSurface(v)
}

func toSurface(v Value) (*Surface, error) {
	switch x := v.(type) {
	case *Surface:
		if x.Outer == nil {
			return nil, fmt.Errorf("%w: no outer face chosen; wrap the map in face(..., dart)", ErrInvalidExpression)
		}
		return x, nil
	case *web.Web:
		m, outer, err := x.Closure(nil)
		if err != nil {
			return nil, err
		}
		if err := checkSize("closure", m.Len()); err != nil {
			return nil, err
		}
		return &Surface{Map: m, Outer: outer}, nil
	case *web.Morphism:
		m, outer, err := x.Closure()
		if err != nil {
			return nil, err
		}
		if err := checkSize("closure", m.Len()); err != nil {
			return nil, err
		}
		return &Surface{Map: m, Outer: outer}, nil
	}
	return nil, fmt.Errorf("%w: result is %s, not a map", ErrInvalidExpression, kindOf(v))
}

// Eval evaluates a parsed expression.
func (e *Expr) Eval() (Value, error) {
	return e.EvalContext(context.Background())
}

// EvalContext evaluates a parsed expression, checking ctx before each call.
func (e *Expr) EvalContext(ctx context.Context) (Value, error) {
	switch {
	case e.Int != nil:
		return *e.Int, nil
	case e.List != nil:
		return append([]int{}, e.List.Items...), nil
	case e.Call != nil:
		return e.Call.eval(ctx)
	}
	return nil, fmt.Errorf("%w: empty expression", ErrInvalidExpression)
}

func (c *Call) eval(ctx context.Context) (Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, ok := builtins[c.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %s: unknown function %q", ErrInvalidExpression, c.Pos, c.Name)
	}
	args := make([]Value, len(c.Args))
	for i, a := range c.Args {
		v, err := a.EvalContext(ctx)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	if len(args) < b.min || len(args) > b.max {
		return nil, fmt.Errorf("%w: %s: %s", ErrInvalidExpression, c.Pos, b.usage)
	}
	v, err := b.fn(argList{name: c.Name, vals: args})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Name, err)
	}
	if err := checkSize(c.Name, darts(v)); err != nil {
		return nil, err
	}
	return v, nil
}

// checkSize bounds every intermediate map, so a deep expression cannot grow
// past the dart limit one step at a time.
func checkSize(name string, n int) error {
	return perrors.ValidateDarts(name, n, 1)
}

func darts(v Value) int {
	switch x := v.(type) {
	case *web.Web:
		return x.Map().Len()
	case *web.Morphism:
		return x.Map().Len()
	case *Surface:
		return x.Map.Len()
	}
	return 0
}

// Functions returns the usage line of every builtin, sorted by name.
func Functions() []string {
	out := make([]string, 0, len(builtins))
	for _, b := range builtins {
		out = append(out, b.usage)
	}
	sort.Strings(out)
	return out
}

// Describe returns a one-line summary of a value.
func Describe(v Value) string {
	switch x := v.(type) {
	case *web.Web:
		return fmt.Sprintf("web with %d darts and %d boundary points", x.Map().Len(), x.Len())
	case *web.Morphism:
		return fmt.Sprintf("morphism %d -> %d with %d darts", len(x.Domain()), len(x.Codomain()), x.Map().Len())
	case *Surface:
		var b strings.Builder
		fmt.Fprintf(&b, "map with %d darts", x.Map.Len())
		if x.Outer != nil {
			fmt.Fprintf(&b, ", outer face of %d darts", len(x.Outer))
		}
		return b.String()
	}
	return fmt.Sprint(v)
}

func kindOf(v Value) string {
	switch v.(type) {
	case int:
		return "an int"
	case []int:
		return "a list"
	case *web.Web:
		return "a web"
	case *web.Morphism:
		return "a morphism"
	case *Surface:
		return "a map"
	}
	return fmt.Sprintf("%T", v)
}
