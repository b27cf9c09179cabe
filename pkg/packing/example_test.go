package packing_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/ribbonpack/pkg/packing"
	"github.com/matzehuels/ribbonpack/pkg/ribbon"
	"github.com/matzehuels/ribbonpack/pkg/surface"
)

func ExampleSolve() {
	p, _ := ribbon.Polygon(5)
	m, outer, _ := p.Closure(nil, nil)
	s, _ := surface.New(m, outer)

	pk, err := packing.Solve(context.Background(), s, packing.Config{})
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, c := range s.Circles()[:7] {
		fmt.Printf("%-15s %.3f\n", c.Role, pk.Radius(c.Index))
	}
	// Output:
	// corner          10.000
	// corner          10.000
	// corner          10.000
	// corner          10.000
	// corner          10.000
	// boundary-vertex 13.030
	// boundary-vertex 13.030
}
