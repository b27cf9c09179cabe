package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/ribbonpack/pkg/render/nodelink"
	"github.com/matzehuels/ribbonpack/pkg/ribbon"
)

func ExampleToDOT() {
	p, _ := ribbon.Polygon(3)
	m, outer, _ := p.Closure(nil, nil)

	dot := nodelink.ToDOT(m, nodelink.Options{Outer: outer})

	fmt.Println("edges:", strings.Count(dot, " -- "))
	// Output:
	// edges: 12
}
