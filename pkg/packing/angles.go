package packing

import (
	"math"

	"github.com/matzehuels/ribbonpack/pkg/surface"
)

// cosineAngles returns the angle at each corner of the triangle formed by
// three mutually tangent circles, by the law of cosines.
func cosineAngles(u [3]float64) [3]float64 {
	var side, out [3]float64
	for i := range 3 {
		side[i] = u[(i+1)%3] + u[(i+2)%3]
	}
	for i := range 3 {
		b, c := side[(i+1)%3], side[(i+2)%3]
		cos := (b*b + c*c - side[i]*side[i]) / (2 * b * c)
		out[i] = math.Acos(max(-1, min(1, cos)))
	}
	return out
}

// halfAngles computes the same angles by the half-angle formula, which is
// better conditioned for very thin triangles.
func halfAngles(u [3]float64) [3]float64 {
	var out [3]float64
	for i := range 3 {
		p, q := u[(i+2)%3], u[(i+1)%3]
		x := p / (u[i] + p) * q / (u[i] + q)
		out[i] = 2 * math.Asin(math.Sqrt(x))
	}
	return out
}

func angleSums(tris [][3]int, r []float64, angles func([3]float64) [3]float64) []float64 {
	sums := make([]float64, len(r))
	for _, t := range tris {
		a := angles([3]float64{r[t[0]], r[t[1]], r[t[2]]})
		for i, c := range t {
			sums[c] += a[i]
		}
	}
	return sums
}

func maxError(sums, target []float64) float64 {
	var e float64
	for i := range sums {
		e = max(e, math.Abs(target[i]-sums[i]))
	}
	return e
}

func l2Error(sums, target []float64) float64 {
	var total float64
	for i := range sums {
		d := target[i] - sums[i]
		total += d * d
	}
	return math.Sqrt(total)
}

// AngleSums returns, for each circle of s, the sum of the angles at its
// centre of the triangles it belongs to, given radii indexed like
// s.Circles.
func AngleSums(s *surface.Surface, radii []float64) []float64 {
	tris := make([][3]int, 0, len(s.Triangles()))
	for _, t := range s.Triangles() {
		tris = append(tris, t.Circles())
	}
	return angleSums(tris, radii, cosineAngles)
}

// MaxAngleError returns the largest difference between a circle's target
// angle and its angle sum under radii.
func MaxAngleError(s *surface.Surface, radii []float64) float64 {
	sums := AngleSums(s, radii)
	target := make([]float64, len(sums))
	for i, c := range s.Circles() {
		target[i] = c.Angle
	}
	return maxError(sums, target)
}
