// Package packing computes the radii of a circle packing for a classified
// surface.
//
// # Overview
//
// Given a [surface.Surface], [Solve] looks for radii such that, for every
// circle, the angles of the triangles meeting at its centre add up to the
// circle's target angle. The triangle of three mutually tangent circles
// with radii a, b, c has side lengths a+b, b+c and c+a, so its angles are
// a function of the radii alone.
//
// # Schemes
//
// Both schemes are the uniform-neighbour iteration of Collins and
// Stephenson. A circle with current angle sum θ and k neighbouring
// triangles is replaced by the radius that k equal neighbours would need
// to reach its target angle:
//
//	β = sin(θ/2k), δ = sin(target/2k), r' = r·(1-δ)/δ·β/(1-β)
//
// [Basic] applies this update to every free circle at once and stops when
// the largest angle error falls below the tolerance.
//
// [Accelerated] measures the L2 norm of the angle errors instead and, on
// every other sweep where the error shrinks, extrapolates the radii along
// the last step. The step length is capped at half the distance at which
// a shrinking radius would reach zero.
//
// The anchor circle (circle 0) keeps its radius throughout; this fixes the
// scale of the packing.
//
// # Errors
//
// [Solve] fails with NON_CONVERGENT when the iteration cap is reached or a
// radius stops being a positive finite number, and returns the context's
// error if it is cancelled between sweeps.
package packing
