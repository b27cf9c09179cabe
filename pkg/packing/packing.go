package packing

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	perrors "github.com/matzehuels/ribbonpack/pkg/errors"
	"github.com/matzehuels/ribbonpack/pkg/surface"
)

const (
	DefaultTolerance     = 1e-7   // Default convergence threshold on the angle error
	DefaultMaxIterations = 100000 // Default cap on sweeps
	DefaultRadius        = 10.0   // Default anchor and starting radius

	overRelaxTolerance = 0.1  // Ratio drift below which the step is extrapolated
	progressInterval   = 1000 // Sweeps between progress callbacks
)

var (
	ErrNonConvergent  = perrors.New(perrors.ErrCodeNonConvergent, "packing did not converge")
	ErrInvalidConfig  = perrors.New(perrors.ErrCodeInvalidInput, "invalid packing configuration")
	ErrIsolatedCircle = perrors.New(perrors.ErrCodeInconsistentCircles, "circle lies in no triangle")
)

// Scheme selects the iteration.
type Scheme string

const (
	Accelerated Scheme = "accelerated"
	Basic       Scheme = "basic"
)

// ParseScheme converts a name to a Scheme. The empty string selects
// [Accelerated].
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(strings.ToLower(s)) {
	case "", Accelerated:
		return Accelerated, nil
	case Basic:
		return Basic, nil
	}
	return "", fmt.Errorf("%w: unknown scheme %q", ErrInvalidConfig, s)
}

// Config controls a solver run.
type Config struct {
	Scheme        Scheme  `toml:"scheme" json:"scheme"`                 // Iteration (default: accelerated)
	Tolerance     float64 `toml:"tolerance" json:"tolerance"`           // Angle error threshold (default: 1e-7)
	MaxIterations int     `toml:"max_iterations" json:"max_iterations"` // Sweep cap (default: 100000)
	AnchorRadius  float64 `toml:"anchor_radius" json:"anchor_radius"`   // Fixed radius of circle 0 (default: 10)
	DefaultRadius float64 `toml:"default_radius" json:"default_radius"` // Starting radius of the others (default: 10)

	// Progress, if set, is called every thousand sweeps with the sweep
	// number and the current error.
	Progress func(iteration int, err float64) `toml:"-" json:"-"`
}

// WithDefaults returns a copy of c with zero values replaced by defaults.
func (c Config) WithDefaults() Config {
	cfg := c
	if cfg.Scheme == "" {
		cfg.Scheme = Accelerated
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = DefaultTolerance
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	if cfg.AnchorRadius <= 0 {
		cfg.AnchorRadius = DefaultRadius
	}
	if cfg.DefaultRadius <= 0 {
		cfg.DefaultRadius = DefaultRadius
	}
	return cfg
}

// Validate checks a defaulted configuration.
func (c Config) Validate() error {
	if c.Scheme != Accelerated && c.Scheme != Basic {
		return fmt.Errorf("%w: unknown scheme %q", ErrInvalidConfig, c.Scheme)
	}
	if math.IsNaN(c.Tolerance) || math.IsInf(c.Tolerance, 0) {
		return fmt.Errorf("%w: tolerance must be finite", ErrInvalidConfig)
	}
	if math.IsInf(c.AnchorRadius, 0) || math.IsInf(c.DefaultRadius, 0) {
		return fmt.Errorf("%w: radii must be finite", ErrInvalidConfig)
	}
	return nil
}

// Packing is the result of a solver run.
type Packing struct {
	Radii      []float64 `json:"radii"`      // Radius per circle, indexed like surface.Circles
	Iterations int       `json:"iterations"` // Sweeps performed
	Error      float64   `json:"error"`      // Angle error of the returned radii
	Scheme     Scheme    `json:"scheme"`
}

// Radius returns the radius of circle i.
func (p *Packing) Radius(i int) float64 { return p.Radii[i] }

// Solve computes radii for s. The zero Config is valid and selects the
// defaults.
func Solve(ctx context.Context, s *surface.Surface, cfg Config) (*Packing, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sv, err := newSolver(s, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Scheme == Basic {
		return sv.basic(ctx)
	}
	return sv.accelerated(ctx)
}

type solver struct {
	cfg    Config
	tris   [][3]int
	target []float64
	degree []int
	delta  []float64
	free   []int // circles whose radius is updated
	anchor int
}

func newSolver(s *surface.Surface, cfg Config) (*solver, error) {
	circles := s.Circles()
	sv := &solver{
		cfg:    cfg,
		target: make([]float64, len(circles)),
		degree: make([]int, len(circles)),
		delta:  make([]float64, len(circles)),
		anchor: s.Anchor(),
	}
	for _, t := range s.Triangles() {
		c := t.Circles()
		sv.tris = append(sv.tris, c)
		for _, i := range c {
			sv.degree[i]++
		}
	}
	for i, c := range circles {
		if sv.degree[i] == 0 {
			return nil, fmt.Errorf("%w: circle %d (%s)", ErrIsolatedCircle, i, c.Role)
		}
		sv.target[i] = c.Angle
		if i == sv.anchor || c.Boundary {
			continue
		}
		if c.Angle <= 0 {
			return nil, fmt.Errorf("%w: circle %d has target angle %g", ErrNonConvergent, i, c.Angle)
		}
		sv.delta[i] = math.Sin(c.Angle / (2 * float64(sv.degree[i])))
		sv.free = append(sv.free, i)
	}
	return sv, nil
}

func (sv *solver) initial() []float64 {
	r := make([]float64, len(sv.target))
	for i := range r {
		r[i] = sv.cfg.DefaultRadius
	}
	r[sv.anchor] = sv.cfg.AnchorRadius
	return r
}

func (sv *solver) adjust(i int, angle, r float64) float64 {
	beta := math.Sin(angle / (2 * float64(sv.degree[i])))
	d := sv.delta[i]
	return r * (1 - d) / d * beta / (1 - beta)
}

func (sv *solver) sweep(ctx context.Context, it int, err float64) error {
	if e := ctx.Err(); e != nil {
		return e
	}
	if sv.cfg.Progress != nil && it%progressInterval == 0 {
		sv.cfg.Progress(it, err)
	}
	return nil
}

func (sv *solver) checkRadii(r []float64, it int) error {
	for _, i := range sv.free {
		if !(r[i] > 0) || math.IsInf(r[i], 0) {
			return fmt.Errorf("%w: radius of circle %d is %g after %d sweeps", ErrNonConvergent, i, r[i], it)
		}
	}
	return nil
}

func (sv *solver) basic(ctx context.Context) (*Packing, error) {
	r := sv.initial()
	for it := 1; it <= sv.cfg.MaxIterations; it++ {
		sums := angleSums(sv.tris, r, halfAngles)
		e := maxError(sums, sv.target)
		if e < sv.cfg.Tolerance {
			return &Packing{Radii: r, Iterations: it, Error: e, Scheme: Basic}, nil
		}
		if err := sv.sweep(ctx, it, e); err != nil {
			return nil, err
		}
		for _, i := range sv.free {
			r[i] = sv.adjust(i, sums[i], r[i])
		}
		if err := sv.checkRadii(r, it); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %d sweeps", ErrNonConvergent, sv.cfg.MaxIterations)
}

func (sv *solver) accelerated(ctx context.Context) (*Packing, error) {
	rNew := sv.initial()
	errNew := 1 + sv.cfg.Tolerance
	lambdaNew := -1.0
	accelNew := false

	for it := 1; it <= sv.cfg.MaxIterations; it++ {
		errOld, lambdaOld, accelOld, rOld := errNew, lambdaNew, accelNew, rNew

		sums := angleSums(sv.tris, rOld, cosineAngles)
		errNew = l2Error(sums, sv.target)
		if errNew < sv.cfg.Tolerance {
			return &Packing{Radii: rOld, Iterations: it, Error: errNew, Scheme: Accelerated}, nil
		}
		if err := sv.sweep(ctx, it, errNew); err != nil {
			return nil, err
		}

		rNew = slices.Clone(rOld)
		for _, i := range sv.free {
			rNew[i] = sv.adjust(i, sums[i], rOld[i])
		}

		lambdaNew = errNew / errOld
		accelNew = true
		if accelOld && lambdaNew < 1 {
			errNew *= lambdaNew
			if math.Abs(lambdaNew-lambdaOld) < overRelaxTolerance {
				lambdaNew /= 1 - lambdaNew
			}
			lambdaMax := math.Inf(1)
			for _, i := range sv.free {
				if rOld[i] > rNew[i] {
					lambdaMax = min(lambdaMax, rNew[i]/(rOld[i]-rNew[i]))
				}
			}
			lambdaNew = min(lambdaNew, 0.5*lambdaMax)
			for _, i := range sv.free {
				rNew[i] += lambdaNew * (rNew[i] - rOld[i])
			}
			accelNew = false
		}
		if err := sv.checkRadii(rNew, it); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %d sweeps", ErrNonConvergent, sv.cfg.MaxIterations)
}
