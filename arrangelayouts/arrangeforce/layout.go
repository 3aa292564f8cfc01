// Package arrangeforce runs a force directed simulation over item centers.
//
// Each iteration applies, in order: pairwise repulsion, spring attraction
// along relations, gravity toward the origin, direct collision correction
// and finally damped integration scaled by a linearly cooling temperature.
package arrangeforce

import (
	"context"
	"math"

	"oss.terrastruct.com/arrange/arrangegraph"
	"oss.terrastruct.com/arrange/lib/geo"
)

const (
	DEFAULT_ITERATIONS = arrangegraph.DEFAULT_ITERATIONS
	// Added to spacing to get the ideal edge length k.
	IDEAL_LENGTH_BASE = 100.
	GRAVITY           = 0.05
	MAX_VELOCITY      = 100.
	FRICTION          = 0.1
	MIN_DISTANCE      = 1.
)

var goldenAngle = math.Pi * (3 - math.Sqrt(5))

type simulation struct {
	g       *arrangegraph.Graph
	k       float64
	spacing float64

	centers []geo.Vector
	vel     []geo.Vector
	force   []geo.Vector
	radii   []float64
}

// Layout runs opts.Iterations iterations. ctx is checked before each
// iteration; a cancelled ctx leaves the layout as far as it got.
func Layout(ctx context.Context, g *arrangegraph.Graph, opts arrangegraph.Options) {
	if len(g.Items) == 0 {
		return
	}
	iterations := opts.Iterations
	if iterations <= 0 {
		iterations = DEFAULT_ITERATIONS
	}

	s := newSimulation(g, opts.Spacing)
	for iter := 0; iter < iterations; iter++ {
		if ctx.Err() != nil {
			break
		}
		s.step(1 - float64(iter)/float64(iterations))
	}
	s.commit()
}

func newSimulation(g *arrangegraph.Graph, spacing float64) *simulation {
	n := len(g.Items)
	s := &simulation{
		g:       g,
		k:       spacing + IDEAL_LENGTH_BASE,
		spacing: spacing,
		centers: make([]geo.Vector, n),
		vel:     make([]geo.Vector, n),
		force:   make([]geo.Vector, n),
		radii:   make([]float64, n),
	}

	seeded := false
	for _, it := range g.Items {
		if !it.Position.IsOrigin() {
			seeded = true
			break
		}
	}
	for i, it := range g.Items {
		s.radii[i] = math.Max(it.Width, it.Height) / 2
		s.vel[i] = geo.NewVector(0, 0)
		if seeded {
			s.centers[i] = it.Center().ToVector()
		} else {
			s.centers[i] = Spiral(i, s.k).ToVector()
		}
	}
	return s
}

// Spiral returns the i-th point of a golden angle spiral of scale k.
func Spiral(i int, k float64) *geo.Point {
	return geo.PolarPoint(k*math.Sqrt(float64(i)), float64(i)*goldenAngle)
}

// pairDirection is a fixed unit vector used to separate coincident items i and j.
func pairDirection(i, j int) geo.Vector {
	p := geo.PolarPoint(1, float64(i*31+j)*goldenAngle)
	return p.ToVector()
}

// separation returns the unit vector from j to i and their distance,
// never below MIN_DISTANCE.
func (s *simulation) separation(i, j int) (geo.Vector, float64) {
	d := s.centers[i].Minus(s.centers[j])
	dist := d.Length()
	if dist < MIN_DISTANCE || !geo.IsFinite(dist) {
		return pairDirection(i, j), MIN_DISTANCE
	}
	return d.Unit(), dist
}

func (s *simulation) step(temperature float64) {
	n := len(s.centers)
	for i := range s.force {
		s.force[i] = geo.NewVector(0, 0)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dir, dist := s.separation(i, j)
			f := dir.Multiply(s.k * s.k / dist)
			s.force[i] = s.force[i].Add(f)
			s.force[j] = s.force[j].Minus(f)
		}
	}

	for _, e := range s.g.Edges {
		if e.IsLoop() {
			continue
		}
		dir, dist := s.separation(e.Dst, e.Src)
		f := dir.Multiply(dist * dist / s.k)
		s.force[e.Src] = s.force[e.Src].Add(f)
		s.force[e.Dst] = s.force[e.Dst].Minus(f)
	}

	for i, c := range s.centers {
		s.force[i] = s.force[i].Minus(c.Multiply(GRAVITY))
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			minDist := s.radii[i] + s.radii[j] + s.spacing
			dir, dist := s.separation(i, j)
			if dist >= minDist {
				continue
			}
			push := dir.Multiply((minDist - dist) / 2)
			s.centers[i] = s.centers[i].Add(push)
			s.centers[j] = s.centers[j].Minus(push)
		}
	}

	for i := range s.centers {
		v := s.vel[i].Add(s.force[i]).Clamp(MAX_VELOCITY).Multiply(FRICTION)
		if !finite(v) {
			v = geo.NewVector(0, 0)
		}
		s.vel[i] = v
		s.centers[i] = s.centers[i].Add(v.Multiply(temperature))
	}
}

// commit writes the centers back as top-left positions.
func (s *simulation) commit() {
	for i, c := range s.centers {
		it := s.g.Items[i]
		x, y := c[0]-it.Width/2, c[1]-it.Height/2
		if !geo.IsFinite(x) || !geo.IsFinite(y) {
			x, y = 0, 0
		}
		s.g.SetPosition(i, x, y)
	}
}

func finite(v geo.Vector) bool {
	for _, c := range v {
		if !geo.IsFinite(c) {
			return false
		}
	}
	return true
}
