// Package arrangeradial places the most connected item at the origin and the
// rest on concentric rings by decreasing degree.
package arrangeradial

import (
	"context"
	"math"
	"sort"

	"oss.terrastruct.com/arrange/arrangegraph"
	"oss.terrastruct.com/arrange/lib/geo"
)

const MIN_RADIUS = 300.

func Layout(ctx context.Context, g *arrangegraph.Graph, opts arrangegraph.Options) {
	if len(g.Items) == 0 {
		return
	}

	deg := g.Degrees()
	order := make([]int, len(g.Items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return deg[order[a]] > deg[order[b]]
	})

	g.SetPosition(order[0], 0, 0)
	if len(order) == 1 {
		return
	}

	unit := arrangegraph.DEFAULT_WIDTH + opts.Spacing
	baseRadius := math.Max(MIN_RADIUS, unit)

	rest := order[1:]
	for ring := 1; len(rest) > 0; ring++ {
		radius := float64(ring) * baseRadius
		n := RingCapacity(radius, unit)
		if n > len(rest) {
			n = len(rest)
		}
		step := 2 * math.Pi / float64(n)
		for i, idx := range rest[:n] {
			p := geo.PolarPoint(radius, float64(i)*step)
			g.SetPosition(idx, p.X, p.Y)
		}
		rest = rest[n:]
	}
}

// RingCapacity is how many items of pitch unit fit on the circumference of
// radius. It is at least 1.
func RingCapacity(radius, unit float64) int {
	n := int(math.Floor(2 * math.Pi * radius / unit))
	if n < 1 {
		return 1
	}
	return n
}
