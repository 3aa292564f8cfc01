// Package arrangetree lays items out in BFS levels from the roots of the
// relation graph, wrapping wide levels into centered rows.
package arrangetree

import (
	"context"
	"math"
	"sort"

	"oss.terrastruct.com/arrange/arrangegraph"
	"oss.terrastruct.com/arrange/lib/go2"
)

const (
	MIN_ROW_WIDTH = 800.
	LEVEL_GAP     = 50.
)

var phi = (1 + math.Sqrt(5)) / 2

// Layout places level 0 on top and every deeper level below the previous one.
// Items no root reaches share a final row. With DirectionLR the levels run
// left to right instead.
func Layout(ctx context.Context, g *arrangegraph.Graph, opts arrangegraph.Options) {
	if len(g.Items) == 0 {
		return
	}
	if opts.Direction == arrangegraph.DirectionLR {
		g.Transpose()
		defer g.Transpose()
	}

	levels, islands := Levels(g)
	spacing := opts.Spacing
	rowWidth := math.Max(MIN_ROW_WIDTH, math.Sqrt(g.TotalArea(spacing))*phi)

	cursorY := 0.
	for _, level := range levels {
		sort.SliceStable(level, func(a, b int) bool {
			return g.Less(opts.SortBy, level[a], level[b])
		})
		for _, row := range wrap(g, level, rowWidth, spacing) {
			cursorY = placeRow(g, row, cursorY, spacing)
		}
		cursorY += LEVEL_GAP
	}
	if len(islands) > 0 {
		placeRow(g, islands, cursorY, spacing)
	}
}

// Levels assigns every item reachable from a root to its BFS depth.
// Roots are items without incoming relations, or the first item when every
// item has one. The first visit of an item fixes its level. Unreached items
// are returned separately in input order.
func Levels(g *arrangegraph.Graph) (levels [][]int, islands []int) {
	children := make([][]int, len(g.Items))
	incoming := make([]int, len(g.Items))
	for _, e := range g.Edges {
		if e.IsLoop() {
			continue
		}
		children[e.Src] = append(children[e.Src], e.Dst)
		incoming[e.Dst]++
	}

	depth := make([]int, len(g.Items))
	var queue []int
	for i := range g.Items {
		depth[i] = -1
		if incoming[i] == 0 {
			depth[i] = 0
			queue = append(queue, i)
		}
	}
	if len(queue) == 0 {
		depth[0] = 0
		queue = append(queue, 0)
	}

	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		if depth[i] == len(levels) {
			levels = append(levels, nil)
		}
		levels[depth[i]] = append(levels[depth[i]], i)
		for _, c := range children[i] {
			if depth[c] == -1 {
				depth[c] = depth[i] + 1
				queue = append(queue, c)
			}
		}
	}

	for i, d := range depth {
		if d == -1 {
			islands = append(islands, i)
		}
	}
	return levels, islands
}

// wrap splits level into rows no wider than maxWidth. A row always takes at
// least one item.
func wrap(g *arrangegraph.Graph, level []int, maxWidth, spacing float64) [][]int {
	var rows [][]int
	var row []int
	width := 0.
	for _, i := range level {
		w := g.Items[i].Width
		if len(row) > 0 && width+spacing+w > maxWidth {
			rows = append(rows, row)
			row = nil
			width = 0
		}
		if len(row) > 0 {
			width += spacing
		}
		width += w
		row = append(row, i)
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

// placeRow centers row on x = 0 at y and returns the y of the next row.
func placeRow(g *arrangegraph.Graph, row []int, y, spacing float64) float64 {
	width := spacing * float64(len(row)-1)
	height := 0.
	for _, i := range row {
		width += g.Items[i].Width
		height = go2.Max(height, g.Items[i].Height)
	}

	x := -width / 2
	for _, i := range row {
		g.SetPosition(i, x, y)
		x += g.Items[i].Width + spacing
	}
	return y + height + spacing
}
