// Package arrangegrid packs items into balanced columns, one band per category.
package arrangegrid

import (
	"context"
	"math"
	"sort"

	"oss.terrastruct.com/arrange/arrangegraph"
	"oss.terrastruct.com/arrange/lib/go2"
)

const (
	MIN_COLUMN_WIDTH = 250.
	// Widens the ideal container toward landscape.
	LANDSCAPE_FACTOR = 1.5
)

// Layout stacks categories top to bottom in lexical order.
// Within a category, items are taken tallest first and each one drops into
// the currently shortest column.
func Layout(ctx context.Context, g *arrangegraph.Graph, opts arrangegraph.Options) {
	if len(g.Items) == 0 {
		return
	}
	spacing := opts.Spacing

	columns := columnCount(g, spacing)
	pitch := MIN_COLUMN_WIDTH
	for _, it := range g.Items {
		pitch = go2.Max(pitch, it.Width)
	}
	pitch += spacing

	byCategory := make(map[string][]int)
	var categories []string
	for i, it := range g.Items {
		c := it.GetCategory()
		if _, ok := byCategory[c]; !ok {
			categories = append(categories, c)
		}
		byCategory[c] = append(byCategory[c], i)
	}
	sort.Strings(categories)

	cursorY := 0.
	for _, c := range categories {
		idxs := byCategory[c]
		sort.SliceStable(idxs, func(a, b int) bool {
			ia, ib := g.Items[idxs[a]], g.Items[idxs[b]]
			if ia.Height != ib.Height {
				return ia.Height > ib.Height
			}
			return g.Less(opts.SortBy, idxs[a], idxs[b])
		})

		shelves := make([]float64, columns)
		for _, i := range idxs {
			col := shortest(shelves)
			g.SetPosition(i, float64(col)*pitch, cursorY+shelves[col])
			shelves[col] += g.Items[i].Height + spacing
		}

		tallest := 0.
		for _, h := range shelves {
			tallest = go2.Max(tallest, h)
		}
		cursorY += tallest + spacing
	}
}

func columnCount(g *arrangegraph.Graph, spacing float64) int {
	idealWidth := math.Max(math.Sqrt(g.TotalArea(spacing))*LANDSCAPE_FACTOR, MIN_COLUMN_WIDTH)
	columns := int(math.Floor(idealWidth / MIN_COLUMN_WIDTH))
	if columns < 1 {
		return 1
	}
	return columns
}

// shortest returns the lowest index among the shortest shelves.
func shortest(shelves []float64) int {
	col := 0
	for i, h := range shelves {
		if h < shelves[col] {
			col = i
		}
	}
	return col
}
