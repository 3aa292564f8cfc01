package arrangegraph

import (
	"oss.terrastruct.com/arrange/lib/geo"
	"oss.terrastruct.com/arrange/lib/go2"
)

// Graph is the working copy a strategy mutates.
// It never shares memory with the caller's items.
type Graph struct {
	Items []Item
	// Edges are relations resolved to item indices.
	// Relations with a missing endpoint are dropped.
	Edges []Edge

	index map[string]int
}

type Edge struct {
	Src, Dst int
}

func (e Edge) IsLoop() bool {
	return e.Src == e.Dst
}

func NewGraph(items []Item, relations []Relation) *Graph {
	g := &Graph{
		Items: make([]Item, len(items)),
		index: make(map[string]int, len(items)),
	}
	for i, it := range items {
		it = it.Copy()
		if !validExtent(it.Width) {
			it.Width = DEFAULT_WIDTH
		}
		if !validExtent(it.Height) {
			it.Height = DEFAULT_HEIGHT
		}
		if it.Position == nil || !it.Position.IsFinite() {
			it.Position = geo.NewPoint(0, 0)
		}
		g.Items[i] = it
		if _, ok := g.index[it.ID]; !ok {
			g.index[it.ID] = i
		}
	}
	for _, r := range relations {
		src, ok := g.index[r.Source]
		if !ok {
			continue
		}
		dst, ok := g.index[r.Target]
		if !ok {
			continue
		}
		g.Edges = append(g.Edges, Edge{src, dst})
	}
	return g
}

func validExtent(v float64) bool {
	return v > 0 && geo.IsFinite(v)
}

// Index returns the index of the first item with id.
func (g *Graph) Index(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// Degrees counts the edges touching each item. A loop counts once.
func (g *Graph) Degrees() []int {
	deg := make([]int, len(g.Items))
	for _, e := range g.Edges {
		deg[e.Src]++
		if !e.IsLoop() {
			deg[e.Dst]++
		}
	}
	return deg
}

// SetPosition moves item i's top-left corner to (x, y).
func (g *Graph) SetPosition(i int, x, y float64) {
	g.Items[i].Position = geo.NewPoint(x, y)
}

// Less orders items i and j by key, falling back to index order.
func (g *Graph) Less(key SortKey, i, j int) bool {
	a, b := g.Items[i], g.Items[j]
	if key != SortByID && a.Label != b.Label {
		return a.Label < b.Label
	}
	if a.ID != b.ID {
		return a.ID < b.ID
	}
	return i < j
}

// TotalArea sums the areas of all items grown by margin on both axes.
func (g *Graph) TotalArea(margin float64) float64 {
	return go2.Sum(go2.Map(g.Items, func(it Item) float64 {
		return (it.Width + margin) * (it.Height + margin)
	}))
}

// Transpose swaps the axes of every item.
func (g *Graph) Transpose() {
	for i := range g.Items {
		it := &g.Items[i]
		it.Width, it.Height = it.Height, it.Width
		it.Position.Transpose()
	}
}

// Result returns copies of the working items.
func (g *Graph) Result() []Item {
	out := make([]Item, len(g.Items))
	for i, it := range g.Items {
		out[i] = it.Copy()
	}
	return out
}

// BoundingBox returns the smallest box enclosing all items.
// It returns nil for no items.
func BoundingBox(items []Item) *geo.Box {
	var bb *geo.Box
	for _, it := range items {
		bb = bb.Union(it.Box())
	}
	return bb
}
