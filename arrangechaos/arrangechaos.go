// Package arrangechaos generates random layout documents.
//
// Documents deliberately include bad input: missing and negative extents,
// duplicate ids, self relations, relations to unknown ids, coincident
// positions and invalid spacing.
package arrangechaos

import (
	mathrand "math/rand"
	"time"

	"oss.terrastruct.com/xrand"

	"oss.terrastruct.com/arrange/arrangegraph"
	"oss.terrastruct.com/arrange/lib/geo"
)

func GenDocument(maxi int) *arrangegraph.Document {
	return GenDocumentSeed(time.Now().UnixNano(), maxi)
}

// GenDocumentSeed is GenDocument with a fixed seed. The ids still come from
// xrand and so differ between runs.
func GenDocumentSeed(seed int64, maxi int) *arrangegraph.Document {
	gs := &genState{
		rand: mathrand.New(mathrand.NewSource(seed)),
		doc:  &arrangegraph.Document{},
	}
	gs.gen(maxi)
	return gs.doc
}

type genState struct {
	rand *mathrand.Rand
	doc  *arrangegraph.Document

	ids []string
}

func (gs *genState) gen(maxi int) {
	if maxi < 1 {
		maxi = 1
	}
	maxi = gs.rand.Intn(maxi) + 1

	gs.doc.Strategy = arrangegraph.Strategies[gs.rand.Intn(len(arrangegraph.Strategies))]
	gs.doc.Options = gs.options()

	for i := 0; i < maxi; i++ {
		switch gs.roll(40, 50, 10) {
		case 0:
			gs.item()
		case 1:
			gs.relation()
		case 2:
			gs.doc.Relations = append(gs.doc.Relations, arrangegraph.Relation{
				Source: gs.randomID(),
				Target: xrand.Base64(8),
			})
		}
	}
	if len(gs.doc.Items) == 0 {
		gs.item()
	}
}

func (gs *genState) options() arrangegraph.Options {
	opts := arrangegraph.Options{
		Spacing:    float64(gs.rand.Intn(120)),
		Iterations: gs.rand.Intn(60),
	}
	if gs.roll(90, 10) == 1 {
		opts.Spacing = -opts.Spacing
	}
	if gs.roll(50, 50) == 1 {
		opts.Direction = arrangegraph.DirectionLR
	}
	if gs.roll(50, 50) == 1 {
		opts.SortBy = arrangegraph.SortByID
	}
	return opts
}

func (gs *genState) item() {
	id := xrand.Base64(8)
	if len(gs.ids) > 0 && gs.roll(95, 5) == 1 {
		id = gs.randomID()
	}
	gs.ids = append(gs.ids, id)

	it := arrangegraph.Item{
		ID:     id,
		Width:  gs.extent(),
		Height: gs.extent(),
	}
	if gs.roll(40, 60) == 1 {
		it.Label = xrand.Base64(4)
	}
	if gs.roll(50, 50) == 1 {
		it.Category = []string{"a", "b", "c"}[gs.rand.Intn(3)]
	}
	switch gs.roll(50, 30, 20) {
	case 1:
		it.Position = geo.NewPoint(gs.coord(), gs.coord())
	case 2:
		it.Position = geo.NewPoint(0, 0)
	}
	gs.doc.Items = append(gs.doc.Items, it)
}

func (gs *genState) relation() {
	if len(gs.ids) == 0 {
		return
	}
	src := gs.randomID()
	dst := gs.randomID()
	gs.doc.Relations = append(gs.doc.Relations, arrangegraph.Relation{Source: src, Target: dst})
}

func (gs *genState) randomID() string {
	if len(gs.ids) == 0 {
		return xrand.Base64(8)
	}
	return gs.ids[gs.rand.Intn(len(gs.ids))]
}

func (gs *genState) extent() float64 {
	switch gs.roll(80, 10, 10) {
	case 0:
		return float64(gs.rand.Intn(500) + 1)
	case 1:
		return 0
	default:
		return -float64(gs.rand.Intn(100))
	}
}

// coord snaps to a coarse grid so coincident positions are common.
func (gs *genState) coord() float64 {
	return float64(gs.rand.Intn(10)-5) * 100
}

// roll picks an index with probability proportional to its weight.
func (gs *genState) roll(weights ...int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	n := gs.rand.Intn(total)
	for i, w := range weights {
		if n < w {
			return i
		}
		n -= w
	}
	return len(weights) - 1
}
