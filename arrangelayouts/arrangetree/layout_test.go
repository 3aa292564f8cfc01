package arrangetree_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/arrange/arrangegraph"
	"oss.terrastruct.com/arrange/arrangelayouts/arrangetree"
	"oss.terrastruct.com/arrange/lib/geo"
)

func items(n int) []arrangegraph.Item {
	out := make([]arrangegraph.Item, n)
	for i := range out {
		out[i] = arrangegraph.Item{ID: fmt.Sprint(i + 1)}
	}
	return out
}

func rel(src, dst string) arrangegraph.Relation {
	return arrangegraph.Relation{Source: src, Target: dst}
}

func run(items []arrangegraph.Item, relations []arrangegraph.Relation, opts arrangegraph.Options) []arrangegraph.Item {
	g := arrangegraph.NewGraph(items, relations)
	arrangetree.Layout(context.Background(), g, opts.Normalize())
	return g.Result()
}

func TestLayout(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		items     []arrangegraph.Item
		relations []arrangegraph.Relation
		direction arrangegraph.Direction
		exp       []*geo.Point
	}{
		{
			name:      "chain",
			items:     items(5),
			relations: []arrangegraph.Relation{rel("1", "2"), rel("2", "3")},
			exp: []*geo.Point{
				geo.NewPoint(-380, 0),
				geo.NewPoint(-110, 300),
				geo.NewPoint(-110, 600),
				geo.NewPoint(-110, 0),
				geo.NewPoint(160, 0),
			},
		},
		{
			name:      "chain_lr",
			items:     items(5),
			relations: []arrangegraph.Relation{rel("1", "2"), rel("2", "3")},
			direction: arrangegraph.DirectionLR,
			exp: []*geo.Point{
				geo.NewPoint(0, -350),
				geo.NewPoint(320, -100),
				geo.NewPoint(640, -100),
				geo.NewPoint(0, -100),
				geo.NewPoint(0, 150),
			},
		},
		{
			name:      "cycle",
			items:     items(2),
			relations: []arrangegraph.Relation{rel("1", "2"), rel("2", "1")},
			exp: []*geo.Point{
				geo.NewPoint(-110, 0),
				geo.NewPoint(-110, 300),
			},
		},
		{
			name:      "islands",
			items:     items(3),
			relations: []arrangegraph.Relation{rel("2", "3"), rel("3", "2"), rel("1", "1")},
			exp: []*geo.Point{
				geo.NewPoint(-110, 0),
				geo.NewPoint(-245, 300),
				geo.NewPoint(25, 300),
			},
		},
		{
			name: "wrap",
			items: []arrangegraph.Item{
				{ID: "1", Width: 300}, {ID: "2", Width: 300}, {ID: "3", Width: 300},
				{ID: "4", Width: 300}, {ID: "5", Width: 300}, {ID: "6", Width: 300},
			},
			exp: []*geo.Point{
				geo.NewPoint(-500, 0),
				geo.NewPoint(-150, 0),
				geo.NewPoint(200, 0),
				geo.NewPoint(-500, 250),
				geo.NewPoint(-150, 250),
				geo.NewPoint(200, 250),
			},
		},
		{
			name: "sort_by_label",
			items: []arrangegraph.Item{
				{ID: "1", Label: "b"}, {ID: "2", Label: "a"},
			},
			exp: []*geo.Point{
				geo.NewPoint(25, 0),
				geo.NewPoint(-245, 0),
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out := run(tc.items, tc.relations, arrangegraph.Options{Spacing: 50, Direction: tc.direction})
			for i, it := range out {
				assert.Equal(t, tc.items[i].ID, it.ID)
				assert.Equal(t, tc.exp[i], it.Position, it.ID)
			}
		})
	}
}

func TestLayoutMonotonic(t *testing.T) {
	t.Parallel()

	out := run(items(5), []arrangegraph.Relation{rel("1", "2"), rel("2", "3")}, arrangegraph.Options{Spacing: 40})
	assert.Greater(t, out[1].Position.Y, out[0].Position.Y)
	assert.Greater(t, out[2].Position.Y, out[1].Position.Y)

	out = run(items(5), []arrangegraph.Relation{rel("1", "2"), rel("2", "3")}, arrangegraph.Options{Spacing: 40, Direction: arrangegraph.DirectionLR})
	assert.Greater(t, out[1].Position.X, out[0].Position.X)
	assert.Greater(t, out[2].Position.X, out[1].Position.X)
	for _, it := range out {
		assert.Equal(t, arrangegraph.DEFAULT_WIDTH, it.Width)
		assert.Equal(t, arrangegraph.DEFAULT_HEIGHT, it.Height)
	}
}

func TestLayoutSortByID(t *testing.T) {
	t.Parallel()

	in := []arrangegraph.Item{{ID: "1", Label: "b"}, {ID: "2", Label: "a"}}
	out := run(in, nil, arrangegraph.Options{Spacing: 50, SortBy: arrangegraph.SortByID})
	assert.Less(t, out[0].Position.X, out[1].Position.X)
}

func TestLevels(t *testing.T) {
	t.Parallel()

	g := arrangegraph.NewGraph(items(6), []arrangegraph.Relation{
		rel("1", "2"),
		rel("2", "3"),
		rel("1", "3"),
		rel("5", "6"),
		rel("6", "5"),
		rel("4", "ghost"),
	})
	levels, islands := arrangetree.Levels(g)
	assert.Equal(t, [][]int{{0, 3}, {1, 2}}, levels)
	assert.Equal(t, []int{4, 5}, islands)
}
