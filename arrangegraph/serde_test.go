package arrangegraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/arrange/arrangegraph"
	"oss.terrastruct.com/arrange/lib/geo"
)

const jsonDoc = `{
  "strategy": "hierarchy",
  "options": {"spacing": 40, "direction": "LR", "sortBy": "id"},
  "items": [
    {"id": "1", "width": 100, "height": 80, "category": "db", "label": "users"},
    {"id": "2", "position": {"x": 10, "y": -4}}
  ],
  "relations": [{"source": "1", "target": "2"}],
  "colors": {"db": "#ff8800"}
}`

const yamlDoc = `strategy: hierarchy
options:
  spacing: 40
  direction: LR
  sortBy: id
items:
  - id: "1"
    width: 100
    height: 80
    category: db
    label: users
  - id: "2"
    position: {x: 10, y: -4}
relations:
  - source: "1"
    target: "2"
colors:
  db: "#ff8800"
`

const tomlDoc = `strategy = "hierarchy"

[options]
spacing = 40.0
direction = "LR"
sortBy = "id"

[[items]]
id = "1"
width = 100.0
height = 80.0
category = "db"
label = "users"

[[items]]
id = "2"
position = { x = 10.0, y = -4.0 }

[[relations]]
source = "1"
target = "2"

[colors]
db = "#ff8800"
`

func TestParseDocument(t *testing.T) {
	t.Parallel()

	exp := &arrangegraph.Document{
		Strategy: arrangegraph.StrategyHierarchy,
		Options: arrangegraph.Options{
			Spacing:   40,
			Direction: arrangegraph.DirectionLR,
			SortBy:    arrangegraph.SortByID,
		},
		Items: []arrangegraph.Item{
			{ID: "1", Width: 100, Height: 80, Category: "db", Label: "users"},
			{ID: "2", Position: geo.NewPoint(10, -4)},
		},
		Relations: []arrangegraph.Relation{{Source: "1", Target: "2"}},
		Colors:    map[string]string{"db": "#ff8800"},
	}

	testCases := []struct {
		path string
		data string
	}{
		{"doc.json", jsonDoc},
		{"doc.yaml", yamlDoc},
		{"doc.yml", yamlDoc},
		{"doc.toml", tomlDoc},
		{"doc", jsonDoc},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()

			doc, err := arrangegraph.ParseDocument(tc.path, []byte(tc.data))
			require.NoError(t, err)
			assert.Equal(t, exp, doc)
		})
	}
}

func TestParseDocumentErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		path   string
		data   string
		expErr string
	}{
		{
			name:   "unknown_strategy",
			path:   "x.json",
			data:   `{"strategy": "spiral", "items": []}`,
			expErr: `unknown strategy "spiral", expected one of grid, radial, hierarchy or organic`,
		},
		{
			name:   "unknown_direction",
			path:   "x.yaml",
			data:   "options:\n  direction: sideways\nitems: []\n",
			expErr: `unknown direction "sideways", expected TB or LR`,
		},
		{
			name:   "unknown_sort_key",
			path:   "x.json",
			data:   `{"options": {"sortBy": "bogus"}, "items": []}`,
			expErr: `unknown sort key "bogus", expected label or id`,
		},
		{
			name:   "unknown_field",
			path:   "x.json",
			data:   `{"nodes": []}`,
			expErr: `json: unknown field "nodes"`,
		},
		{
			name:   "unknown_toml_key",
			path:   "x.toml",
			data:   "padding = 3\n",
			expErr: `unknown key "padding"`,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := arrangegraph.ParseDocument(tc.path, []byte(tc.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to parse "+tc.path)
			assert.Contains(t, err.Error(), tc.expErr)
		})
	}
}

func TestParseDocumentCanonicalizes(t *testing.T) {
	t.Parallel()

	doc, err := arrangegraph.ParseDocument("x.json", []byte(`{"strategy": " Radial", "options": {"direction": "lr", "sortBy": "ID"}, "items": []}`))
	require.NoError(t, err)
	assert.Equal(t, arrangegraph.StrategyRadial, doc.Strategy)
	assert.Equal(t, arrangegraph.DirectionLR, doc.Options.Direction)
	assert.Equal(t, arrangegraph.SortByID, doc.Options.SortBy)
	assert.Equal(t, arrangegraph.DirectionLR, doc.Options.Normalize().Direction)

	doc, err = arrangegraph.ParseDocument("x.yaml", []byte("items: []\n"))
	require.NoError(t, err)
	assert.Equal(t, arrangegraph.Direction(""), doc.Options.Direction)
	assert.Equal(t, arrangegraph.SortKey(""), doc.Options.SortBy)
}

func TestMarshalRoundTrip(t *testing.T) {
	t.Parallel()

	items := []arrangegraph.Item{
		{ID: "a", Width: 10, Height: 20, Position: geo.NewPoint(0, 0)},
		{ID: "b", Width: 30, Height: 40, Position: geo.NewPoint(50, 60)},
	}
	res := arrangegraph.NewResult(arrangegraph.StrategyGrid, items)
	assert.Equal(t, geo.NewBox(geo.NewPoint(0, 0), 80, 100), res.Bounds)

	for _, f := range []arrangegraph.Format{arrangegraph.FormatJSON, arrangegraph.FormatYAML, arrangegraph.FormatTOML} {
		b, err := arrangegraph.Marshal(f, arrangegraph.Document{Items: items})
		require.NoError(t, err, f)
		doc, err := arrangegraph.ParseDocument("x."+string(f), b)
		require.NoError(t, err, f)
		assert.Equal(t, items, doc.Items, f)
	}
}
