package arrangegraph

import (
	"fmt"
	"strings"

	"oss.terrastruct.com/arrange/lib/geo"
	"oss.terrastruct.com/arrange/lib/go2"
)

const (
	DEFAULT_WIDTH    = 220.
	DEFAULT_HEIGHT   = 200.
	DEFAULT_SPACING  = 50.
	DEFAULT_CATEGORY = "default"

	DEFAULT_ITERATIONS = 200
)

// Item is a rectangle to be positioned.
// Position is the top-left corner with y growing downward.
type Item struct {
	ID       string     `json:"id" yaml:"id" toml:"id"`
	Width    float64    `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty"`
	Height   float64    `json:"height,omitempty" yaml:"height,omitempty" toml:"height,omitempty"`
	Category string     `json:"category,omitempty" yaml:"category,omitempty" toml:"category,omitempty"`
	Label    string     `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Position *geo.Point `json:"position,omitempty" yaml:"position,omitempty" toml:"position,omitempty"`
}

func (it Item) Copy() Item {
	it.Position = it.Position.Copy()
	return it
}

// Box returns the rectangle the item occupies.
func (it Item) Box() *geo.Box {
	tl := geo.NewPoint(0, 0)
	if it.Position != nil {
		tl = it.Position.Copy()
	}
	return geo.NewBox(tl, it.Width, it.Height)
}

// Center returns the center of the item's rectangle.
func (it Item) Center() *geo.Point {
	return it.Box().Center()
}

func (it Item) GetCategory() string {
	if it.Category == "" {
		return DEFAULT_CATEGORY
	}
	return it.Category
}

// Relation is a directed reference between two item ids.
type Relation struct {
	Source string `json:"source" yaml:"source" toml:"source"`
	Target string `json:"target" yaml:"target" toml:"target"`
}

type Strategy string

const (
	StrategyGrid      Strategy = "grid"
	StrategyRadial    Strategy = "radial"
	StrategyHierarchy Strategy = "hierarchy"
	StrategyOrganic   Strategy = "organic"
)

var Strategies = []Strategy{
	StrategyGrid,
	StrategyRadial,
	StrategyHierarchy,
	StrategyOrganic,
}

func ParseStrategy(s string) (Strategy, error) {
	st := Strategy(strings.ToLower(strings.TrimSpace(s)))
	if go2.Contains(Strategies, st) {
		return st, nil
	}
	return "", fmt.Errorf("unknown strategy %q, expected one of grid, radial, hierarchy or organic", s)
}

type Direction string

const (
	DirectionTB Direction = "TB"
	DirectionLR Direction = "LR"
)

func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "TB":
		return DirectionTB, nil
	case "LR":
		return DirectionLR, nil
	}
	return "", fmt.Errorf("unknown direction %q, expected TB or LR", s)
}

type SortKey string

const (
	SortByLabel SortKey = "label"
	SortByID    SortKey = "id"
)

func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "label":
		return SortByLabel, nil
	case "id":
		return SortByID, nil
	}
	return "", fmt.Errorf("unknown sort key %q, expected label or id", s)
}

type Options struct {
	Spacing    float64   `json:"spacing" yaml:"spacing" toml:"spacing"`
	Direction  Direction `json:"direction,omitempty" yaml:"direction,omitempty" toml:"direction,omitempty"`
	SortBy     SortKey   `json:"sortBy,omitempty" yaml:"sortBy,omitempty" toml:"sortBy,omitempty"`
	Iterations int       `json:"iterations,omitempty" yaml:"iterations,omitempty" toml:"iterations,omitempty"`
}

// Normalize returns a copy of opts with every unset or invalid field
// replaced by its default.
func (opts Options) Normalize() Options {
	if opts.Spacing <= 0 || !geo.IsFinite(opts.Spacing) {
		opts.Spacing = DEFAULT_SPACING
	}
	if opts.Direction != DirectionLR {
		opts.Direction = DirectionTB
	}
	if opts.SortBy != SortByID {
		opts.SortBy = SortByLabel
	}
	if opts.Iterations <= 0 {
		opts.Iterations = DEFAULT_ITERATIONS
	}
	return opts
}
