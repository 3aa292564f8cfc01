// Package arrangelib is the entry point of the layout engine.
//
// Layout never returns an error and never logs: bad input degrades to
// defaults and an unknown strategy leaves positions untouched.
package arrangelib

import (
	"context"
	"time"

	"oss.terrastruct.com/arrange/arrangegraph"
	"oss.terrastruct.com/arrange/arrangelayouts"
)

// strategies contains the bundled strategies.
//
// See strategy_* files for their registration.
var strategies = make(map[arrangegraph.Strategy]StrategyInfo)

type StrategyInfo struct {
	Name      arrangegraph.Strategy `json:"name"`
	ShortHelp string                `json:"shortHelp"`
	LongHelp  string                `json:"longHelp"`

	layout arrangelayouts.LayoutFunc
}

func register(info StrategyInfo) {
	strategies[info.Name] = info
}

// Strategies lists every registered strategy in canonical order.
func Strategies() []StrategyInfo {
	var infos []StrategyInfo
	for _, s := range arrangegraph.Strategies {
		info, ok := strategies[s]
		if ok {
			infos = append(infos, info)
		}
	}
	return infos
}

func FindStrategy(s arrangegraph.Strategy) (StrategyInfo, bool) {
	info, ok := strategies[s]
	return info, ok
}

// Layout positions copies of items with strategy. items and relations are
// never modified. The result has the same ids and extents as items, in the
// same order, with missing extents replaced by defaults.
func Layout(ctx context.Context, items []arrangegraph.Item, relations []arrangegraph.Relation, strategy arrangegraph.Strategy, opts arrangegraph.Options) []arrangegraph.Item {
	if len(items) == 0 {
		return []arrangegraph.Item{}
	}

	g := arrangegraph.NewGraph(items, relations)
	if info, ok := strategies[strategy]; ok {
		info.layout(ctx, g, opts.Normalize())
	}
	return g.Result()
}

type Result struct {
	Items    []arrangegraph.Item
	Duration time.Duration
}

// LayoutAsync runs Layout on its own goroutine. The returned channel
// receives exactly one Result and is then closed.
func LayoutAsync(ctx context.Context, items []arrangegraph.Item, relations []arrangegraph.Relation, strategy arrangegraph.Strategy, opts arrangegraph.Options) <-chan Result {
	items = cloneItems(items)
	relations = append([]arrangegraph.Relation(nil), relations...)

	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		start := time.Now()
		out := Layout(ctx, items, relations, strategy, opts)
		ch <- Result{
			Items:    out,
			Duration: time.Since(start),
		}
	}()
	return ch
}

func cloneItems(items []arrangegraph.Item) []arrangegraph.Item {
	out := make([]arrangegraph.Item, len(items))
	for i, it := range items {
		out[i] = it.Copy()
	}
	return out
}
