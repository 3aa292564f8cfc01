package arrangelib

import (
	"oss.terrastruct.com/arrange/arrangegraph"
	"oss.terrastruct.com/arrange/arrangelayouts/arrangetree"
)

func init() {
	register(StrategyInfo{
		Name:      arrangegraph.StrategyHierarchy,
		ShortHelp: "Lays items out in levels by distance from the roots.",
		LongHelp: `Roots are items without incoming relations. Each level is sorted, wrapped
into centered rows and placed below the previous one. Unreachable items
share a final row. Direction LR runs levels left to right.`,
		layout: arrangetree.Layout,
	})
}
