package arrangelib

import (
	"oss.terrastruct.com/arrange/arrangegraph"
	"oss.terrastruct.com/arrange/arrangelayouts/arrangegrid"
)

func init() {
	register(StrategyInfo{
		Name:      arrangegraph.StrategyGrid,
		ShortHelp: "Packs items into balanced columns, one band per category.",
		LongHelp: `Categories are stacked top to bottom in lexical order. Within a category
items are placed tallest first, each at the top of the currently shortest
column. Items without a category belong to "default".`,
		layout: arrangegrid.Layout,
	})
}
