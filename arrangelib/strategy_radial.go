package arrangelib

import (
	"oss.terrastruct.com/arrange/arrangegraph"
	"oss.terrastruct.com/arrange/arrangelayouts/arrangeradial"
)

func init() {
	register(StrategyInfo{
		Name:      arrangegraph.StrategyRadial,
		ShortHelp: "Puts the most connected item at the origin and the rest on rings.",
		LongHelp: `Items are ranked by the number of relations touching them, ties in input
order. Rings are spaced by max(300, 220 + spacing) and filled outward at
equal angles starting at 0.`,
		layout: arrangeradial.Layout,
	})
}
