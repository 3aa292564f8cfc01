package arrangelib

import (
	"oss.terrastruct.com/arrange/arrangegraph"
	"oss.terrastruct.com/arrange/arrangelayouts/arrangeforce"
)

func init() {
	register(StrategyInfo{
		Name:      arrangegraph.StrategyOrganic,
		ShortHelp: "Runs a force simulation: related items attract, all items repel.",
		LongHelp: `Seeds from current positions, or a spiral when every item is at the origin.
Runs the iteration budget (default 200) with a cooling temperature and
separates overlapping items every iteration. Cancelling stops early with
the layout reached so far.`,
		layout: arrangeforce.Layout,
	})
}
