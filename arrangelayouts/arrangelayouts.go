// Package arrangelayouts holds the layout strategies.
//
// Every strategy takes a working graph built by arrangegraph.NewGraph and
// normalized options, overwrites item positions in place and never touches
// extents. Strategies hold no state between calls.
package arrangelayouts

import (
	"context"

	"oss.terrastruct.com/arrange/arrangegraph"
)

type LayoutFunc func(context.Context, *arrangegraph.Graph, arrangegraph.Options)
