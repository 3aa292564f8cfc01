package arrangecli

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"oss.terrastruct.com/arrange/arrangegraph"
	"oss.terrastruct.com/arrange/arrangelib"
	"oss.terrastruct.com/arrange/lib/version"
	"oss.terrastruct.com/arrange/lib/xmain"
)

func help(ms *xmain.State) {
	fmt.Fprintf(ms.Stdout, `%[1]s %[2]s
Usage:
  %[1]s [--strategy=grid] [--spacing=50] [--watch=false] file.json [file.layout.json]
  %[1]s strategies [name]
  %[1]s serve [--host=localhost] [--port=8080] [--max-items=2000]

%[1]s lays out the items of a JSON, YAML or TOML document and writes the
positioned items with their bounding box. The output defaults to
file.layout.json and its format follows its extension.

Use - to have %[1]s read from stdin or write to stdout.

Flags:
%[3]s

Subcommands:
  %[1]s strategies - Lists available strategies with short help
  %[1]s strategies [name] - Display long help for a particular strategy
  %[1]s serve - Serve layouts over HTTP: POST /v1/layout, GET /v1/strategies, GET /healthz
  %[1]s version - Print the version
`, filepath.Base(ms.Name), version.Version, ms.Opts.Help())
}

func strategiesCmd(ms *xmain.State) error {
	args := ms.Opts.Flags.Args()
	switch len(args) {
	case 1:
		shortStrategyHelp(ms)
		return nil
	case 2:
		s, err := arrangegraph.ParseStrategy(args[1])
		if err != nil {
			return xmain.UsageErrorf("%v", err)
		}
		info, _ := arrangelib.FindStrategy(s)
		fmt.Fprintf(ms.Stdout, "%s - %s\n\n%s\n", info.Name, info.ShortHelp, info.LongHelp)
		return nil
	default:
		return xmain.UsageErrorf("strategies subcommand accepts at most one argument")
	}
}

func shortStrategyHelp(ms *xmain.State) {
	b := &strings.Builder{}
	tw := tabwriter.NewWriter(b, 0, 0, 2, ' ', 0)
	for _, info := range arrangelib.Strategies() {
		fmt.Fprintf(tw, "%s\t%s\n", info.Name, info.ShortHelp)
	}
	tw.Flush()

	fmt.Fprintf(ms.Stdout, `Available strategies:
%s
Usage:
  %[2]s --strategy=[name] file.json
  %[2]s strategies [name]
`, b.String(), filepath.Base(ms.Name))
}
