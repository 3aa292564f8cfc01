// Package arrangecli implements the arrange command.
package arrangecli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cdr.dev/slog"
	"github.com/spf13/pflag"

	"oss.terrastruct.com/arrange/arrangegraph"
	"oss.terrastruct.com/arrange/lib/go2"
	"oss.terrastruct.com/arrange/lib/log"
	"oss.terrastruct.com/arrange/lib/version"
	"oss.terrastruct.com/arrange/lib/xmain"
)

// DEFAULT_MAX_ITEMS caps the documents arrange serve accepts.
const DEFAULT_MAX_ITEMS = 2000

func Run(ctx context.Context, ms *xmain.State) (err error) {
	strategyFlag := ms.Opts.String("ARRANGE_STRATEGY", "strategy", "s", string(arrangegraph.StrategyGrid), "the layout strategy: grid, radial, hierarchy or organic. Defaults to the strategy of the input document, then grid")
	spacingFlag, err := ms.Opts.Float64("ARRANGE_SPACING", "spacing", "", arrangegraph.DEFAULT_SPACING, "gap between items. Defaults to the spacing of the input document, then 50")
	if err != nil {
		return err
	}
	directionFlag := ms.Opts.String("ARRANGE_DIRECTION", "direction", "", string(arrangegraph.DirectionTB), "axis of the hierarchy strategy: TB (top to bottom) or LR (left to right)")
	sortByFlag := ms.Opts.String("ARRANGE_SORT_BY", "sort-by", "", string(arrangegraph.SortByLabel), "tie-break key of the grid and hierarchy strategies: label or id")
	iterationsFlag, err := ms.Opts.Int64("ARRANGE_ITERATIONS", "iterations", "i", arrangegraph.DEFAULT_ITERATIONS, "iteration budget of the organic strategy")
	if err != nil {
		return err
	}
	timeoutFlag, err := ms.Opts.Int64("ARRANGE_TIMEOUT", "timeout", "", 120, "the maximum number of seconds a layout runs for. An organic layout is cut short, not failed")
	if err != nil {
		return err
	}
	watchFlag, err := ms.Opts.Bool("ARRANGE_WATCH", "watch", "w", false, "watch for changes to input and lay it out again on every change")
	if err != nil {
		return err
	}
	previewFlag := ms.Opts.String("ARRANGE_PREVIEW", "preview", "", "", "also render a PNG preview of the result to this path")
	openFlag, err := ms.Opts.Bool("", "open", "", false, "open the preview once written")
	if err != nil {
		return err
	}
	hostFlag := ms.Opts.String("HOST", "host", "", "localhost", "host listening address of serve")
	portFlag := ms.Opts.String("PORT", "port", "p", "8080", "port listening address of serve")
	maxConnsFlag, err := ms.Opts.Int64("ARRANGE_MAX_CONNS", "max-conns", "", 64, "maximum number of simultaneous connections serve accepts. 0 means no limit")
	if err != nil {
		return err
	}
	maxItemsFlag, err := ms.Opts.Int64("ARRANGE_MAX_ITEMS", "max-items", "", DEFAULT_MAX_ITEMS, "maximum number of items serve lays out per request. 0 means no limit")
	if err != nil {
		return err
	}
	debugFlag, err := ms.Opts.Bool("DEBUG", "debug", "d", false, "print debug logs.")
	if err != nil {
		ms.Log.Warn.Printf("Invalid DEBUG flag value ignored")
		debugFlag = go2.Pointer(false)
	}
	versionFlag, err := ms.Opts.Bool("", "version", "v", false, "get the version")
	if err != nil {
		return err
	}

	err = ms.Opts.Flags.Parse(ms.Opts.Args)
	if !errors.Is(err, pflag.ErrHelp) && err != nil {
		return xmain.UsageErrorf("failed to parse flags: %v", err)
	}
	if errors.Is(err, pflag.ErrHelp) {
		help(ms)
		return nil
	}

	if *debugFlag {
		ctx = log.Leveled(ctx, slog.LevelDebug)
		ms.Env.Setenv("DEBUG", "1")
	}
	os.Setenv("ARRANGE_TIMEOUT", fmt.Sprintf("%d", *timeoutFlag))

	cfg, err := newLayoutConfig(ms, layoutFlags{
		strategy:   strategyFlag,
		spacing:    spacingFlag,
		direction:  directionFlag,
		sortBy:     sortByFlag,
		iterations: iterationsFlag,
		timeout:    timeoutFlag,
	})
	if err != nil {
		return err
	}
	cfg.previewPath = *previewFlag
	cfg.open = *openFlag

	args := ms.Opts.Flags.Args()
	if len(args) > 0 {
		switch args[0] {
		case "strategies":
			return strategiesCmd(ms)
		case "serve":
			if len(args) > 1 {
				return xmain.UsageErrorf("serve subcommand accepts no arguments")
			}
			if *maxItemsFlag < 0 {
				return xmain.UsageErrorf("--max-items must not be negative.\nYou provided: %d", *maxItemsFlag)
			}
			return serveCmd(ctx, ms, *hostFlag, *portFlag, int(*maxConnsFlag), ServeOptions{
				Timeout:  cfg.timeout,
				MaxItems: int(*maxItemsFlag),
			})
		case "version":
			if len(args) > 1 {
				return xmain.UsageErrorf("version subcommand accepts no arguments")
			}
			fmt.Fprintln(ms.Stdout, version.Version)
			return nil
		}
	}

	if len(args) == 0 {
		if *versionFlag {
			fmt.Fprintln(ms.Stdout, version.Version)
			return nil
		}
		help(ms)
		return nil
	} else if len(args) >= 3 {
		return xmain.UsageErrorf("too many arguments passed")
	}

	inputPath := args[0]
	var outputPath string
	if len(args) >= 2 {
		outputPath = args[1]
	} else if inputPath == "-" {
		outputPath = "-"
	} else {
		outputPath = renameExt(inputPath, ".layout.json")
	}
	if inputPath != "-" {
		inputPath, err = filepath.Abs(inputPath)
		if err != nil {
			return err
		}
	}
	if outputPath != "-" {
		outputPath, err = filepath.Abs(outputPath)
		if err != nil {
			return err
		}
	}

	if *watchFlag {
		if inputPath == "-" {
			return xmain.UsageErrorf("-w[atch] cannot be combined with reading from stdin")
		}
		w := newWatcher(ms, cfg, inputPath, outputPath)
		return w.run(ctx)
	}

	_, err = layoutFile(ctx, ms, cfg, inputPath, outputPath)
	return err
}

// renameExt replaces the extension of fp with newExt.
func renameExt(fp string, newExt string) string {
	ext := filepath.Ext(fp)
	if ext == "" {
		return fp + newExt
	}
	return strings.TrimSuffix(fp, ext) + newExt
}

func durationSeconds(s int64) time.Duration {
	return time.Duration(s) * time.Second
}
