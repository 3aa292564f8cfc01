package arrangecli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"time"

	"cdr.dev/slog"

	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/arrange/arrangegraph"
	"oss.terrastruct.com/arrange/arrangelib"
	"oss.terrastruct.com/arrange/arrangeplot"
	"oss.terrastruct.com/arrange/lib/env"
	"oss.terrastruct.com/arrange/lib/log"
	"oss.terrastruct.com/arrange/lib/xbrowser"
	"oss.terrastruct.com/arrange/lib/xmain"
)

type layoutFlags struct {
	strategy   *string
	spacing    *float64
	direction  *string
	sortBy     *string
	iterations *int64
	timeout    *int64
}

// layoutConfig holds the options given on the command line. A nil field was
// not set by flag or environment and defers to the input document.
type layoutConfig struct {
	strategy   *arrangegraph.Strategy
	spacing    *float64
	direction  *arrangegraph.Direction
	sortBy     *arrangegraph.SortKey
	iterations *int

	timeout     time.Duration
	previewPath string
	open        bool
}

func newLayoutConfig(ms *xmain.State, f layoutFlags) (*layoutConfig, error) {
	cfg := &layoutConfig{
		timeout: durationSeconds(*f.timeout),
	}
	if ms.Opts.Changed("strategy") {
		s, err := arrangegraph.ParseStrategy(*f.strategy)
		if err != nil {
			return nil, xmain.UsageErrorf("-s[trategy]: %v", err)
		}
		cfg.strategy = &s
	}
	if ms.Opts.Changed("spacing") {
		if *f.spacing <= 0 {
			return nil, xmain.UsageErrorf("--spacing must be positive.\nYou provided: %v", *f.spacing)
		}
		cfg.spacing = f.spacing
	}
	if ms.Opts.Changed("direction") {
		d, err := arrangegraph.ParseDirection(*f.direction)
		if err != nil {
			return nil, xmain.UsageErrorf("--direction: %v", err)
		}
		cfg.direction = &d
	}
	if ms.Opts.Changed("sort-by") {
		k, err := arrangegraph.ParseSortKey(*f.sortBy)
		if err != nil {
			return nil, xmain.UsageErrorf("--sort-by: %v", err)
		}
		cfg.sortBy = &k
	}
	if ms.Opts.Changed("iterations") {
		if *f.iterations <= 0 {
			return nil, xmain.UsageErrorf("-i[terations] must be positive.\nYou provided: %d", *f.iterations)
		}
		n := int(*f.iterations)
		cfg.iterations = &n
	}
	return cfg, nil
}

// apply merges the command line over doc.
func (cfg *layoutConfig) apply(doc *arrangegraph.Document) (arrangegraph.Strategy, arrangegraph.Options) {
	strategy := doc.Strategy
	if cfg.strategy != nil {
		strategy = *cfg.strategy
	}
	if strategy == "" {
		strategy = arrangegraph.StrategyGrid
	}

	opts := doc.Options
	if cfg.spacing != nil {
		opts.Spacing = *cfg.spacing
	}
	if cfg.direction != nil {
		opts.Direction = *cfg.direction
	}
	if cfg.sortBy != nil {
		opts.SortBy = *cfg.sortBy
	}
	if cfg.iterations != nil {
		opts.Iterations = *cfg.iterations
	}
	return strategy, opts.Normalize()
}

// layoutFile lays out the document at inputPath and writes the result to
// outputPath, plus the preview when configured.
func layoutFile(ctx context.Context, ms *xmain.State, cfg *layoutConfig, inputPath, outputPath string) (_ *arrangegraph.Result, err error) {
	defer xdefer.Errorf(&err, "failed to lay out %s", ms.HumanPath(inputPath))

	input, err := ms.ReadPath(inputPath)
	if err != nil {
		return nil, err
	}
	doc, err := arrangegraph.ParseDocument(inputPath, input)
	if err != nil {
		return nil, err
	}

	res, err := layoutDocument(ctx, cfg, doc)
	if err != nil {
		return nil, err
	}

	b, err := arrangegraph.Marshal(arrangegraph.FormatOf(outputPath), res)
	if err != nil {
		return nil, err
	}
	err = ms.WritePath(outputPath, b)
	if err != nil {
		return nil, err
	}
	if outputPath != "-" {
		ms.Log.Success.Printf("successfully laid out %d items of %s with %s to %s", len(res.Items), ms.HumanPath(inputPath), res.Strategy, ms.HumanPath(outputPath))
	}

	if cfg.previewPath != "" {
		err = writePreview(ctx, ms, cfg, doc, res)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

func layoutDocument(ctx context.Context, cfg *layoutConfig, doc *arrangegraph.Document) (*arrangegraph.Result, error) {
	strategy, opts := cfg.apply(doc)

	ctx, cancel := log.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	res := <-arrangelib.LayoutAsync(ctx, doc.Items, doc.Relations, strategy, opts)
	if errors.Is(ctx.Err(), context.Canceled) {
		return nil, ctx.Err()
	}
	fields := []slog.Field{
		slog.F("strategy", strategy),
		slog.F("items", len(res.Items)),
		slog.F("relations", len(doc.Relations)),
		slog.F("duration", res.Duration),
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		log.Warn(ctx, "layout cut short by timeout", fields...)
	} else {
		log.Debug(ctx, "layout done", fields...)
	}

	out := arrangegraph.NewResult(strategy, res.Items)
	return &out, nil
}

func writePreview(ctx context.Context, ms *xmain.State, cfg *layoutConfig, doc *arrangegraph.Document, res *arrangegraph.Result) (err error) {
	defer xdefer.Errorf(&err, "failed to write preview %s", ms.HumanPath(cfg.previewPath))

	buf := &bytes.Buffer{}
	err = arrangeplot.Render(buf, res.Items, &arrangeplot.Options{
		Title:  string(res.Strategy),
		Colors: doc.Colors,
	})
	if err != nil {
		return err
	}
	err = os.WriteFile(cfg.previewPath, buf.Bytes(), 0644)
	if err != nil {
		return err
	}
	ms.Log.Success.Printf("successfully wrote preview to %s", ms.HumanPath(cfg.previewPath))

	if cfg.open && !env.Test() {
		err = xbrowser.Open(ctx, ms.Env, cfg.previewPath, ms.Stderr)
		if err != nil {
			ms.Log.Warn.Printf("failed to open %s: %v", ms.HumanPath(cfg.previewPath), err)
		}
	}
	return nil
}
