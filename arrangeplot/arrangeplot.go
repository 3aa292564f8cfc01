// Package arrangeplot renders a laid out document as a PNG preview.
package arrangeplot

import (
	"fmt"
	"io"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/arrange/arrangegraph"
	"oss.terrastruct.com/arrange/lib/color"
	"oss.terrastruct.com/arrange/lib/go2"
)

const (
	DEFAULT_WIDTH = 8 * vg.Inch
	MIN_HEIGHT    = 2 * vg.Inch
	MAX_HEIGHT    = 16 * vg.Inch
)

type Options struct {
	Title string
	// Width of the image. The height follows the aspect of the bounding box.
	Width vg.Length
	// Colors maps categories to CSS colors. Unlisted categories get a
	// generated fill.
	Colors map[string]string
}

// Render writes a PNG of items to w. Items are drawn as filled rectangles
// labeled with their label or id, y growing downward.
func Render(w io.Writer, items []arrangegraph.Item, opts *Options) (err error) {
	defer xdefer.Errorf(&err, "failed to render preview")

	if opts == nil {
		opts = &Options{}
	}
	width := opts.Width
	if width <= 0 {
		width = DEFAULT_WIDTH
	}

	fills, err := categoryFills(items, opts.Colors)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.HideAxes()
	p.Y.Scale = plot.InvertedScale{Normalizer: p.Y.Scale}
	p.Legend.Top = true

	inLegend := make(map[string]bool)
	var centers plotter.XYs
	var texts []string
	for _, it := range items {
		box := it.Box()
		br := box.BottomRight()
		poly, err := plotter.NewPolygon(plotter.XYs{
			{X: box.TopLeft.X, Y: box.TopLeft.Y},
			{X: br.X, Y: box.TopLeft.Y},
			{X: br.X, Y: br.Y},
			{X: box.TopLeft.X, Y: br.Y},
		})
		if err != nil {
			return fmt.Errorf("item %q: %w", it.ID, err)
		}
		fill := fills[it.GetCategory()]
		poly.Color = fill
		poly.LineStyle.Color = color.Darken(fill)
		poly.LineStyle.Width = vg.Points(1)
		p.Add(poly)

		cat := it.GetCategory()
		if !inLegend[cat] {
			inLegend[cat] = true
			p.Legend.Add(cat, poly)
		}

		c := box.Center()
		centers = append(centers, plotter.XY{X: c.X, Y: c.Y})
		text := it.Label
		if text == "" {
			text = it.ID
		}
		texts = append(texts, text)
	}

	if len(centers) > 0 {
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: centers, Labels: texts})
		if err != nil {
			return err
		}
		for i, it := range items {
			labels.TextStyle[i].XAlign = draw.XCenter
			labels.TextStyle[i].YAlign = draw.YCenter
			labels.TextStyle[i].Color = color.TextColor(fills[it.GetCategory()])
		}
		p.Add(labels)
	}

	wt, err := p.WriterTo(width, height(items, width), "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// height keeps the aspect ratio of the bounding box within limits.
func height(items []arrangegraph.Item, width vg.Length) vg.Length {
	bb := arrangegraph.BoundingBox(items)
	if bb == nil || bb.Width <= 0 {
		return MIN_HEIGHT
	}
	h := width * vg.Length(bb.Height/bb.Width)
	return go2.Min(go2.Max(h, MIN_HEIGHT), MAX_HEIGHT)
}

func categoryFills(items []arrangegraph.Item, overrides map[string]string) (map[string]colorful.Color, error) {
	var categories []string
	seen := make(map[string]bool)
	for _, it := range items {
		c := it.GetCategory()
		if !seen[c] {
			seen[c] = true
			categories = append(categories, c)
		}
	}
	sort.Strings(categories)

	palette := color.Palette(len(categories))
	fills := make(map[string]colorful.Color, len(categories))
	for i, c := range categories {
		fills[c] = palette[i]
		if css, ok := overrides[c]; ok {
			fill, err := color.Parse(css)
			if err != nil {
				return nil, fmt.Errorf("invalid color %q for category %q: %w", css, c, err)
			}
			fills[c] = fill
		}
	}
	return fills, nil
}
