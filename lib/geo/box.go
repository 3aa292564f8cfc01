package geo

import "fmt"

type Box struct {
	TopLeft *Point  `json:"topLeft" yaml:"topLeft" toml:"topLeft"`
	Width   float64 `json:"width" yaml:"width" toml:"width"`
	Height  float64 `json:"height" yaml:"height" toml:"height"`
}

func NewBox(tl *Point, width, height float64) *Box {
	return &Box{
		TopLeft: tl,
		Width:   width,
		Height:  height,
	}
}

func (b *Box) Copy() *Box {
	if b == nil {
		return nil
	}
	return NewBox(b.TopLeft.Copy(), b.Width, b.Height)
}

func (b *Box) Center() *Point {
	return NewPoint(b.TopLeft.X+b.Width/2, b.TopLeft.Y+b.Height/2)
}

func (b *Box) BottomRight() *Point {
	return NewPoint(b.TopLeft.X+b.Width, b.TopLeft.Y+b.Height)
}

// Overlaps reports whether b and other share any interior area once both are
// grown by margin on every side. Touching edges do not overlap.
func (b *Box) Overlaps(other *Box, margin float64) bool {
	return b.TopLeft.X-margin < other.TopLeft.X+other.Width &&
		other.TopLeft.X-margin < b.TopLeft.X+b.Width &&
		b.TopLeft.Y-margin < other.TopLeft.Y+other.Height &&
		other.TopLeft.Y-margin < b.TopLeft.Y+b.Height
}

// Union returns the smallest Box containing both b and other.
func (b *Box) Union(other *Box) *Box {
	if b == nil {
		return other.Copy()
	}
	if other == nil {
		return b.Copy()
	}
	br1, br2 := b.BottomRight(), other.BottomRight()
	tl := NewPoint(min(b.TopLeft.X, other.TopLeft.X), min(b.TopLeft.Y, other.TopLeft.Y))
	return NewBox(tl, max(br1.X, br2.X)-tl.X, max(br1.Y, br2.Y)-tl.Y)
}

func (b *Box) ToString() string {
	if b == nil {
		return ""
	}
	return fmt.Sprintf("{TopLeft: %s, Width: %.0f, Height: %.0f}", b.TopLeft.ToString(), b.Width, b.Height)
}
