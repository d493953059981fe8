package asset

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	DefaultHighlight = "#ff0000"
	maskThreshold    = 128
)

// ParseHighlight turns a hex colour such as "#ff0000" into an opaque NRGBA.
func ParseHighlight(hex string) (color.NRGBA, error) {
	if hex == "" {
		hex = DefaultHighlight
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid highlight colour %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// Overlay paints the bright part of mask over base in highlight. The mask
// is stretched to the base size when they differ.
func Overlay(base, mask image.Image, highlight color.NRGBA, opacity float64) *image.NRGBA {
	background := imaging.Clone(base)
	bounds := background.Bounds()

	if mask.Bounds().Dx() != bounds.Dx() || mask.Bounds().Dy() != bounds.Dy() {
		mask = imaging.Resize(mask, bounds.Dx(), bounds.Dy(), imaging.NearestNeighbor)
	}
	binary := segment.Threshold(mask, maskThreshold)
	origin := binary.Bounds().Min

	tint := image.NewNRGBA(bounds)
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			if binary.GrayAt(origin.X+x, origin.Y+y).Y == 255 {
				tint.SetNRGBA(x, y, highlight)
			}
		}
	}

	return imaging.Overlay(background, tint, image.Pt(0, 0), opacity)
}

func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}
