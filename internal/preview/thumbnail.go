package preview

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

// Pixels with less alpha than this are drawn as empty.
const alphaThreshold = 128

// Thumbnail renders src as coloured half-block art that fits in cols x rows
// terminal cells, keeping the aspect ratio. Each cell shows two vertically
// stacked pixels.
func Thumbnail(src image.Image, cols, rows int) string {
	if src == nil || cols <= 0 || rows <= 0 {
		return ""
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return ""
	}

	maxW, maxH := cols, rows*2
	scale := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))

	dw := max(1, int(float64(w)*scale))
	dh := max(1, int(float64(h)*scale))
	if dh%2 == 1 {
		dh++
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)

	return halfBlocks(dst)
}

// halfBlocks converts an image with an even height to half-block rows.
func halfBlocks(img *image.RGBA) string {
	var out strings.Builder
	bounds := img.Bounds()

	for y := 0; y < bounds.Dy(); y += 2 {
		for x := 0; x < bounds.Dx(); x++ {
			out.WriteString(cell(img.RGBAAt(x, y), img.RGBAAt(x, y+1)))
		}
		if y+2 < bounds.Dy() {
			out.WriteRune('\n')
		}
	}

	return out.String()
}

func cell(top, bottom color.RGBA) string {
	topOn := top.A >= alphaThreshold
	bottomOn := bottom.A >= alphaThreshold

	switch {
	case topOn && bottomOn:
		return lipgloss.NewStyle().Foreground(hexColor(top)).Background(hexColor(bottom)).Render("▀")
	case topOn:
		return lipgloss.NewStyle().Foreground(hexColor(top)).Render("▀")
	case bottomOn:
		return lipgloss.NewStyle().Foreground(hexColor(bottom)).Render("▄")
	default:
		return " "
	}
}

func hexColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
