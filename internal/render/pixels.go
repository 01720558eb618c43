package render

import (
	"image/color"
	"math"

	"sphere-ca/internal/core"
	"sphere-ca/internal/organisms"
	"sphere-ca/internal/pairs"
)

// Style holds the base cell colors.
type Style struct {
	Alive color.RGBA
	Dead  color.RGBA
}

// DefaultStyle returns the standard palette.
func DefaultStyle() Style {
	return Style{
		Alive: color.RGBA{R: 230, G: 230, B: 240, A: 255},
		Dead:  color.RGBA{R: 28, G: 30, B: 38, A: 255},
	}
}

// HueColor converts a pair hue in degrees to an opaque color.
func HueColor(hue float64) color.RGBA {
	r, g, b := hslToRGB(hue, 0.8, 0.6)
	return color.RGBA{R: uint8(math.Round(r * 255)), G: uint8(math.Round(g * 255)), B: uint8(math.Round(b * 255)), A: 255}
}

// NodeColors fills buf with one color per node. Live cells belonging to a
// paired organism take the pair color. buf is grown when too small.
func NodeColors(buf []color.RGBA, cells []core.CellState, orgs []organisms.Organism, prs []pairs.Pair, style Style) []color.RGBA {
	if cap(buf) < len(cells) {
		buf = make([]color.RGBA, len(cells))
	}
	buf = buf[:len(cells)]
	for i, c := range cells {
		if c.Alive {
			buf[i] = style.Alive
			continue
		}
		buf[i] = style.Dead
	}
	for _, p := range prs {
		col := HueColor(p.Hue)
		for _, id := range []int{p.A, p.B} {
			if id < 0 || id >= len(orgs) {
				continue
			}
			for _, node := range orgs[id].Members {
				if node < len(buf) {
					buf[node] = col
				}
			}
		}
	}
	return buf
}

func hslToRGB(h, s, l float64) (float64, float64, float64) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return r + m, g + m, b + m
}
