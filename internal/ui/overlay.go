//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"sphere-ca/internal/organisms"
	"sphere-ca/internal/pairs"
	"sphere-ca/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Analysis exposes the derived organism and pair results to draw.
type Analysis interface {
	Tracker() *organisms.Tracker
	Resolver() *pairs.Resolver
}

// Overlay draws organism centroids and pair links on top of the sphere.
type Overlay struct {
	src           Analysis
	showLinks     bool
	showCentroids bool
	pixel         *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(src Analysis) *Overlay {
	o := &Overlay{src: src, showLinks: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles overlay layers: O for pair links, C for centroids.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		o.showLinks = !o.showLinks
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		o.showCentroids = !o.showCentroids
	}
}

// Draw renders the enabled layers with the given camera. Centroids are
// lifted onto a sphere of the given radius.
func (o *Overlay) Draw(screen *ebiten.Image, proj render.Projector, radius float64) {
	if o.src == nil {
		return
	}
	orgs := o.src.Tracker().Organisms()
	if o.showCentroids {
		for _, org := range orgs {
			if !org.Qualified {
				continue
			}
			p, ok := render.SurfacePoint(org.Centroid, radius)
			if !ok {
				continue
			}
			x, y, visible := proj.Project(p)
			if visible {
				o.drawPoint(screen, x, y, 5, color.RGBA{R: 255, G: 255, B: 255, A: 200})
			}
		}
	}
	if !o.showLinks {
		return
	}
	for _, pr := range o.src.Resolver().Pairs() {
		if pr.A >= len(orgs) || pr.B >= len(orgs) {
			continue
		}
		pa, okA := render.SurfacePoint(orgs[pr.A].Centroid, radius)
		pb, okB := render.SurfacePoint(orgs[pr.B].Centroid, radius)
		if !okA || !okB {
			continue
		}
		col := render.HueColor(pr.Hue)
		x1, y1, visA := proj.Project(pa)
		x2, y2, visB := proj.Project(pb)
		if !visA || !visB {
			col.A = 120
		}
		o.drawLine(screen, x1, y1, x2, y2, 2, col)
		if visA {
			o.drawPoint(screen, x1, y1, 7, render.HueColor(pr.Hue))
		}
		if visB {
			o.drawPoint(screen, x2, y2, 7, render.HueColor(pr.Hue))
		}
	}
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}
