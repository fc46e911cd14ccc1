// Package preview draws a top-down plan of a scene: the road, the camera
// path, a camera track, the object field and the focus targets. World X runs
// right and world Z runs down; height is ignored.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"cogentcore.org/core/math32"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/vector"

	"github.com/ivlev/scrollrig/internal/choreo"
	"github.com/ivlev/scrollrig/internal/orbit"
	"github.com/ivlev/scrollrig/internal/path"
	"github.com/ivlev/scrollrig/internal/shot"
	"github.com/ivlev/scrollrig/internal/source"
	"github.com/ivlev/scrollrig/internal/system"
)

var ErrEmptyScene = errors.New("preview: nothing to draw")

type Options struct {
	Width, Height int
	Margin        int
	Samples       int     // path polyline segments
	RoadWidth     float32 // world units
	LineWidth     float32 // pixels
	LookEvery     int     // draw every n-th look line of the track, 0 for none
}

func DefaultOptions() Options {
	return Options{
		Width:     1024,
		Height:    1024,
		Margin:    32,
		Samples:   400,
		RoadWidth: 0.6,
		LineWidth: 2,
		LookEvery: 25,
	}
}

type Palette struct {
	Background colorful.Color
	Road       colorful.Color
	Path       colorful.Color
	Track      colorful.Color
	Look       colorful.Color
	Hidden     colorful.Color
	Revealed   colorful.Color
	Focus      colorful.Color
}

var DefaultPalette = Palette{
	Background: mustHex("#05070c"),
	Road:       mustHex("#2a2f3a"),
	Path:       mustHex("#f2c14e"),
	Track:      mustHex("#4ea8f2"),
	Look:       mustHex("#1f4e73"),
	Hidden:     mustHex("#1b1630"),
	Revealed:   mustHex("#8a6cff"),
	Focus:      mustHex("#f25f5c"),
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Scene lists what to draw. Every field is optional, but at least one must
// contribute a point.
type Scene struct {
	Curve   *path.Curve
	Objects []choreo.Object
	Track   []shot.Pose
	Focus   []orbit.Target
}

type point struct{ X, Y float32 }

// projection maps world XZ onto the canvas with a uniform scale.
type projection struct {
	minX, minZ float32
	scale      float32
	offX, offY float32
}

func fit(points []math32.Vector3, w, h, margin int) projection {
	minX, minZ := points[0].X, points[0].Z
	maxX, maxZ := minX, minZ
	for _, p := range points[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minZ, maxZ = min(minZ, p.Z), max(maxZ, p.Z)
	}

	spanX := max(maxX-minX, 1e-6)
	spanZ := max(maxZ-minZ, 1e-6)
	innerW := float32(max(w-2*margin, 1))
	innerH := float32(max(h-2*margin, 1))
	scale := min(innerW/spanX, innerH/spanZ)

	return projection{
		minX:  minX,
		minZ:  minZ,
		scale: scale,
		offX:  float32(margin) + (innerW-spanX*scale)/2,
		offY:  float32(margin) + (innerH-spanZ*scale)/2,
	}
}

func (p projection) at(v math32.Vector3) point {
	return point{
		X: p.offX + (v.X-p.minX)*p.scale,
		Y: p.offY + (v.Z-p.minZ)*p.scale,
	}
}

// canvas batches closed shapes of one color into a single rasterizer pass.
type canvas struct {
	img    *image.RGBA
	ras    *vector.Rasterizer
	proj   projection
	shapes int
}

func (c *canvas) begin() {
	b := c.img.Bounds()
	c.ras.Reset(b.Dx(), b.Dy())
	c.shapes = 0
}

func (c *canvas) flush(col color.Color) {
	if c.shapes == 0 {
		return
	}
	c.ras.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

func (c *canvas) quad(a, b, d, e point) {
	c.ras.MoveTo(a.X, a.Y)
	c.ras.LineTo(b.X, b.Y)
	c.ras.LineTo(d.X, d.Y)
	c.ras.LineTo(e.X, e.Y)
	c.ras.ClosePath()
	c.shapes++
}

func (c *canvas) segment(a, b point, width float32) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math32.Sqrt(dx*dx + dy*dy)
	if l < 1e-6 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	c.quad(
		point{a.X + nx, a.Y + ny},
		point{b.X + nx, b.Y + ny},
		point{b.X - nx, b.Y - ny},
		point{a.X - nx, a.Y - ny},
	)
}

func (c *canvas) polyline(pts []math32.Vector3, width float32) {
	for i := 1; i < len(pts); i++ {
		c.segment(c.proj.at(pts[i-1]), c.proj.at(pts[i]), width)
	}
}

func (c *canvas) dot(v math32.Vector3, r float32) {
	p := c.proj.at(v)
	c.quad(
		point{p.X - r, p.Y - r},
		point{p.X + r, p.Y - r},
		point{p.X + r, p.Y + r},
		point{p.X - r, p.Y + r},
	)
}

// Render draws s onto a pooled canvas. Hand the image back with Release once
// it is no longer needed.
func Render(s Scene, opts Options, pal Palette) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("preview: invalid canvas %dx%d", opts.Width, opts.Height)
	}
	samples := max(opts.Samples, 1)

	var (
		center []math32.Vector3
		road   source.Road
		bounds []math32.Vector3
	)
	if s.Curve != nil {
		road = source.BuildRoad(s.Curve, opts.RoadWidth, samples)
		center = road.Center
		bounds = append(bounds, road.Left...)
		bounds = append(bounds, road.Right...)
	}
	for _, o := range s.Objects {
		bounds = append(bounds, o.Base)
	}
	track := make([]math32.Vector3, len(s.Track))
	for i, p := range s.Track {
		track[i] = p.Position
		bounds = append(bounds, p.Position)
	}
	for _, t := range s.Focus {
		bounds = append(bounds, t.Point)
	}
	if len(bounds) == 0 {
		return nil, ErrEmptyScene
	}

	img := system.GetCanvas(opts.Width, opts.Height, pal.Background)

	c := &canvas{
		img:  img,
		ras:  vector.NewRasterizer(opts.Width, opts.Height),
		proj: fit(bounds, opts.Width, opts.Height, opts.Margin),
	}
	lw := max(opts.LineWidth, 0.5)
	cell := c.proj.scale * 0.35

	if len(center) > 0 {
		c.begin()
		for i := 1; i < len(center); i++ {
			c.quad(
				c.proj.at(road.Left[i-1]),
				c.proj.at(road.Left[i]),
				c.proj.at(road.Right[i]),
				c.proj.at(road.Right[i-1]),
			)
		}
		c.flush(pal.Road)
	}

	if len(s.Objects) > 0 {
		r := max(cell, 1)
		c.begin()
		for _, o := range s.Objects {
			if o.Offset < choreo.Rest {
				c.dot(o.Base, r)
			}
		}
		c.flush(pal.Hidden)

		c.begin()
		for _, o := range s.Objects {
			if o.Offset >= choreo.Rest {
				c.dot(o.Base, r)
			}
		}
		c.flush(pal.Revealed)
	}

	if len(center) > 0 {
		c.begin()
		c.polyline(center, lw)
		c.flush(pal.Path)
	}

	if len(track) > 0 {
		if opts.LookEvery > 0 {
			c.begin()
			for i := 0; i < len(s.Track); i += opts.LookEvery {
				c.segment(c.proj.at(s.Track[i].Position), c.proj.at(s.Track[i].LookAt), lw/2)
			}
			c.flush(pal.Look)
		}
		c.begin()
		c.polyline(track, lw)
		if len(track) == 1 {
			c.dot(track[0], lw)
		}
		c.flush(pal.Track)
	}

	if len(s.Focus) > 0 {
		c.begin()
		for _, t := range s.Focus {
			c.dot(t.Point, 2*lw)
		}
		c.flush(pal.Focus)
	}

	return img, nil
}

// Release returns a rendered canvas to the shared pool.
func Release(img *image.RGBA) {
	system.PutCanvas(img)
}

func WritePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode preview: %w", err)
	}
	return f.Close()
}

// RenderFile renders s and writes it to path as PNG.
func RenderFile(s Scene, opts Options, pal Palette, path string) error {
	img, err := Render(s, opts, pal)
	if err != nil {
		return err
	}
	defer Release(img)
	return WritePNG(img, path)
}
