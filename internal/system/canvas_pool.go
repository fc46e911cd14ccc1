package system

import (
	"image"
	"image/color"
	"image/draw"
	"sync"
)

// CanvasPool keeps one free list of RGBA canvases per size. Canvases are
// always anchored at the origin.
type CanvasPool struct {
	mu    sync.Mutex
	sizes map[image.Point]*sync.Pool
}

var canvases = NewCanvasPool()

func NewCanvasPool() *CanvasPool {
	return &CanvasPool{sizes: make(map[image.Point]*sync.Pool)}
}

// GetCanvas takes a width x height canvas from the shared pool, filled with bg.
func GetCanvas(width, height int, bg color.Color) *image.RGBA {
	return canvases.Get(image.Pt(width, height), bg)
}

// PutCanvas returns a canvas to the shared pool.
func PutCanvas(img *image.RGBA) {
	canvases.Put(img)
}

func (p *CanvasPool) free(size image.Point) *sync.Pool {
	p.mu.Lock()
	defer p.mu.Unlock()
	pool, ok := p.sizes[size]
	if !ok {
		pool = &sync.Pool{New: func() any {
			return image.NewRGBA(image.Rectangle{Max: size})
		}}
		p.sizes[size] = pool
	}
	return pool
}

// Get returns a canvas of the given size. A nil bg leaves it transparent.
func (p *CanvasPool) Get(size image.Point, bg color.Color) *image.RGBA {
	img := p.free(size).Get().(*image.RGBA)
	if bg == nil {
		clear(img.Pix)
		return img
	}
	draw.Draw(img, img.Rect, image.NewUniform(bg), image.Point{}, draw.Src)
	return img
}

// Put drops canvases that are nil or were sub-imaged away from the origin.
func (p *CanvasPool) Put(img *image.RGBA) {
	if img == nil || img.Rect.Min != (image.Point{}) || img.Stride != 4*img.Rect.Dx() {
		return
	}
	p.free(img.Rect.Size()).Put(img)
}
