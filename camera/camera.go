// Package camera maps the bounded simulation plane onto the screen.
//
// World y points up, screen y points down: the wall at MinY is drawn at the
// bottom of the viewport.
package camera

// Camera is a pan/zoom view of a bounded world. The view centre never leaves
// the world rectangle and the zoom never drops below the fit-to-viewport
// level.
type Camera struct {
	// View centre in world coordinates
	X, Y float32

	// Screen pixels per world unit
	Zoom, MinZoom, MaxZoom float32

	ViewportW, ViewportH float32

	MinX, MinY, MaxX, MaxY float32
}

// DefaultMaxZoom is the closest zoom a new camera allows.
const DefaultMaxZoom = 16

// New creates a camera over the world rectangle, centred and fitted to the viewport.
func New(viewportW, viewportH, minX, minY, maxX, maxY float32) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinX:      minX,
		MinY:      minY,
		MaxX:      maxX,
		MaxY:      maxY,
		MaxZoom:   DefaultMaxZoom,
	}
	c.MinZoom = c.fitZoom()
	c.Reset()
	return c
}

func (c *Camera) fitZoom() float32 {
	return min(c.ViewportW/(c.MaxX-c.MinX), c.ViewportH/(c.MaxY-c.MinY))
}

// WorldToScreen converts a world point to screen pixels.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	return c.ViewportW/2 + (wx-c.X)*c.Zoom, c.ViewportH/2 - (wy-c.Y)*c.Zoom
}

// ScreenToWorld converts screen pixels to a world point.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	return c.X + (sx-c.ViewportW/2)/c.Zoom, c.Y - (sy-c.ViewportH/2)/c.Zoom
}

// WorldToScreenScale converts a world length to screen pixels.
func (c *Camera) WorldToScreenScale(d float32) float32 {
	return d * c.Zoom
}

// ScreenRect returns the screen rectangle (top-left, width, height) covering
// the world rectangle [minX, maxX] x [minY, maxY].
func (c *Camera) ScreenRect(minX, minY, maxX, maxY float32) (x, y, w, h float32) {
	x0, y0 := c.WorldToScreen(minX, maxY)
	x1, y1 := c.WorldToScreen(maxX, minY)
	return x0, y0, x1 - x0, y1 - y0
}

// IsVisible reports whether a circle may overlap the viewport. Conservative.
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return abs(wx-c.X) <= halfW && abs(wy-c.Y) <= halfH
}

// Resize updates the viewport and raises the zoom floor to the new fit level.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.MinZoom = c.fitZoom()
	c.SetZoom(c.Zoom)
}

// Pan moves the view by a screen-pixel delta; positive dy moves the view
// down the screen.
func (c *Camera) Pan(dx, dy float32) {
	c.lookAt(c.X+dx/c.Zoom, c.Y-dy/c.Zoom)
}

func (c *Camera) lookAt(wx, wy float32) {
	c.X = clamp(wx, c.MinX, c.MaxX)
	c.Y = clamp(wy, c.MinY, c.MaxY)
}

// SetZoom sets the zoom within [MinZoom, MaxZoom].
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the zoom by factor about the view centre.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt multiplies the zoom by factor keeping the world point under the
// screen position (sx, sy) fixed, as far as the bounds allow.
func (c *Camera) ZoomAt(factor, sx, sy float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.ZoomBy(factor)
	nx, ny := c.ScreenToWorld(sx, sy)
	c.lookAt(c.X+wx-nx, c.Y+wy-ny)
}

// Reset centres the view on the world at fit zoom.
func (c *Camera) Reset() {
	c.X = (c.MinX + c.MaxX) / 2
	c.Y = (c.MinY + c.MaxY) / 2
	c.Zoom = c.MinZoom
}

// VisibleWorldBounds returns the world rectangle currently on screen.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(x, lo, hi float32) float32 {
	return max(lo, min(x, hi))
}
