package camera

import (
	"math"
	"testing"
)

// World matching the default wall rectangle
func newTestCamera() *Camera {
	return New(1100, 550, -1100, -1100, 1100, 1100)
}

func TestNew(t *testing.T) {
	cam := newTestCamera()

	// Should be centered on world
	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("expected camera at (0, 0), got (%f, %f)", cam.X, cam.Y)
	}
	// min(1100/2200, 550/2200) = 0.25
	if cam.Zoom != 0.25 || cam.MinZoom != 0.25 {
		t.Errorf("expected zoom 0.25, got zoom=%f min=%f", cam.Zoom, cam.MinZoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := newTestCamera()

	sx, sy := cam.WorldToScreen(0, 0)
	if math.Abs(float64(sx-550)) > 0.01 || math.Abs(float64(sy-275)) > 0.01 {
		t.Errorf("expected screen center (550, 275), got (%f, %f)", sx, sy)
	}

	// At fit zoom the whole world height spans the viewport, y up
	_, top := cam.WorldToScreen(0, 1100)
	_, bottom := cam.WorldToScreen(0, -1100)
	if math.Abs(float64(top)) > 0.01 || math.Abs(float64(bottom-550)) > 0.01 {
		t.Errorf("world height maps to [%f, %f], want [0, 550]", top, bottom)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := newTestCamera()
	cam.SetZoom(3)
	cam.Pan(120, -40)

	testCases := []struct{ sx, sy float32 }{
		{550, 275},  // center
		{10, 10},    // top-left
		{1000, 500}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanClampsToWorld(t *testing.T) {
	cam := newTestCamera()
	cam.SetZoom(1)

	cam.Pan(-5000, 0)
	if cam.X != -1100 {
		t.Errorf("expected X clamped to -1100, got %f", cam.X)
	}

	// Panning down the screen moves down the world
	cam.Pan(0, 300)
	if cam.Y != -300 {
		t.Errorf("expected Y -300, got %f", cam.Y)
	}

	// Pan distance is in screen pixels
	cam.SetZoom(2)
	cam.Pan(0, 100)
	if cam.Y != -350 {
		t.Errorf("expected Y -350 after 100px at zoom 2, got %f", cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := newTestCamera()

	cam.SetZoom(0.01) // Below min
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}

	cam.SetZoom(100) // Above max
	if cam.Zoom != 16 {
		t.Errorf("expected zoom clamped to 16, got %f", cam.Zoom)
	}

	cam.SetZoom(1)
	cam.ZoomBy(1.5)
	if cam.Zoom != 1.5 {
		t.Errorf("expected zoom 1.5, got %f", cam.Zoom)
	}
}

func TestResizeRaisesZoomFloor(t *testing.T) {
	cam := newTestCamera()
	cam.Resize(2200, 2200)

	if cam.MinZoom != 1 {
		t.Errorf("expected MinZoom 1, got %f", cam.MinZoom)
	}
	if cam.Zoom != 1 {
		t.Errorf("expected zoom raised to 1, got %f", cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := newTestCamera()
	cam.SetZoom(1)

	// Visible range in world coords: (-550, -275) to (550, 275)
	if !cam.IsVisible(0, 0, 1) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(900, 0, 5) {
		t.Error("far point should not be visible")
	}
	if !cam.IsVisible(580, 0, 50) {
		t.Error("edge point with large radius should be visible")
	}
}

func TestVisibleWorldBounds(t *testing.T) {
	cam := newTestCamera()
	cam.SetZoom(2)

	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if minX != -275 || maxX != 275 || minY != -137.5 || maxY != 137.5 {
		t.Errorf("bounds = (%f,%f)-(%f,%f)", minX, minY, maxX, maxY)
	}
}

func TestReset(t *testing.T) {
	cam := newTestCamera()
	cam.X = 500
	cam.Y = 500
	cam.Zoom = 2.5

	cam.Reset()

	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("expected position (0, 0), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom %f, got %f", cam.MinZoom, cam.Zoom)
	}
}

func TestZoomAtKeepsCursorPoint(t *testing.T) {
	cam := newTestCamera()
	cam.SetZoom(1)

	sx, sy := float32(800), float32(100)
	wx, wy := cam.ScreenToWorld(sx, sy)
	cam.ZoomAt(2, sx, sy)

	if cam.Zoom != 2 {
		t.Fatalf("zoom = %f, want 2", cam.Zoom)
	}
	gx, gy := cam.ScreenToWorld(sx, sy)
	if math.Abs(float64(gx-wx)) > 0.01 || math.Abs(float64(gy-wy)) > 0.01 {
		t.Errorf("cursor point moved: (%f,%f) -> (%f,%f)", wx, wy, gx, gy)
	}
}

func TestScreenRect(t *testing.T) {
	cam := newTestCamera()

	x, y, w, h := cam.ScreenRect(-1100, -1100, 1100, 1100)
	if x != 275 || y != 0 || w != 550 || h != 550 {
		t.Errorf("ScreenRect = (%f,%f,%f,%f), want (275,0,550,550)", x, y, w, h)
	}
	if _, _, w, h := cam.ScreenRect(0, 0, 100, 40); w <= 0 || h <= 0 {
		t.Errorf("ScreenRect size = %f x %f, want positive", w, h)
	}
}
