package viz

import (
	"math"
)

type Vec3 struct {
	X, Y, Z float64
}

// Vec3 methods.
func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// world converts data coordinates (z up) to screen-space world coordinates
// (y up, z towards the viewer).
func world(p Vec3) Vec3 { return Vec3{p.X, p.Z, -p.Y} }

// Camera orbits the origin. Azimuth spins about the vertical axis, then
// elevation tilts the scene towards the viewer.
type Camera struct {
	Distance           float64
	Azimuth, Elevation float64
	Roll               float64
	Zoom               float64
}

func NewCamera() *Camera {
	c := &Camera{Distance: 50, Zoom: 1.0}
	c.Apply(DefaultView)
	return c
}

// Apply points the camera along a named view.
func (c *Camera) Apply(v View) {
	c.Azimuth = v.Azimuth * math.Pi / 180
	c.Elevation = v.Elevation * math.Pi / 180
	c.Roll = 0
}

func (c *Camera) RotateAzimuth(a float64)   { c.Azimuth += a }
func (c *Camera) RotateElevation(a float64) { c.Elevation += a }
func (c *Camera) ZoomIn()                   { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()                  { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// RotatePoint applies azimuth, elevation and roll, in that order.
func (c *Camera) RotatePoint(p Vec3) Vec3 {
	ca, sa := math.Cos(c.Azimuth), math.Sin(c.Azimuth)
	p.X, p.Z = p.X*ca+p.Z*sa, -p.X*sa+p.Z*ca
	ce, se := math.Cos(c.Elevation), math.Sin(c.Elevation)
	p.Y, p.Z = p.Y*ce-p.Z*se, p.Y*se+p.Z*ce
	cr, sr := math.Cos(c.Roll), math.Sin(c.Roll)
	p.X, p.Y = p.X*cr-p.Y*sr, p.X*sr+p.Y*cr
	return p
}

// ProjectUnit maps a data point to the image plane. A point of the unit
// cube lands within roughly [-0.9, 0.9] on both axes at zoom 1; y grows upward.
func (c *Camera) ProjectUnit(p Vec3) (x, y, depth float64, ok bool) {
	rot := c.RotatePoint(world(p)).Scale(c.Zoom)
	if rot.Z >= c.Distance-0.1 {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot.Z)
	return rot.X * scale, rot.Y * scale, rot.Z, true
}

// Project converts a data point to sub-pixel coordinates of a sw x sh screen.
// Returns x, y, depth, and visibility.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, float64, bool) {
	ux, uy, depth, ok := c.ProjectUnit(p)
	if !ok {
		return 0, 0, 0, false
	}
	half := float64(min(sw, sh)) / 2
	// 1.1 of the half-size keeps the rotated cube diagonal inside the frame
	sx := int(math.Round(ux*half*1.1)) + sw/2
	sy := int(math.Round(-uy*half*1.1)) + sh/2
	return sx, sy, depth, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End Vec3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe         { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e Vec3) { w.Edges = append(w.Edges, Edge{s, e}) }

// AddPolyline adds one edge per consecutive pair; a lone point becomes a
// zero-length edge.
func (w *Wireframe) AddPolyline(p []Vec3) {
	if len(p) == 1 {
		w.AddEdge(p[0], p[0])
	}
	for i := 1; i < len(p); i++ {
		w.AddEdge(p[i-1], p[i])
	}
}

// Render3D draws the wireframe onto the canvas. Edges with neither end in
// view are skipped; the rest are clipped by the canvas itself.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	pw, ph := c.PixelWidth(), c.PixelHeight()
	for _, e := range w.Edges {
		x1, y1, _, v1 := cam.Project(e.Start, pw, ph)
		x2, y2, _, v2 := cam.Project(e.End, pw, ph)
		if !v1 && !v2 {
			continue
		}
		if x1 == x2 && y1 == y2 {
			c.Set(x1, y1)
		} else {
			c.DrawLine(x1, y1, x2, y2)
		}
	}
}

// BoxWireframe is the unit cube centred on the origin, the frame tracks are
// normalized into.
func BoxWireframe() *Wireframe {
	w, s := NewWireframe(), 0.5
	v := []Vec3{{-s, -s, -s}, {s, -s, -s}, {s, s, -s}, {-s, s, -s}, {-s, -s, s}, {s, -s, s}, {s, s, s}, {-s, s, s}}
	ei := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	for _, e := range ei {
		w.AddEdge(v[e[0]], v[e[1]])
	}
	return w
}

// RenderTracks draws normalized tracks, optionally inside the unit box.
func RenderTracks(c *Canvas, tracks [][]Vec3, cam *Camera, box bool) {
	w := NewWireframe()
	if box {
		w.Edges = append(w.Edges, BoxWireframe().Edges...)
	}
	for _, t := range tracks {
		w.AddPolyline(t)
	}
	Render3D(c, w, cam)
}
