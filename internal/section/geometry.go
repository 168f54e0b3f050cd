package section

import (
	"math"
	"sort"
)

// Point represents a 2D coordinate of a cross-section outline.
// X runs along the section width (local 3), Y along the depth (local 2).
type Point struct {
	X float64 `json:"x"` // m
	Y float64 `json:"y"` // m
}

// Polygon is a cross-section made of an outer boundary and optional holes.
// Boundaries may be given in either orientation.
type Polygon struct {
	Outline []Point   `json:"outline"`
	Holes   [][]Point `json:"holes,omitempty"`

	// Overrides (optional, computed when zero)
	Torsion float64 `json:"torsion,omitempty"`
	ShearY  float64 `json:"shear_y,omitempty"` // shear area along the depth (As2)
	ShearX  float64 `json:"shear_x,omitempty"` // shear area along the width (As3)
}

// Properties holds calculated geometric properties
type Properties struct {
	// Overall dimensions
	Width  float64
	Height float64
	Area   float64

	// Centroid location
	CentroidX float64
	CentroidY float64

	// Bounding box
	MinX float64
	MaxX float64
	MinY float64
	MaxY float64

	// Second moments about centroidal axes
	Ixx float64 // about the X axis (bending in the depth direction, I33)
	Iyy float64 // about the Y axis (I22)
	Ixy float64

	// Section constants used by the engine
	J   float64
	As2 float64
	As3 float64
}

// ring accumulates signed area, first and second moments of one closed ring
type ring struct {
	a, sx, sy, ixx, iyy, ixy float64
}

func integrate(pts []Point) ring {
	var r ring
	n := len(pts)
	if n < 3 {
		return r
	}
	for i := 0; i < n; i++ {
		p, q := pts[i], pts[(i+1)%n]
		cross := p.X*q.Y - q.X*p.Y
		r.a += cross
		r.sx += (p.X + q.X) * cross
		r.sy += (p.Y + q.Y) * cross
		r.ixx += (p.Y*p.Y + p.Y*q.Y + q.Y*q.Y) * cross
		r.iyy += (p.X*p.X + p.X*q.X + q.X*q.X) * cross
		r.ixy += (p.X*q.Y + 2*p.X*p.Y + 2*q.X*q.Y + q.X*p.Y) * cross
	}
	r.a /= 2
	r.sx /= 6
	r.sy /= 6
	r.ixx /= 12
	r.iyy /= 12
	r.ixy /= 24

	// normalise to counter-clockwise
	if r.a < 0 {
		r = ring{-r.a, -r.sx, -r.sy, -r.ixx, -r.iyy, -r.ixy}
	}
	return r
}

// CalculateProperties computes geometric properties of the polygon
func (p *Polygon) CalculateProperties() *Properties {
	props := &Properties{}

	if len(p.Outline) < 3 {
		return props
	}

	// Find bounding box
	props.MinX, props.MaxX = p.Outline[0].X, p.Outline[0].X
	props.MinY, props.MaxY = p.Outline[0].Y, p.Outline[0].Y
	for _, v := range p.Outline {
		props.MinX = math.Min(props.MinX, v.X)
		props.MaxX = math.Max(props.MaxX, v.X)
		props.MinY = math.Min(props.MinY, v.Y)
		props.MaxY = math.Max(props.MaxY, v.Y)
	}
	props.Width = props.MaxX - props.MinX
	props.Height = props.MaxY - props.MinY

	// Outline minus holes
	total := integrate(p.Outline)
	for _, h := range p.Holes {
		r := integrate(h)
		total.a -= r.a
		total.sx -= r.sx
		total.sy -= r.sy
		total.ixx -= r.ixx
		total.iyy -= r.iyy
		total.ixy -= r.ixy
	}
	props.Area = total.a
	if props.Area <= 0 {
		return props
	}
	props.CentroidX = total.sx / total.a
	props.CentroidY = total.sy / total.a

	// Parallel axis theorem back to the centroid
	props.Ixx = total.ixx - total.a*props.CentroidY*props.CentroidY
	props.Iyy = total.iyy - total.a*props.CentroidX*props.CentroidX
	props.Ixy = total.ixy - total.a*props.CentroidX*props.CentroidY

	props.J = p.Torsion
	if props.J == 0 {
		// Saint-Venant's approximation for compact sections
		props.J = math.Pow(props.Area, 4) / (4 * math.Pi * math.Pi * (props.Ixx + props.Iyy))
	}
	props.As2, props.As3 = p.ShearY, p.ShearX
	if props.As2 == 0 {
		props.As2 = 5.0 / 6.0 * props.Area
	}
	if props.As3 == 0 {
		props.As3 = 5.0 / 6.0 * props.Area
	}
	return props
}

// WidthAtY calculates the width of the section at a given Y coordinate.
// Holes reduce the width.
func (p *Polygon) WidthAtY(y float64) float64 {
	width := widthAtY(p.Outline, y)
	for _, h := range p.Holes {
		width -= widthAtY(h, y)
	}
	return width
}

// widthAtY uses horizontal line intersection with a ring
func widthAtY(pts []Point, y float64) float64 {
	intersections := findIntersectionsAtY(pts, y)
	if len(intersections) < 2 {
		return 0
	}

	// Sort intersections by X coordinate
	sort.Float64s(intersections)

	// Total width is the sum of all segments
	var totalWidth float64
	for i := 0; i+1 < len(intersections); i += 2 {
		totalWidth += intersections[i+1] - intersections[i]
	}
	return totalWidth
}

// findIntersectionsAtY finds all X coordinates where a horizontal line at Y intersects the ring
func findIntersectionsAtY(pts []Point, y float64) []float64 {
	var intersections []float64
	n := len(pts)
	for i := 0; i < n; i++ {
		v1, v2 := pts[i], pts[(i+1)%n]
		if (v1.Y <= y && v2.Y > y) || (v2.Y <= y && v1.Y > y) {
			t := (y - v1.Y) / (v2.Y - v1.Y)
			intersections = append(intersections, v1.X+t*(v2.X-v1.X))
		}
	}
	return intersections
}

// rectangle returns a counter-clockwise rectangle centred at the origin
func rectangle(width, depth float64) []Point {
	w, d := width/2, depth/2
	return []Point{{-w, -d}, {w, -d}, {w, d}, {-w, d}}
}

// Solid is a full rectangular section
func Solid(width, depth float64) *Polygon {
	a, b := math.Max(width, depth), math.Min(width, depth)
	return &Polygon{
		Outline: rectangle(width, depth),
		Torsion: a * b * b * b * (1.0/3.0 - 0.21*b/a*(1-math.Pow(b/a, 4)/12)),
	}
}

// Box is a rectangular hollow section with a uniform wall thickness
func Box(width, depth, wall float64) *Polygon {
	p := &Polygon{
		Outline: rectangle(width, depth),
		Holes:   [][]Point{rectangle(width-2*wall, depth-2*wall)},
	}

	// Bredt's formula on the wall mid-line
	wm, dm := width-wall, depth-wall
	p.Torsion = 4 * (wm * dm) * (wm * dm) * wall / (2 * (wm + dm))

	// webs carry shear in their own plane
	p.ShearY = 2 * wall * depth
	p.ShearX = 2 * wall * width
	return p
}
