package physics

import (
	"math"

	"github.com/vovakirdan/tui-plumber/internal/core"
)

// Probe geometry, in world units. A probe is a short circle cast: radius
// ProbeRadius swept ProbeDistance along the query direction from the body
// position.
const (
	ProbeRadius   = 0.25
	ProbeDistance = 0.375
)

// Contact is an overlapping pair of enabled bodies found by the contact pass.
type Contact struct {
	A, B *Body
}

// Space owns the solid tile grid and all collision bodies for one stage.
// Tile (x, y) covers the unit square [x, x+1) × [y, y+1); y grows upward.
type Space struct {
	width  int
	height int
	solid  []bool

	bodies []*Body

	// filter, when set, suppresses contacts for pairs it rejects.
	// Used for the global post-shrink player/enemy collision disable.
	filter func(a, b *Body) bool
}

// NewSpace creates an empty space for a stage of the given tile dimensions.
func NewSpace(width, height int) *Space {
	return &Space{
		width:  width,
		height: height,
		solid:  make([]bool, width*height),
	}
}

// Width returns the stage width in tiles.
func (s *Space) Width() int { return s.width }

// Height returns the stage height in tiles.
func (s *Space) Height() int { return s.height }

// SetSolid marks the tile at (x, y) as solid level geometry.
func (s *Space) SetSolid(x, y int, v bool) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.solid[y*s.width+x] = v
}

// SolidTile reports whether the tile at (x, y) is solid.
// Tiles outside the stage are not solid (entities fall past the edges).
func (s *Space) SolidTile(x, y int) bool {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return false
	}
	return s.solid[y*s.width+x]
}

// Add registers a body with the space.
func (s *Space) Add(b *Body) {
	s.bodies = append(s.bodies, b)
}

// Remove unregisters a body.
func (s *Space) Remove(b *Body) {
	for i, x := range s.bodies {
		if x == b {
			s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
			return
		}
	}
}

// SetFilter installs a contact pair filter. A nil filter admits all pairs.
func (s *Space) SetFilter(f func(a, b *Body) bool) {
	s.filter = f
}

// Probe reports whether a solid obstacle lies within ProbeDistance of the
// body in the given direction. Kinematic bodies never probe: while a body is
// externally driven (pipe travel, flagpole) the movement code must not react
// to obstacles.
func (s *Space) Probe(b *Body, dir core.Vec2) bool {
	if b == nil || b.Kind == Kinematic || !b.Enabled {
		return false
	}
	dir = dir.Norm()
	from := b.Center()
	to := from.Add(dir.Scale(ProbeDistance + probeExtent(b, dir)))

	// Solid tiles along the swept circle.
	minX := int(math.Floor(math.Min(from.X, to.X) - ProbeRadius))
	maxX := int(math.Floor(math.Max(from.X, to.X) + ProbeRadius))
	minY := int(math.Floor(math.Min(from.Y, to.Y) - ProbeRadius))
	maxY := int(math.Floor(math.Max(from.Y, to.Y) + ProbeRadius))
	for ty := minY; ty <= maxY; ty++ {
		for tx := minX; tx <= maxX; tx++ {
			if !s.SolidTile(tx, ty) {
				continue
			}
			if segmentHitsBox(from, to, core.V(float64(tx), float64(ty)), core.V(float64(tx)+1, float64(ty)+1), ProbeRadius) {
				return true
			}
		}
	}

	// Solid bodies on the default layer, excluding the probing body.
	for _, o := range s.bodies {
		if o == b || !o.Enabled || !o.Solid || o.Layer != LayerDefault {
			continue
		}
		if segmentHitsBox(from, to, o.Min(), o.Max(), ProbeRadius) {
			return true
		}
	}
	return false
}

// probeExtent returns how far the body's own collider reaches along dir, so
// the cast starts at the collider edge rather than inside it.
func probeExtent(b *Body, dir core.Vec2) float64 {
	return math.Abs(dir.X)*b.Size.X/2 + math.Abs(dir.Y)*b.Size.Y/2
}

// segmentHitsBox reports whether a segment from→to, inflated by radius,
// intersects the box [min, max]. The inflation approximates a circle cast.
func segmentHitsBox(from, to, boxMin, boxMax core.Vec2, radius float64) bool {
	boxMin = boxMin.Sub(core.V(radius, radius))
	boxMax = boxMax.Add(core.V(radius, radius))

	d := to.Sub(from)
	tEnter, tExit := 0.0, 1.0
	for axis := 0; axis < 2; axis++ {
		var o, dd, lo, hi float64
		if axis == 0 {
			o, dd, lo, hi = from.X, d.X, boxMin.X, boxMax.X
		} else {
			o, dd, lo, hi = from.Y, d.Y, boxMin.Y, boxMax.Y
		}
		if dd == 0 {
			if o < lo || o > hi {
				return false
			}
			continue
		}
		t1 := (lo - o) / dd
		t2 := (hi - o) / dd
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tEnter = math.Max(tEnter, t1)
		tExit = math.Min(tExit, t2)
		if tEnter > tExit {
			return false
		}
	}
	return true
}

// Contacts returns every overlapping pair of enabled bodies, skipping
// static/static pairs and pairs rejected by the filter. The caller resolves
// them before the next integration step.
func (s *Space) Contacts() []Contact {
	var out []Contact
	for i := 0; i < len(s.bodies); i++ {
		a := s.bodies[i]
		if !a.Enabled {
			continue
		}
		for j := i + 1; j < len(s.bodies); j++ {
			b := s.bodies[j]
			if !b.Enabled {
				continue
			}
			if a.Kind == Static && b.Kind == Static {
				continue
			}
			if s.filter != nil && !s.filter(a, b) {
				continue
			}
			if a.Overlaps(b) {
				out = append(out, Contact{A: a, B: b})
			}
		}
	}
	return out
}

// SideFlags reports which sides of a body touched solids during the last
// depenetration pass.
type SideFlags struct {
	Below, Above, Leftward, Rightward bool
}

// ResolveSolids pushes a dynamic body out of solid tiles and solid default
// layer bodies along the axis of least penetration. Returns which sides
// touched. Kinematic bodies are left alone.
func (s *Space) ResolveSolids(b *Body) SideFlags {
	var sides SideFlags
	if b == nil || b.Kind != Dynamic || !b.Enabled {
		return sides
	}

	// Up to a few iterations in case depenetrating from one solid pushes the
	// body into a neighbor.
	for iter := 0; iter < 3; iter++ {
		moved := false

		bMin, bMax := b.Min(), b.Max()
		minX := int(math.Floor(bMin.X))
		maxX := int(math.Floor(bMax.X))
		minY := int(math.Floor(bMin.Y))
		maxY := int(math.Floor(bMax.Y))
		for ty := minY; ty <= maxY; ty++ {
			for tx := minX; tx <= maxX; tx++ {
				if !s.SolidTile(tx, ty) {
					continue
				}
				if s.push(b, core.V(float64(tx), float64(ty)), core.V(float64(tx)+1, float64(ty)+1), &sides) {
					moved = true
				}
			}
		}

		for _, o := range s.bodies {
			if o == b || !o.Enabled || !o.Solid || o.Layer != LayerDefault {
				continue
			}
			if b.Overlaps(o) && s.push(b, o.Min(), o.Max(), &sides) {
				moved = true
			}
		}

		if !moved {
			break
		}
	}
	return sides
}

// push depenetrates b from the box [min, max], mutating b.Pos.
// Returns true if the body moved.
func (s *Space) push(b *Body, boxMin, boxMax core.Vec2, sides *SideFlags) bool {
	bMin, bMax := b.Min(), b.Max()
	overlapX := math.Min(bMax.X, boxMax.X) - math.Max(bMin.X, boxMin.X)
	overlapY := math.Min(bMax.Y, boxMax.Y) - math.Max(bMin.Y, boxMin.Y)
	if overlapX <= 0 || overlapY <= 0 {
		return false
	}

	if overlapY <= overlapX {
		if b.Center().Y >= (boxMin.Y+boxMax.Y)/2 {
			b.Pos.Y += overlapY
			sides.Below = true
		} else {
			b.Pos.Y -= overlapY
			sides.Above = true
		}
	} else {
		if b.Center().X >= (boxMin.X+boxMax.X)/2 {
			b.Pos.X += overlapX
			sides.Leftward = true
		} else {
			b.Pos.X -= overlapX
			sides.Rightward = true
		}
	}
	return true
}
