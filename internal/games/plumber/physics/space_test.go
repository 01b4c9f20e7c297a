package physics

import (
	"testing"

	"github.com/vovakirdan/tui-plumber/internal/core"
)

func TestBodyOverlaps(t *testing.T) {
	a := NewBody(Dynamic, LayerPlayer, 1, 1)
	a.Pos = core.V(0, 0)
	b := NewBody(Dynamic, LayerEnemy, 1, 1)
	b.Pos = core.V(0.5, 0.5)

	if !a.Overlaps(b) {
		t.Error("Overlapping bodies should report true")
	}

	b.Pos = core.V(2, 0)
	if a.Overlaps(b) {
		t.Error("Separated bodies should report false")
	}

	// Touching edges do not overlap
	b.Pos = core.V(1, 0)
	if a.Overlaps(b) {
		t.Error("Edge-adjacent bodies should not overlap")
	}

	// Disabled bodies never overlap
	b.Pos = core.V(0, 0)
	b.Enabled = false
	if a.Overlaps(b) {
		t.Error("Disabled body should not overlap")
	}
}

func TestBodyFootprint(t *testing.T) {
	b := NewBody(Dynamic, LayerPlayer, 0.9, 1.0)
	b.Pos = core.V(5, 5)

	// Growing keeps Pos fixed; only the collider changes
	b.SetFootprint(core.V(0.9, 2.0), core.V(0, 0.5))

	if b.Pos != core.V(5, 5) {
		t.Errorf("SetFootprint must not move Pos, got %v", b.Pos)
	}
	if b.Center() != core.V(5, 5.5) {
		t.Errorf("Center = %v, expected (5, 5.5)", b.Center())
	}
	if b.Min().Y != 4.5 {
		t.Errorf("Feet should stay at Pos.Y-0.5, got min %v", b.Min())
	}
	if b.Max().Y != 6.5 {
		t.Errorf("Head should reach 6.5, got max %v", b.Max())
	}
}

func TestSpaceSolidTiles(t *testing.T) {
	s := NewSpace(10, 5)
	s.SetSolid(3, 2, true)

	if !s.SolidTile(3, 2) {
		t.Error("Tile should be solid")
	}
	if s.SolidTile(3, 3) {
		t.Error("Unset tile should not be solid")
	}

	// Out of bounds: never solid, never panics
	if s.SolidTile(-1, 0) || s.SolidTile(10, 0) || s.SolidTile(0, 5) {
		t.Error("Out-of-bounds tiles should not be solid")
	}
	s.SetSolid(-1, 0, true) // silent
	s.SetSolid(99, 99, true)
}

func TestProbeDown(t *testing.T) {
	s := NewSpace(10, 10)
	for x := 0; x < 10; x++ {
		s.SetSolid(x, 0, true) // ground row covers y in [0, 1)
	}

	b := NewBody(Dynamic, LayerPlayer, 0.9, 1.0)
	b.Pos = core.V(5, 1.5) // feet at y=1, standing on ground

	if !s.Probe(b, core.Down) {
		t.Error("Probe down should hit the ground directly below")
	}
	if s.Probe(b, core.Up) {
		t.Error("Probe up should find nothing")
	}

	// Well above the ground the probe misses
	b.Pos = core.V(5, 4)
	if s.Probe(b, core.Down) {
		t.Error("Probe down should miss from high up")
	}
}

func TestProbeWall(t *testing.T) {
	s := NewSpace(10, 10)
	s.SetSolid(6, 1, true)

	b := NewBody(Dynamic, LayerPlayer, 0.9, 1.0)
	b.Pos = core.V(5.4, 1.5) // right edge near the wall tile at x=6

	if !s.Probe(b, core.Right) {
		t.Error("Probe right should hit the wall")
	}
	if s.Probe(b, core.Left) {
		t.Error("Probe left should find nothing")
	}
}

func TestProbeSolidBody(t *testing.T) {
	s := NewSpace(10, 10)

	block := NewBody(Static, LayerDefault, 1, 1)
	block.Pos = core.V(6.5, 1.5)
	block.Solid = true
	s.Add(block)

	b := NewBody(Dynamic, LayerPlayer, 0.9, 1.0)
	b.Pos = core.V(5.4, 1.5)
	s.Add(b)

	if !s.Probe(b, core.Right) {
		t.Error("Probe should hit a solid default-layer body")
	}

	// Non-solid bodies are invisible to probes
	block.Solid = false
	if s.Probe(b, core.Right) {
		t.Error("Probe should ignore non-solid bodies")
	}
}

func TestProbeKinematicNeverProbes(t *testing.T) {
	s := NewSpace(10, 10)
	for x := 0; x < 10; x++ {
		s.SetSolid(x, 0, true)
	}

	b := NewBody(Dynamic, LayerPlayer, 0.9, 1.0)
	b.Pos = core.V(5, 1.5)
	b.Kind = Kinematic

	if s.Probe(b, core.Down) {
		t.Error("Kinematic bodies must not probe")
	}
}

func TestResolveSolidsPushesUp(t *testing.T) {
	s := NewSpace(10, 10)
	for x := 0; x < 10; x++ {
		s.SetSolid(x, 0, true)
	}

	b := NewBody(Dynamic, LayerPlayer, 0.9, 1.0)
	b.Pos = core.V(5, 1.2) // feet at 0.7, sunk 0.3 into the ground
	s.Add(b)

	sides := s.ResolveSolids(b)

	if !sides.Below {
		t.Error("Expected Below contact")
	}
	if b.Min().Y < 1.0-1e-9 {
		t.Errorf("Body should rest on the ground, feet at %v", b.Min().Y)
	}
}

func TestResolveSolidsPushesSideways(t *testing.T) {
	s := NewSpace(10, 10)
	s.SetSolid(6, 1, true)

	b := NewBody(Dynamic, LayerPlayer, 0.9, 1.0)
	// Slightly overlapping the wall from the left, X overlap smaller than Y
	b.Pos = core.V(5.7, 1.5)
	s.Add(b)

	sides := s.ResolveSolids(b)

	if !sides.Rightward {
		t.Error("Expected Rightward contact")
	}
	if b.Max().X > 6.0+1e-9 {
		t.Errorf("Body should be pushed clear of the wall, right edge %v", b.Max().X)
	}
}

func TestResolveSolidsBumpsHead(t *testing.T) {
	s := NewSpace(10, 10)

	block := NewBody(Static, LayerDefault, 1, 1)
	block.Pos = core.V(5.5, 3.5)
	block.Solid = true
	s.Add(block)

	b := NewBody(Dynamic, LayerPlayer, 0.9, 1.0)
	b.Pos = core.V(5.5, 2.6) // head at 3.1, poking into the block
	s.Add(b)

	sides := s.ResolveSolids(b)

	if !sides.Above {
		t.Error("Expected Above contact")
	}
	if b.Max().Y > 3.0+1e-9 {
		t.Errorf("Body should be pushed below the block, head at %v", b.Max().Y)
	}
}

func TestResolveSolidsIgnoresKinematic(t *testing.T) {
	s := NewSpace(10, 10)
	for x := 0; x < 10; x++ {
		s.SetSolid(x, 0, true)
	}

	b := NewBody(Dynamic, LayerPlayer, 0.9, 1.0)
	b.Pos = core.V(5, 0.5)
	b.Kind = Kinematic
	before := b.Pos

	sides := s.ResolveSolids(b)
	if sides != (SideFlags{}) || b.Pos != before {
		t.Error("Kinematic bodies must not be depenetrated")
	}
}

func TestContactsAndFilter(t *testing.T) {
	s := NewSpace(10, 10)

	player := NewBody(Dynamic, LayerPlayer, 1, 1)
	player.Pos = core.V(5, 5)
	enemy := NewBody(Dynamic, LayerEnemy, 1, 1)
	enemy.Pos = core.V(5.3, 5)
	s.Add(player)
	s.Add(enemy)

	contacts := s.Contacts()
	if len(contacts) != 1 {
		t.Fatalf("Expected 1 contact, got %d", len(contacts))
	}

	// Filter suppresses the pair
	s.SetFilter(func(a, b *Body) bool {
		return !(a.Layer == LayerPlayer && b.Layer == LayerEnemy ||
			a.Layer == LayerEnemy && b.Layer == LayerPlayer)
	})
	if got := s.Contacts(); len(got) != 0 {
		t.Errorf("Filtered pair should yield no contacts, got %d", len(got))
	}

	// Clearing the filter restores the pair
	s.SetFilter(nil)
	if got := s.Contacts(); len(got) != 1 {
		t.Errorf("Expected 1 contact after clearing filter, got %d", len(got))
	}

	// Disabled bodies produce no contacts
	enemy.Enabled = false
	if got := s.Contacts(); len(got) != 0 {
		t.Errorf("Disabled body should not contact, got %d", len(got))
	}
}

func TestContactsSkipStaticPairs(t *testing.T) {
	s := NewSpace(10, 10)

	a := NewBody(Static, LayerDefault, 1, 1)
	a.Pos = core.V(5, 5)
	b := NewBody(Static, LayerDefault, 1, 1)
	b.Pos = core.V(5.2, 5)
	s.Add(a)
	s.Add(b)

	if got := s.Contacts(); len(got) != 0 {
		t.Errorf("Static/static pairs should be skipped, got %d", len(got))
	}
}

func TestSpaceRemove(t *testing.T) {
	s := NewSpace(10, 10)

	a := NewBody(Dynamic, LayerPlayer, 1, 1)
	b := NewBody(Dynamic, LayerEnemy, 1, 1)
	a.Pos = core.V(5, 5)
	b.Pos = core.V(5, 5)
	s.Add(a)
	s.Add(b)

	s.Remove(b)
	if got := s.Contacts(); len(got) != 0 {
		t.Errorf("Removed body should not contact, got %d", len(got))
	}

	s.Remove(b) // removing twice is harmless
}
