package player

import (
	"testing"

	"github.com/vovakirdan/tui-plumber/internal/core"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/events"
)

func testCombat(t *testing.T) (*Player, *Combat, *events.Bus) {
	t.Helper()
	bus := events.NewBus()
	p := New(testConfig(), bus, core.V(10, 1.5))
	return p, p.Combat(), bus
}

// advance runs unscaled ticks until the transition finishes.
func finishTransition(c *Combat) {
	for i := 0; i < 200 && c.Transitioning(); i++ {
		c.UnscaledTick(testDT)
	}
}

func TestGrowAppliesBigFootprint(t *testing.T) {
	p, c, _ := testCombat(t)

	frozen := 0.0
	c.OnFreeze = func(s float64) { frozen = s }

	c.Grow()
	if !c.Transitioning() {
		t.Fatal("Grow should start a transition")
	}
	if frozen != 0.5 {
		t.Errorf("Transition should freeze for 0.5s, got %v", frozen)
	}
	// Form swaps atomically at the end, not during the flicker
	if c.Form() != FormSmall {
		t.Error("Form must not change until the transition ends")
	}

	finishTransition(c)

	if c.Form() != FormBig {
		t.Errorf("Form = %v after transition, expected big", c.Form())
	}
	size, offset := Footprint(FormBig)
	if p.Body.Size != size || p.Body.Offset != offset {
		t.Errorf("Big footprint not applied: size %v offset %v", p.Body.Size, p.Body.Offset)
	}

	// Feet stay at Pos.Y-0.5 in both forms
	if p.Body.Min().Y != p.Body.Pos.Y-0.5 {
		t.Errorf("Feet moved: min.Y %v, Pos.Y %v", p.Body.Min().Y, p.Body.Pos.Y)
	}

	// Growing while already big is a no-op
	c.Grow()
	if c.Transitioning() {
		t.Error("Grow on a big player should do nothing")
	}
}

func TestHitBigShrinksAndGrantsGrace(t *testing.T) {
	p, c, bus := testCombat(t)
	c.OnFreeze = func(float64) {}
	c.RequestReset = func(float64) {}

	powerDowns := 0
	bus.Subscribe(events.PowerDown, func(events.Kind) { powerDowns++ })

	c.Grow()
	finishTransition(c)

	c.Hit()
	if powerDowns != 1 {
		t.Errorf("Shrink should publish PowerDown once, got %d", powerDowns)
	}
	finishTransition(c)

	if c.Form() != FormSmall {
		t.Errorf("Form = %v after hit, expected small", c.Form())
	}
	size, _ := Footprint(FormSmall)
	if p.Body.Size != size {
		t.Errorf("Small footprint not applied, size %v", p.Body.Size)
	}
	if !c.CollisionsDisabled() {
		t.Error("Post-shrink grace window should be active")
	}

	// Grace window prevents further damage
	c.Hit()
	if c.Dead() {
		t.Error("Hit during grace window must be ignored")
	}

	// Window expires after the configured second
	for i := 0; i < 60; i++ {
		c.UnscaledTick(testDT)
	}
	if c.CollisionsDisabled() {
		t.Error("Grace window should have expired")
	}
}

func TestHitSmallKills(t *testing.T) {
	p, c, bus := testCombat(t)

	deaths := 0
	bus.Subscribe(events.PlayerDeath, func(events.Kind) { deaths++ })

	resetDelay := 0.0
	c.RequestReset = func(d float64) { resetDelay = d }

	c.Hit()

	if !c.Dead() {
		t.Fatal("Small player hit should die")
	}
	if deaths != 1 {
		t.Errorf("Expected one PlayerDeath event, got %d", deaths)
	}
	if p.Body.Enabled {
		t.Error("Death should disable the collider")
	}
	if p.Body.Vel.Y != p.JumpForce() {
		t.Errorf("Death arc should launch upward at jump force, got %v", p.Body.Vel.Y)
	}
	if resetDelay != 2.5 {
		t.Errorf("Reset delay = %v, expected 2.5", resetDelay)
	}

	// Dead players ignore everything
	c.Hit()
	c.Grow()
	c.StarPower()
	if deaths != 1 || c.Star() || c.Transitioning() {
		t.Error("Dead player must ignore further combat calls")
	}
}

func TestStarOverridesDamage(t *testing.T) {
	_, c, bus := testCombat(t)

	var got []events.Kind
	bus.SubscribeAll(func(k events.Kind) { got = append(got, k) })

	c.StarPower()
	if !c.Star() {
		t.Fatal("Star should be active")
	}
	if len(got) != 1 || got[0] != events.StarStart {
		t.Fatalf("Expected one StarStart, got %v", got)
	}

	// Damage while starred: no effect, no events
	got = nil
	c.Hit()
	if c.Dead() || len(got) != 0 {
		t.Errorf("Star must absorb hits silently, dead=%v events=%v", c.Dead(), got)
	}
}

func TestStarRestartsNotStacks(t *testing.T) {
	_, c, bus := testCombat(t)

	starts, stops := 0, 0
	bus.Subscribe(events.StarStart, func(events.Kind) { starts++ })
	bus.Subscribe(events.StarStop, func(events.Kind) { stops++ })

	c.StarPower()

	// Burn half the duration, then grab a second star
	for i := 0; i < 250; i++ { // 5s
		c.ScaledTick(testDT)
	}
	c.StarPower()
	if starts != 1 {
		t.Errorf("Second star must not re-fire StarStart, got %d", starts)
	}

	// The timer restarted: 6 more seconds still starred, then expiry
	for i := 0; i < 300; i++ { // 6s
		c.ScaledTick(testDT)
	}
	if !c.Star() {
		t.Error("Star should still be active after restart")
	}
	for i := 0; i < 250; i++ { // 5s more
		c.ScaledTick(testDT)
	}
	if c.Star() {
		t.Error("Star should have expired")
	}
	if stops != 1 {
		t.Errorf("Expected one StarStop, got %d", stops)
	}
}

func TestDisplayFormFlickers(t *testing.T) {
	_, c, _ := testCombat(t)
	c.OnFreeze = func(float64) {}

	c.Grow()

	seen := map[Form]bool{}
	for i := 0; i < 24 && c.Transitioning(); i++ { // just under the 0.5s window
		c.UnscaledTick(testDT)
		seen[c.DisplayForm()] = true
	}

	if !seen[FormSmall] || !seen[FormBig] {
		t.Errorf("Flicker should alternate forms, saw %v", seen)
	}
}

func TestVisibleBlinksDuringGrace(t *testing.T) {
	_, c, _ := testCombat(t)
	c.OnFreeze = func(float64) {}

	c.Grow()
	finishTransition(c)
	c.Shrink()
	finishTransition(c)

	if !c.CollisionsDisabled() {
		t.Fatal("Grace window expected after shrink")
	}

	visible, hidden := false, false
	for i := 0; i < 45 && c.CollisionsDisabled(); i++ {
		c.UnscaledTick(testDT)
		if c.Visible() {
			visible = true
		} else {
			hidden = true
		}
	}
	if !visible || !hidden {
		t.Errorf("Sprite should blink during grace: visible=%v hidden=%v", visible, hidden)
	}

	// Outside the window the sprite is always visible
	for i := 0; i < 60; i++ {
		c.UnscaledTick(testDT)
	}
	if !c.Visible() {
		t.Error("Sprite must be visible outside the grace window")
	}
}

func TestColorOverrideCyclesDuringStar(t *testing.T) {
	_, c, _ := testCombat(t)

	if c.ColorOverride() != core.ColorDefault {
		t.Error("No override without star power")
	}

	c.StarPower()

	colors := map[core.Color]bool{}
	for i := 0; i < 100; i++ {
		c.UnscaledTick(testDT)
		colors[c.ColorOverride()] = true
	}
	if len(colors) < 2 {
		t.Errorf("Star hue should cycle, saw %d colors", len(colors))
	}
}

func TestHitDuringTransitionIgnored(t *testing.T) {
	_, c, _ := testCombat(t)
	c.OnFreeze = func(float64) {}

	c.Grow()
	c.Hit() // mid-transition
	if c.Dead() {
		t.Error("Hit during a transition must be ignored")
	}
}

func TestStarRegrantRestartsColorCycle(t *testing.T) {
	_, c, _ := testCombat(t)

	c.StarPower()
	first := c.ColorOverride()

	for i := 0; i < 6; i++ {
		c.UnscaledTick(testDT)
	}
	if c.ColorOverride() == first {
		t.Fatal("Hue should have advanced past the first palette entry")
	}

	// Picking up a second star restarts the cycle from the top
	c.StarPower()
	if got := c.ColorOverride(); got != first {
		t.Errorf("Re-granted star should restart the hue cycle, got %v want %v", got, first)
	}
}
