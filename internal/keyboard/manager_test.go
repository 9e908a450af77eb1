package keyboard

import (
	"testing"
	"time"

	"github.com/PixPMusic/gopher-piano/internal/note"
	"github.com/PixPMusic/gopher-piano/internal/scene"
)

type move struct {
	node    *scene.Node
	targetY float64
}

// fakeAnimator records MoveY commands and holds their completion callbacks
// until the test fires them, standing in for the tween engine.
type fakeAnimator struct {
	moves   []move
	pending []func()
}

func (f *fakeAnimator) MoveY(node *scene.Node, targetY float64, duration time.Duration, done func()) {
	f.moves = append(f.moves, move{node: node, targetY: targetY})
	if done != nil {
		f.pending = append(f.pending, done)
	}
}

func (f *fakeAnimator) Delay(d time.Duration, fn func()) {
	if fn != nil {
		f.pending = append(f.pending, fn)
	}
}

// runOne fires the oldest outstanding callback.
func (f *fakeAnimator) runOne() bool {
	if len(f.pending) == 0 {
		return false
	}
	fn := f.pending[0]
	f.pending = f.pending[1:]
	fn()
	return true
}

// finishAll drains callbacks, including ones enqueued by other callbacks.
func (f *fakeAnimator) finishAll() {
	for f.runOne() {
	}
}

func (f *fakeAnimator) movesFor(node *scene.Node) []move {
	var out []move
	for _, m := range f.moves {
		if m.node == node {
			out = append(out, m)
		}
	}
	return out
}

type fakeSounder struct {
	attacks  []note.Name
	releases []note.Name
}

func (f *fakeSounder) TriggerAttack(n note.Name)  { f.attacks = append(f.attacks, n) }
func (f *fakeSounder) TriggerRelease(n note.Name) { f.releases = append(f.releases, n) }

func newTestManager() (*Manager, *fakeAnimator, *fakeSounder, *scene.Node) {
	anim := &fakeAnimator{}
	sound := &fakeSounder{}
	m := New(anim, sound)
	root := scene.BuildKeyboard()
	m.Initialize(root)
	return m, anim, sound, root
}

func powerOn(m *Manager, anim *fakeAnimator, root *scene.Node) {
	m.HandleIntersectedObject(root.FindByName(scene.PowerButton))
	anim.finishAll()
}

func TestInitializeStartsPoweredOff(t *testing.T) {
	m, _, _, root := newTestManager()

	if m.PowerOn() {
		t.Error("power should start off")
	}
	if len(m.PressedKeys()) != 0 {
		t.Errorf("pressed set should start empty, got %v", m.PressedKeys())
	}
	indicator := root.FindByName(scene.PowerIndicator)
	if indicator.Material.Color != "red" {
		t.Errorf("indicator should start red, got %q", indicator.Material.Color)
	}
}

func TestPressKeySoundsWhenPowered(t *testing.T) {
	m, anim, sound, root := newTestManager()
	powerOn(m, anim, root)

	key := root.FindByName("Key_C3")
	rest := key.Position.Y
	m.HandleIntersectedObject(key)

	if len(sound.attacks) != 1 || sound.attacks[0] != "C3" {
		t.Fatalf("expected one attack for C3, got %v", sound.attacks)
	}
	moves := anim.movesFor(key)
	if len(moves) != 1 {
		t.Fatalf("expected one press animation, got %d", len(moves))
	}
	if got, want := moves[0].targetY, rest-naturalPressDepth; got != want {
		t.Errorf("natural key press target = %v, want %v", got, want)
	}
	if got := m.PressedKeys(); len(got) != 1 || got[0] != "C3" {
		t.Errorf("pressed set = %v, want [C3]", got)
	}
}

func TestRepeatedPressWhileHeldIsIdempotent(t *testing.T) {
	m, anim, sound, root := newTestManager()
	powerOn(m, anim, root)

	key := root.FindByName("Key_C3")
	m.HandleIntersectedObject(key)
	m.HandleIntersectedObject(key)
	m.HandleIntersectedObject(key)

	if len(sound.attacks) != 1 {
		t.Errorf("expected one attack for a held key, got %d", len(sound.attacks))
	}
	if got := anim.movesFor(key); len(got) != 1 {
		t.Errorf("expected one press animation for a held key, got %d", len(got))
	}
	if got := m.PressedKeys(); len(got) != 1 {
		t.Errorf("pressed set = %v, want a single entry", got)
	}
}

func TestSharpKeysTravelLessThanNaturals(t *testing.T) {
	m, anim, _, root := newTestManager()
	powerOn(m, anim, root)

	sharp := root.FindByName("Key_C#3")
	sharpRest := sharp.Position.Y
	m.HandleIntersectedObject(sharp)

	moves := anim.movesFor(sharp)
	if len(moves) != 1 {
		t.Fatalf("expected one press animation, got %d", len(moves))
	}
	if got, want := moves[0].targetY, sharpRest-sharpPressDepth; got != want {
		t.Errorf("sharp key press target = %v, want %v", got, want)
	}
}

func TestPressWhilePoweredOffIsSilent(t *testing.T) {
	m, anim, sound, root := newTestManager()

	key := root.FindByName("Key_D3")
	m.HandleIntersectedObject(key)

	if len(sound.attacks) != 0 {
		t.Errorf("powered-off press should not sound, got %v", sound.attacks)
	}
	if got := anim.movesFor(key); len(got) != 1 {
		t.Errorf("powered-off press should still animate, got %d moves", len(got))
	}

	// Turning power on afterwards must not sound the already-held key.
	powerOn(m, anim, root)
	if len(sound.attacks) != 0 {
		t.Errorf("power-on should not retroactively sound held keys, got %v", sound.attacks)
	}

	// Release is still issued so a stale voice can never stick.
	m.ReleaseAllPressedKeys()
	if len(sound.releases) != 1 || sound.releases[0] != "D3" {
		t.Errorf("expected one release for D3, got %v", sound.releases)
	}
}

func TestPowerButtonDebounce(t *testing.T) {
	m, anim, _, root := newTestManager()
	button := root.FindByName(scene.PowerButton)
	rest := button.Position.Y

	m.HandleIntersectedObject(button)
	if !m.PowerOn() {
		t.Fatal("first press should turn power on")
	}

	// Presses landing before the press-hold-release cycle completes are
	// swallowed.
	m.HandleIntersectedObject(button)
	m.HandleIntersectedObject(button)
	if !m.PowerOn() {
		t.Error("debounced presses must not re-toggle power")
	}

	// Walk the gesture: press done, hold elapsed.
	anim.runOne()
	anim.runOne()
	m.HandleIntersectedObject(button)
	if !m.PowerOn() {
		t.Error("press before the release animation completes must still be swallowed")
	}

	// Release done: the gesture is over and the next press toggles again.
	anim.finishAll()
	m.HandleIntersectedObject(button)
	if m.PowerOn() {
		t.Error("press after gesture completion should toggle power off")
	}
	anim.finishAll()

	moves := anim.movesFor(button)
	if len(moves) != 4 {
		t.Fatalf("two gestures should produce four button moves, got %d", len(moves))
	}
	if moves[0].targetY != rest-buttonPressDepth || moves[1].targetY != rest {
		t.Errorf("gesture moves = %v, want dip to %v then return to %v",
			moves[:2], rest-buttonPressDepth, rest)
	}
}

func TestPowerIndicatorTracksToggles(t *testing.T) {
	m, anim, _, root := newTestManager()
	indicator := root.FindByName(scene.PowerIndicator)
	button := root.FindByName(scene.PowerButton)

	m.HandleIntersectedObject(button)
	if indicator.Material.Color != "green" {
		t.Errorf("indicator after power on = %q, want green", indicator.Material.Color)
	}
	anim.finishAll()

	m.HandleIntersectedObject(button)
	if indicator.Material.Color != "red" {
		t.Errorf("indicator after power off = %q, want red", indicator.Material.Color)
	}
}

func TestReleaseAllPressedKeys(t *testing.T) {
	m, anim, sound, root := newTestManager()
	powerOn(m, anim, root)

	c3 := root.FindByName("Key_C3")
	d3 := root.FindByName("Key_D3")
	c3Rest := c3.Position.Y
	d3Rest := d3.Position.Y

	m.HandleIntersectedObject(c3)
	m.HandleIntersectedObject(d3)
	anim.moves = nil

	m.ReleaseAllPressedKeys()

	if len(m.PressedKeys()) != 0 {
		t.Errorf("pressed set after release = %v, want empty", m.PressedKeys())
	}
	if len(sound.releases) != 2 {
		t.Fatalf("expected two releases, got %v", sound.releases)
	}
	if sound.releases[0] != "C3" || sound.releases[1] != "D3" {
		t.Errorf("releases = %v, want [C3 D3] in press order", sound.releases)
	}
	if got := anim.movesFor(c3); len(got) != 1 || got[0].targetY != c3Rest {
		t.Errorf("C3 should return to rest %v, got %v", c3Rest, got)
	}
	if got := anim.movesFor(d3); len(got) != 1 || got[0].targetY != d3Rest {
		t.Errorf("D3 should return to rest %v, got %v", d3Rest, got)
	}

	// Releasing with nothing held is a no-op.
	m.ReleaseAllPressedKeys()
	if len(sound.releases) != 2 {
		t.Errorf("empty release should issue nothing, got %v", sound.releases)
	}
}

func TestReleaseKeySingleNote(t *testing.T) {
	m, anim, sound, root := newTestManager()
	powerOn(m, anim, root)

	m.HandleIntersectedObject(root.FindByName("Key_C3"))
	m.HandleIntersectedObject(root.FindByName("Key_E3"))

	m.ReleaseKey("C3")
	if got := m.PressedKeys(); len(got) != 1 || got[0] != "E3" {
		t.Errorf("pressed set after releasing C3 = %v, want [E3]", got)
	}
	if len(sound.releases) != 1 || sound.releases[0] != "C3" {
		t.Errorf("releases = %v, want [C3]", sound.releases)
	}

	// Unheld note is a no-op.
	m.ReleaseKey("G4")
	if len(sound.releases) != 1 {
		t.Errorf("releasing an unheld note should do nothing, got %v", sound.releases)
	}
}

func TestNonInteractiveHitsAreIgnored(t *testing.T) {
	m, anim, sound, root := newTestManager()
	powerOn(m, anim, root)
	anim.moves = nil

	m.HandleIntersectedObject(nil)
	m.HandleIntersectedObject(root.FindByName(scene.BodyName))
	m.HandleIntersectedObject(root.FindByName(scene.PowerHousing))

	if len(anim.moves) != 0 || len(sound.attacks) != 0 {
		t.Errorf("non-interactive hits must be no-ops, got moves=%v attacks=%v",
			anim.moves, sound.attacks)
	}
	if m.PowerOn() != true {
		t.Error("housing hit must not reach the power button")
	}
}

func TestUnknownKeyNodeIsIgnored(t *testing.T) {
	m, anim, sound, _ := newTestManager()

	// A key-named node that was never part of the initialized scene has no
	// cached rest position and must be skipped.
	stray := &scene.Node{Name: "Key_B7"}
	m.HandleIntersectedObject(stray)

	if len(m.PressedKeys()) != 0 || len(anim.moves) != 0 || len(sound.attacks) != 0 {
		t.Error("uninitialized key node should be inert")
	}
}

func TestMissingPowerButtonScene(t *testing.T) {
	anim := &fakeAnimator{}
	sound := &fakeSounder{}
	m := New(anim, sound)

	// A scene without the power button group: keys still work, the power
	// button name is inert.
	root := &scene.Node{Name: scene.RootName}
	root.Add(&scene.Node{
		Name:     scene.KeyPrefix + "C3",
		Position: scene.Vec3{Y: 0.5},
		Size:     scene.Vec3{X: 1, Y: 1, Z: 1},
	})
	m.Initialize(root)

	m.HandleIntersectedObject(&scene.Node{Name: scene.PowerButton})
	if m.PowerOn() {
		t.Error("power must not toggle when the button is missing from the scene")
	}

	m.HandleIntersectedObject(root.FindByName("Key_C3"))
	if got := m.PressedKeys(); len(got) != 1 || got[0] != "C3" {
		t.Errorf("keys should still press in a buttonless scene, got %v", got)
	}
}
