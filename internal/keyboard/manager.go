// Package keyboard owns all interaction state of the piano: which keys are
// sounding, whether the power button is mid-press, and the power state
// gating audio. It classifies picked scene nodes and issues the paired
// visual/audio commands through injected effectors; it never blocks on
// them.
package keyboard

import (
	"strings"
	"time"

	"github.com/PixPMusic/gopher-piano/internal/note"
	"github.com/PixPMusic/gopher-piano/internal/scene"
)

// Press travel and timing. Sharps travel less than naturals; the power
// button dips, holds briefly, and comes back up.
const (
	naturalPressDepth = 0.2
	sharpPressDepth   = 0.1
	buttonPressDepth  = 0.06

	keyPressDuration   = 80 * time.Millisecond
	keyReleaseDuration = 140 * time.Millisecond

	buttonPressDuration   = 100 * time.Millisecond
	buttonHoldDuration    = 250 * time.Millisecond
	buttonReleaseDuration = 120 * time.Millisecond
)

// Indicator colors for the two power states.
const (
	powerOnColor  = "green"
	powerOffColor = "red"
)

// Animator moves scene nodes. Commands are fire-and-forget; done callbacks
// re-enter the manager on the event loop.
type Animator interface {
	MoveY(node *scene.Node, targetY float64, duration time.Duration, done func())
	Delay(d time.Duration, fn func())
}

// Sounder triggers note audio. Release must be idempotent and safe for
// notes whose attack was never issued.
type Sounder interface {
	TriggerAttack(n note.Name)
	TriggerRelease(n note.Name)
}

// Manager is the interaction state machine. It is not safe for concurrent
// use; all calls must come from the event loop.
type Manager struct {
	anim  Animator
	sound Sounder

	rest      map[string]float64
	nodes     map[string]*scene.Node
	indicator *scene.Material

	pressedKeys    []note.Name
	pressedButtons map[string]struct{}
	powerOn        bool
}

// New creates a manager wired to its effectors. Initialize must be called
// before it can handle input.
func New(anim Animator, sound Sounder) *Manager {
	return &Manager{
		anim:           anim,
		sound:          sound,
		rest:           make(map[string]float64),
		nodes:          make(map[string]*scene.Node),
		pressedButtons: make(map[string]struct{}),
	}
}

// Initialize scans the scene for the fixed set of key nodes and the power
// button, caching each found node and its rest Y position. Missing nodes
// are skipped: they simply never become interactive. Power starts off.
func (m *Manager) Initialize(root *scene.Node) {
	for _, n := range note.All {
		name := scene.KeyPrefix + string(n)
		if node := root.FindByName(name); node != nil {
			m.nodes[name] = node
			m.rest[name] = node.Position.Y
		}
	}
	if node := root.FindByName(scene.PowerButton); node != nil {
		m.nodes[scene.PowerButton] = node
		m.rest[scene.PowerButton] = node.Position.Y
	}
	if node := root.FindByName(scene.PowerIndicator); node != nil && node.Material != nil {
		m.indicator = node.Material
		m.indicator.SetColor(powerOffColor)
	}
}

// PowerOn reports the current power state.
func (m *Manager) PowerOn() bool {
	return m.powerOn
}

// PressedKeys returns the notes currently held, in press order.
func (m *Manager) PressedKeys() []note.Name {
	return m.pressedKeys
}

// KeyNode returns the scene node for a note, or nil if it was missing at
// initialization.
func (m *Manager) KeyNode(n note.Name) *scene.Node {
	return m.nodes[scene.KeyPrefix+string(n)]
}

// HandleIntersectedObject processes one discrete press event for the
// nearest-hit node. A nil node (pick ray missed) and hits on
// non-interactive geometry are no-ops.
func (m *Manager) HandleIntersectedObject(node *scene.Node) {
	if node == nil {
		return
	}
	switch {
	case node.Name == scene.PowerButton:
		m.pressPowerButton(node)
	case strings.Contains(node.Name, scene.KeyPrefix):
		m.pressKey(node)
	}
}

// pressPowerButton toggles power once per completed press gesture. The
// debounce entry is removed only in the final animation completion
// callback, so the button cannot re-toggle until its full press-release
// cycle finishes.
func (m *Manager) pressPowerButton(node *scene.Node) {
	name := node.Name
	if _, held := m.pressedButtons[name]; held {
		return
	}
	rest, ok := m.rest[name]
	if !ok {
		return
	}

	m.powerOn = !m.powerOn
	m.pressedButtons[name] = struct{}{}

	m.anim.MoveY(node, rest-buttonPressDepth, buttonPressDuration, func() {
		m.anim.Delay(buttonHoldDuration, func() {
			m.anim.MoveY(node, rest, buttonReleaseDuration, func() {
				delete(m.pressedButtons, name)
			})
		})
	})

	if m.indicator != nil {
		if m.powerOn {
			m.indicator.SetColor(powerOnColor)
		} else {
			m.indicator.SetColor(powerOffColor)
		}
	}
}

// pressKey depresses a key and, if powered, sounds it. The visual press
// always happens; audio is evaluated once, at press time, against the
// current power state.
func (m *Manager) pressKey(node *scene.Node) {
	parts := strings.SplitN(node.Name, "_", 2)
	if len(parts) < 2 {
		return
	}
	n := note.Name(parts[1])
	if m.isPressed(n) {
		return
	}
	rest, ok := m.rest[node.Name]
	if !ok {
		return
	}

	m.pressedKeys = append(m.pressedKeys, n)

	depth := naturalPressDepth
	if n.IsAccidental() {
		depth = sharpPressDepth
	}
	m.anim.MoveY(node, rest-depth, keyPressDuration, nil)

	if m.powerOn {
		m.sound.TriggerAttack(n)
	}
}

// ReleaseAllPressedKeys ends the current press gesture: every held note
// gets exactly one audio release and one return-to-rest animation, then
// the pressed set is cleared wholesale.
func (m *Manager) ReleaseAllPressedKeys() {
	for _, n := range m.pressedKeys {
		m.releaseEffects(n)
	}
	m.pressedKeys = m.pressedKeys[:0]
}

// ReleaseKey releases a single held note, for inputs that deliver per-note
// note-off events. Unheld notes are a no-op.
func (m *Manager) ReleaseKey(n note.Name) {
	for i, held := range m.pressedKeys {
		if held == n {
			m.releaseEffects(n)
			m.pressedKeys = append(m.pressedKeys[:i], m.pressedKeys[i+1:]...)
			return
		}
	}
}

// releaseEffects issues the audio release and the return-to-rest
// animation for one note. The release is unconditional: it is safe even if
// power was off at attack time or toggled since.
func (m *Manager) releaseEffects(n note.Name) {
	m.sound.TriggerRelease(n)
	name := scene.KeyPrefix + string(n)
	if node, ok := m.nodes[name]; ok {
		m.anim.MoveY(node, m.rest[name], keyReleaseDuration, nil)
	}
}

func (m *Manager) isPressed(n note.Name) bool {
	for _, held := range m.pressedKeys {
		if held == n {
			return true
		}
	}
	return false
}
