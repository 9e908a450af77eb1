// Package tween animates scene node positions. Animations are
// fire-and-forget: callers enqueue a target and an optional completion
// callback, and the window's render loop drives Step once per frame.
// Starting a new animation on a node supersedes any animation already
// running on it; the superseded animation's completion callback is
// dropped with it.
package tween

import (
	"time"

	"github.com/PixPMusic/gopher-piano/internal/scene"
)

type animation struct {
	node     *scene.Node
	from     float64
	to       float64
	start    time.Time
	duration time.Duration
	done     func()
}

// Engine owns the set of in-flight animations. It is not safe for
// concurrent use: Step and the Move/Delay calls must all happen on the
// event loop, which is how the window drives it.
type Engine struct {
	active []*animation
	delays []*delay
}

type delay struct {
	at time.Time
	fn func()
}

// NewEngine creates an empty animation engine.
func NewEngine() *Engine {
	return &Engine{}
}

// MoveY animates the node's Y position from its current value to targetY
// over the given duration. done, if non-nil, runs after the final step.
// A zero duration applies the target immediately.
func (e *Engine) MoveY(node *scene.Node, targetY float64, duration time.Duration, done func()) {
	if node == nil {
		return
	}
	// supersede any running animation on the same node
	for i, a := range e.active {
		if a.node == node {
			e.active = append(e.active[:i], e.active[i+1:]...)
			break
		}
	}
	if duration <= 0 {
		node.Position.Y = targetY
		if done != nil {
			done()
		}
		return
	}
	e.active = append(e.active, &animation{
		node:     node,
		from:     node.Position.Y,
		to:       targetY,
		start:    time.Now(),
		duration: duration,
		done:     done,
	})
}

// Delay runs fn once the given duration has elapsed.
func (e *Engine) Delay(d time.Duration, fn func()) {
	if fn == nil {
		return
	}
	e.delays = append(e.delays, &delay{at: time.Now().Add(d), fn: fn})
}

// Step advances all animations to the given time, applying positions and
// firing completion callbacks for any that finished. Callbacks may enqueue
// further animations; those are picked up on the next step.
func (e *Engine) Step(now time.Time) {
	var finished []func()

	remaining := e.active[:0]
	for _, a := range e.active {
		t := now.Sub(a.start).Seconds() / a.duration.Seconds()
		if t >= 1 {
			a.node.Position.Y = a.to
			if a.done != nil {
				finished = append(finished, a.done)
			}
			continue
		}
		a.node.Position.Y = a.from + (a.to-a.from)*easeOutQuad(t)
		remaining = append(remaining, a)
	}
	e.active = remaining

	pending := e.delays[:0]
	for _, d := range e.delays {
		if !now.Before(d.at) {
			finished = append(finished, d.fn)
			continue
		}
		pending = append(pending, d)
	}
	e.delays = pending

	for _, fn := range finished {
		fn()
	}
}

// Idle reports whether no animations or delays are in flight.
func (e *Engine) Idle() bool {
	return len(e.active) == 0 && len(e.delays) == 0
}

func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}
