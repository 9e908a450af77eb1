package tween

import (
	"testing"
	"time"

	"github.com/PixPMusic/gopher-piano/internal/scene"
)

func TestMoveYReachesTarget(t *testing.T) {
	e := NewEngine()
	n := &scene.Node{Position: scene.Vec3{Y: 1}}

	fired := 0
	e.MoveY(n, 0.5, 100*time.Millisecond, func() { fired++ })

	if e.Idle() {
		t.Fatal("engine should be busy after MoveY")
	}

	// Mid-flight the node is between the endpoints.
	e.Step(time.Now().Add(50 * time.Millisecond))
	if n.Position.Y <= 0.5 || n.Position.Y >= 1 {
		t.Errorf("mid-flight Y = %v, want between 0.5 and 1", n.Position.Y)
	}
	if fired != 0 {
		t.Error("completion fired before the animation finished")
	}

	// Past the end the target is applied exactly and done fires once.
	e.Step(time.Now().Add(200 * time.Millisecond))
	if n.Position.Y != 0.5 {
		t.Errorf("final Y = %v, want 0.5", n.Position.Y)
	}
	if fired != 1 {
		t.Errorf("completion fired %d times, want 1", fired)
	}
	if !e.Idle() {
		t.Error("engine should be idle after completion")
	}

	// Further steps must not re-fire.
	e.Step(time.Now().Add(time.Second))
	if fired != 1 {
		t.Errorf("completion re-fired, count = %d", fired)
	}
}

func TestMoveYZeroDurationAppliesImmediately(t *testing.T) {
	e := NewEngine()
	n := &scene.Node{Position: scene.Vec3{Y: 2}}

	fired := false
	e.MoveY(n, 0, 0, func() { fired = true })

	if n.Position.Y != 0 {
		t.Errorf("Y = %v, want 0 applied without a step", n.Position.Y)
	}
	if !fired {
		t.Error("completion should fire synchronously for zero duration")
	}
	if !e.Idle() {
		t.Error("zero-duration move should not occupy the engine")
	}
}

func TestMoveYSupersedesRunningAnimation(t *testing.T) {
	e := NewEngine()
	n := &scene.Node{Position: scene.Vec3{Y: 1}}

	superseded := false
	e.MoveY(n, 0, 100*time.Millisecond, func() { superseded = true })
	e.MoveY(n, 2, 100*time.Millisecond, nil)

	e.Step(time.Now().Add(time.Second))
	if n.Position.Y != 2 {
		t.Errorf("Y = %v, want the second animation's target 2", n.Position.Y)
	}
	if superseded {
		t.Error("superseded animation's completion must be dropped")
	}
}

func TestMoveYNilNodeIsNoOp(t *testing.T) {
	e := NewEngine()
	e.MoveY(nil, 1, time.Second, nil)
	if !e.Idle() {
		t.Error("nil node should not enqueue an animation")
	}
}

func TestDelayFiresAfterDue(t *testing.T) {
	e := NewEngine()

	fired := false
	e.Delay(100*time.Millisecond, func() { fired = true })

	e.Step(time.Now())
	if fired {
		t.Error("delay fired early")
	}
	e.Step(time.Now().Add(150 * time.Millisecond))
	if !fired {
		t.Error("delay did not fire after its due time")
	}
	if !e.Idle() {
		t.Error("engine should be idle after the delay fires")
	}
}

func TestCallbackMayEnqueueNextAnimation(t *testing.T) {
	e := NewEngine()
	n := &scene.Node{Position: scene.Vec3{Y: 0}}

	e.MoveY(n, 1, 10*time.Millisecond, func() {
		e.MoveY(n, 2, 10*time.Millisecond, nil)
	})

	e.Step(time.Now().Add(50 * time.Millisecond))
	if e.Idle() {
		t.Fatal("chained animation should be in flight")
	}
	e.Step(time.Now().Add(500 * time.Millisecond))
	if n.Position.Y != 2 {
		t.Errorf("Y = %v, want chained target 2", n.Position.Y)
	}
}
