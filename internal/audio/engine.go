// Package audio produces sound for key presses. The keyboard manager only
// issues attack/release commands; what they turn into depends on the
// configured backend: an internal software synth, an external MIDI port,
// or nothing at all.
package audio

import "github.com/PixPMusic/gopher-piano/internal/note"

// Engine receives fire-and-forget note commands. Release is idempotent and
// safe to call for notes whose attack was never issued.
type Engine interface {
	TriggerAttack(n note.Name)
	TriggerRelease(n note.Name)
	Close() error
}

// Nop is the silent fallback engine, used when no audio backend could be
// opened. The piano still animates; it just makes no sound.
type Nop struct{}

func (Nop) TriggerAttack(note.Name)  {}
func (Nop) TriggerRelease(note.Name) {}
func (Nop) Close() error             { return nil }
