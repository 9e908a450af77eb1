// Package recorder captures played notes as timestamped events and plays
// them back. The Recorder sits between the keyboard manager and the audio
// engine as a pass-through Sounder, so it sees exactly the notes that
// sounded.
package recorder

import (
	"time"

	"github.com/google/uuid"

	"github.com/PixPMusic/gopher-piano/internal/keyboard"
	"github.com/PixPMusic/gopher-piano/internal/note"
)

// Event is one sounded note within a recording, with its offset from the
// recording start and how long it was held.
type Event struct {
	Note     note.Name     `json:"note"`
	At       time.Duration `json:"at"`
	Duration time.Duration `json:"duration"`
}

// Recording is a named, persisted sequence of note events.
type Recording struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Events    []Event   `json:"events"`
}

// Recorder forwards note commands to the next Sounder and, while armed,
// captures them as events. All calls come from the event loop.
type Recorder struct {
	next keyboard.Sounder

	recording bool
	started   time.Time
	open      map[note.Name]time.Duration
	events    []Event
}

// New wraps the given Sounder.
func New(next keyboard.Sounder) *Recorder {
	return &Recorder{
		next: next,
		open: make(map[note.Name]time.Duration),
	}
}

// SetOutput swaps the downstream Sounder, used when the audio backend is
// reconfigured at runtime.
func (r *Recorder) SetOutput(next keyboard.Sounder) {
	r.next = next
}

// TriggerAttack implements keyboard.Sounder.
func (r *Recorder) TriggerAttack(n note.Name) {
	r.next.TriggerAttack(n)
	if !r.recording {
		return
	}
	if _, held := r.open[n]; !held {
		r.open[n] = time.Since(r.started)
	}
}

// TriggerRelease implements keyboard.Sounder.
func (r *Recorder) TriggerRelease(n note.Name) {
	r.next.TriggerRelease(n)
	if !r.recording {
		return
	}
	if at, ok := r.open[n]; ok {
		r.events = append(r.events, Event{Note: n, At: at, Duration: time.Since(r.started) - at})
		delete(r.open, n)
	}
}

// Recording reports whether the recorder is currently armed.
func (r *Recorder) Recording() bool {
	return r.recording
}

// Start arms the recorder, discarding any previous capture.
func (r *Recorder) Start() {
	r.recording = true
	r.started = time.Now()
	r.events = nil
	r.open = make(map[note.Name]time.Duration)
}

// Stop disarms the recorder and returns the capture as a named recording.
// Notes still held are closed at the stop time.
func (r *Recorder) Stop(name string) Recording {
	now := time.Since(r.started)
	for n, at := range r.open {
		r.events = append(r.events, Event{Note: n, At: at, Duration: now - at})
	}
	r.open = make(map[note.Name]time.Duration)
	r.recording = false

	rec := Recording{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
		Events:    r.events,
	}
	r.events = nil
	return rec
}
