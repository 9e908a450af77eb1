package recorder

import (
	"sort"
	"time"

	"github.com/PixPMusic/gopher-piano/internal/keyboard"
	"github.com/PixPMusic/gopher-piano/internal/note"
)

// Playback replays a recording into a Sounder on its own goroutine. The
// visual keyboard is untouched: playback drives sound only, so interaction
// state stays owned by the event loop.
type Playback struct {
	stop chan struct{}
	done chan struct{}
}

type action struct {
	at     time.Duration
	note   note.Name
	attack bool
}

// Play starts replaying the recording. onDone, if non-nil, is called once
// playback finishes or is stopped.
func Play(rec Recording, sound keyboard.Sounder, onDone func()) *Playback {
	actions := make([]action, 0, 2*len(rec.Events))
	for _, e := range rec.Events {
		actions = append(actions,
			action{at: e.At, note: e.Note, attack: true},
			action{at: e.At + e.Duration, note: e.Note},
		)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i].at < actions[j].at })

	p := &Playback{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	go func() {
		defer close(p.done)
		if onDone != nil {
			defer onDone()
		}

		sounding := make(map[note.Name]struct{})
		// release everything still sounding on the way out
		defer func() {
			for n := range sounding {
				sound.TriggerRelease(n)
			}
		}()

		start := time.Now()
		for _, a := range actions {
			wait := a.at - time.Since(start)
			if wait > 0 {
				select {
				case <-p.stop:
					return
				case <-time.After(wait):
				}
			}
			if a.attack {
				sound.TriggerAttack(a.note)
				sounding[a.note] = struct{}{}
			} else {
				sound.TriggerRelease(a.note)
				delete(sounding, a.note)
			}
		}
	}()

	return p
}

// Stop ends playback early and waits for the playback goroutine to finish.
func (p *Playback) Stop() {
	select {
	case <-p.stop:
	default:
		close(p.stop)
	}
	<-p.done
}
