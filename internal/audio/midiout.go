package audio

import (
	"log"

	"gitlab.com/gomidi/midi/v2"

	"github.com/PixPMusic/gopher-piano/internal/note"
)

const midiVelocity = 100

// MIDIOut forwards note commands to an external MIDI output port instead
// of synthesizing sound locally.
type MIDIOut struct {
	send    func(midi.Message) error
	channel uint8
}

// NewMIDIOut wraps a gomidi send function. channel is 0-based (0-15).
func NewMIDIOut(send func(midi.Message) error, channel uint8) *MIDIOut {
	if channel > 15 {
		channel = 0
	}
	return &MIDIOut{send: send, channel: channel}
}

func (o *MIDIOut) TriggerAttack(n note.Name) {
	num, ok := n.MIDI()
	if !ok {
		return
	}
	if err := o.send(midi.NoteOn(o.channel, num, midiVelocity)); err != nil {
		log.Printf("Failed to send note on for %s: %v", n, err)
	}
}

func (o *MIDIOut) TriggerRelease(n note.Name) {
	num, ok := n.MIDI()
	if !ok {
		return
	}
	if err := o.send(midi.NoteOff(o.channel, num)); err != nil {
		log.Printf("Failed to send note off for %s: %v", n, err)
	}
}

func (o *MIDIOut) Close() error { return nil }
