package audio

import (
	"fmt"

	"github.com/ebitengine/oto/v3"

	"github.com/PixPMusic/gopher-piano/internal/note"
)

// Synth is the internal software synthesizer backend: a Mixer streamed
// through an oto player.
type Synth struct {
	ctx    *oto.Context
	player *oto.Player
	mixer  *Mixer
}

// NewSynth opens the system audio device and starts streaming. volume is
// the initial master volume (0..1).
func NewSynth(volume float64) (*Synth, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: channelCount,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready

	mixer := NewMixer(volume)
	player := ctx.NewPlayer(mixer)
	player.Play()

	return &Synth{ctx: ctx, player: player, mixer: mixer}, nil
}

// TriggerAttack starts sounding the note.
func (s *Synth) TriggerAttack(n note.Name) {
	s.mixer.NoteOn(n)
}

// TriggerRelease stops sounding the note. Safe for notes that never
// attacked.
func (s *Synth) TriggerRelease(n note.Name) {
	s.mixer.NoteOff(n)
}

// SetVolume adjusts the master volume (0..1).
func (s *Synth) SetVolume(v float64) {
	s.mixer.SetVolume(v)
}

// Close stops playback. The oto context itself cannot be closed and lives
// for the rest of the process.
func (s *Synth) Close() error {
	if err := s.player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	return nil
}
