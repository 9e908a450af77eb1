package audio

import (
	"math"
	"sync"

	"github.com/PixPMusic/gopher-piano/internal/note"
)

const (
	SampleRate   = 44100
	channelCount = 2

	attackSeconds  = 0.008
	releaseSeconds = 0.25
	decayPerSecond = 0.45 // sustain decays like a struck string
)

type envStage int

const (
	stageAttack envStage = iota
	stageSustain
	stageRelease
)

type voice struct {
	freq  float64
	phase float64
	level float64
	stage envStage
}

// Mixer renders the currently sounding notes to 16-bit little-endian
// stereo PCM. It implements io.Reader so an oto player can stream from it
// directly; NoteOn/NoteOff are called from the event loop while Read runs
// on the playback goroutine, hence the mutex.
type Mixer struct {
	mu     sync.Mutex
	voices map[note.Name]*voice
	volume float64
}

// NewMixer creates a silent mixer at the given master volume (0..1).
func NewMixer(volume float64) *Mixer {
	return &Mixer{
		voices: make(map[note.Name]*voice),
		volume: volume,
	}
}

// SetVolume adjusts the master volume (0..1).
func (m *Mixer) SetVolume(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	m.volume = v
}

// NoteOn starts (or retriggers) a voice for the note. Notes that do not
// parse to a frequency are ignored.
func (m *Mixer) NoteOn(n note.Name) {
	freq := n.Frequency()
	if freq == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.voices[n]; ok {
		v.stage = stageAttack
		return
	}
	m.voices[n] = &voice{freq: freq}
}

// NoteOff moves the note's voice into its release stage. Unknown notes are
// a no-op, which makes release idempotent.
func (m *Mixer) NoteOff(n note.Name) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.voices[n]; ok {
		v.stage = stageRelease
	}
}

// Active returns the number of currently sounding voices.
func (m *Mixer) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.voices)
}

// Read fills p with interleaved stereo samples. It never returns an error;
// silence is rendered when no voices are active.
func (m *Mixer) Read(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	frames := len(p) / (2 * channelCount)
	attackStep := 1 / (attackSeconds * SampleRate)
	releaseStep := 1 / (releaseSeconds * SampleRate)
	decayStep := math.Pow(decayPerSecond, 1.0/SampleRate)

	for i := 0; i < frames; i++ {
		var sample float64
		for n, v := range m.voices {
			switch v.stage {
			case stageAttack:
				v.level += attackStep
				if v.level >= 1 {
					v.level = 1
					v.stage = stageSustain
				}
			case stageSustain:
				v.level *= decayStep
			case stageRelease:
				v.level -= releaseStep
				if v.level <= 0 {
					delete(m.voices, n)
					continue
				}
			}
			sample += tone(v.phase) * v.level
			v.phase += v.freq / SampleRate
			if v.phase >= 1 {
				v.phase -= 1
			}
		}

		sample *= m.volume * 0.2
		if sample > 1 {
			sample = 1
		} else if sample < -1 {
			sample = -1
		}
		s := int16(sample * math.MaxInt16)

		off := i * 2 * channelCount
		p[off] = byte(s)
		p[off+1] = byte(s >> 8)
		p[off+2] = byte(s)
		p[off+3] = byte(s >> 8)
	}

	return frames * 2 * channelCount, nil
}

// tone is a mellow additive waveform: a fundamental with two soft upper
// harmonics, phase in [0, 1).
func tone(phase float64) float64 {
	x := 2 * math.Pi * phase
	return (math.Sin(x) + 0.35*math.Sin(2*x) + 0.1*math.Sin(3*x)) / 1.45
}
