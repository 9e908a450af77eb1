package note

import (
	"math"
	"strings"
)

// Name is a musical note name such as "C3" or "C#4". Sharps are spelled
// with "#"; flats are not used.
type Name string

// All lists the notes of the two-octave keyboard, lowest to highest.
// The set is fixed at 25 notes and never changes at runtime.
var All = []Name{
	"C3", "C#3", "D3", "D#3", "E3", "F3", "F#3", "G3", "G#3", "A3", "A#3", "B3",
	"C4", "C#4", "D4", "D#4", "E4", "F4", "F#4", "G4", "G#4", "A4", "A#4", "B4",
	"C5",
}

// semitone offsets from C within one octave, indexed by note letter
var letterSemitones = map[byte]int{
	'C': 0,
	'D': 2,
	'E': 4,
	'F': 5,
	'G': 7,
	'A': 9,
	'B': 11,
}

// sharpNames spells each semitone of an octave, used when converting MIDI
// numbers back to note names.
var sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// IsAccidental reports whether the note is a sharp ("black") key.
func (n Name) IsAccidental() bool {
	return strings.Contains(string(n), "#")
}

// MIDI returns the MIDI note number for the name (C4 = 60). ok is false if
// the name cannot be parsed.
func (n Name) MIDI() (uint8, bool) {
	s := string(n)
	if len(s) < 2 {
		return 0, false
	}
	semi, ok := letterSemitones[s[0]]
	if !ok {
		return 0, false
	}
	rest := s[1:]
	if rest[0] == '#' {
		semi++
		rest = rest[1:]
	}
	if len(rest) != 1 || rest[0] < '0' || rest[0] > '9' {
		return 0, false
	}
	octave := int(rest[0] - '0')
	num := (octave+1)*12 + semi
	if num < 0 || num > 127 {
		return 0, false
	}
	return uint8(num), true
}

// Frequency returns the equal-temperament frequency in Hz (A4 = 440).
// Unparseable names return 0.
func (n Name) Frequency() float64 {
	num, ok := n.MIDI()
	if !ok {
		return 0
	}
	return 440 * math.Pow(2, (float64(num)-69)/12)
}

// FromMIDI converts a MIDI note number to a note name using sharp spelling.
// ok is false if the number falls outside the keyboard's 25-note range.
func FromMIDI(num uint8) (Name, bool) {
	octave := int(num)/12 - 1
	if octave < 0 || octave > 9 {
		return "", false
	}
	name := Name(sharpNames[int(num)%12] + string(rune('0'+octave)))
	for _, n := range All {
		if n == name {
			return name, true
		}
	}
	return "", false
}
