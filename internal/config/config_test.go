package config

import (
	"encoding/json"
	"testing"

	"github.com/PixPMusic/gopher-piano/internal/recorder"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.AudioBackend != BackendSynth {
		t.Errorf("default backend = %q, want synth", cfg.AudioBackend)
	}
	if cfg.MasterVolume != defaultVolume {
		t.Errorf("default volume = %v, want %v", cfg.MasterVolume, defaultVolume)
	}
	if cfg.MIDIOutChannel != 1 {
		t.Errorf("default channel = %d, want 1", cfg.MIDIOutChannel)
	}
	if cfg.Recordings == nil {
		t.Error("recordings should be an empty slice, not nil")
	}
}

func TestNormalizeRepairsBadValues(t *testing.T) {
	cfg := &Config{
		AudioBackend:   "speaker",
		MasterVolume:   3.5,
		MIDIOutChannel: 42,
	}
	cfg.normalize()

	if cfg.AudioBackend != BackendSynth {
		t.Errorf("backend = %q, want fallback to synth", cfg.AudioBackend)
	}
	if cfg.MasterVolume != defaultVolume {
		t.Errorf("volume = %v, want %v", cfg.MasterVolume, defaultVolume)
	}
	if cfg.MIDIOutChannel != 1 {
		t.Errorf("channel = %d, want 1", cfg.MIDIOutChannel)
	}
	if cfg.Recordings == nil {
		t.Error("normalize should allocate the recordings slice")
	}
}

func TestNormalizeKeepsValidValues(t *testing.T) {
	cfg := &Config{
		AudioBackend:   BackendMIDI,
		MasterVolume:   0.4,
		MIDIOutChannel: 10,
	}
	cfg.normalize()

	if cfg.AudioBackend != BackendMIDI || cfg.MasterVolume != 0.4 || cfg.MIDIOutChannel != 10 {
		t.Errorf("normalize altered valid config: %+v", cfg)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.MIDIOutPort = "Synth Port 1"
	cfg.AddRecording(recorder.Recording{ID: "r1", Name: "take"})

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Config
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	back.normalize()

	if back.MIDIOutPort != "Synth Port 1" {
		t.Errorf("port = %q, want Synth Port 1", back.MIDIOutPort)
	}
	if len(back.Recordings) != 1 || back.Recordings[0].ID != "r1" {
		t.Errorf("recordings = %+v, want the saved take", back.Recordings)
	}
}

func TestRecordingLookupAndRemoval(t *testing.T) {
	cfg := Default()
	cfg.AddRecording(recorder.Recording{ID: "a", Name: "first"})
	cfg.AddRecording(recorder.Recording{ID: "b", Name: "second"})

	if rec := cfg.GetRecording("b"); rec == nil || rec.Name != "second" {
		t.Errorf("GetRecording(b) = %+v, want second", rec)
	}
	if rec := cfg.GetRecording("missing"); rec != nil {
		t.Errorf("GetRecording(missing) = %+v, want nil", rec)
	}

	cfg.RemoveRecording("a")
	if len(cfg.Recordings) != 1 || cfg.Recordings[0].ID != "b" {
		t.Errorf("recordings after removal = %+v, want only b", cfg.Recordings)
	}
	cfg.RemoveRecording("missing") // no-op
	if len(cfg.Recordings) != 1 {
		t.Errorf("removal of unknown id changed the list: %+v", cfg.Recordings)
	}
}
