package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/PixPMusic/gopher-piano/internal/recorder"
)

// AudioBackend selects how note audio is produced.
type AudioBackend string

const (
	BackendSynth AudioBackend = "synth" // internal software synthesizer
	BackendMIDI  AudioBackend = "midi"  // send notes to an external MIDI port
)

const defaultVolume = 0.8

// Config holds application configuration, including saved recordings.
type Config struct {
	FirstLaunchCompleted bool `json:"first_launch_completed"`
	OpenAtStartup        bool `json:"open_at_startup"`

	AudioBackend   AudioBackend `json:"audio_backend"`
	MasterVolume   float64      `json:"master_volume"`
	MIDIOutPort    string       `json:"midi_out_port"`
	MIDIOutChannel int          `json:"midi_out_channel"` // 1-16
	MIDIInPort     string       `json:"midi_in_port"`

	Recordings []recorder.Recording `json:"recordings"`
}

// configDir returns the platform-appropriate config directory
func configDir() (string, error) {
	configHome, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configHome, "gopher-piano"), nil
}

// ConfigPath returns the full path to the config file
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Default returns the configuration used on first launch.
func Default() *Config {
	return &Config{
		AudioBackend:   BackendSynth,
		MasterVolume:   defaultVolume,
		MIDIOutChannel: 1,
		Recordings:     []recorder.Recording{},
	}
}

// Load reads the config from disk, returning defaults if not found
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.normalize()

	return &cfg, nil
}

// normalize fills in zero values left by old or hand-edited config files.
func (c *Config) normalize() {
	if c.AudioBackend != BackendSynth && c.AudioBackend != BackendMIDI {
		c.AudioBackend = BackendSynth
	}
	if c.MasterVolume <= 0 || c.MasterVolume > 1 {
		c.MasterVolume = defaultVolume
	}
	if c.MIDIOutChannel < 1 || c.MIDIOutChannel > 16 {
		c.MIDIOutChannel = 1
	}
	if c.Recordings == nil {
		c.Recordings = []recorder.Recording{}
	}
}

// Save writes the config to disk
func (c *Config) Save() error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// AddRecording appends a recording.
func (c *Config) AddRecording(rec recorder.Recording) {
	c.Recordings = append(c.Recordings, rec)
}

// RemoveRecording removes a recording by ID.
func (c *Config) RemoveRecording(id string) {
	for i, r := range c.Recordings {
		if r.ID == id {
			c.Recordings = append(c.Recordings[:i], c.Recordings[i+1:]...)
			return
		}
	}
}

// GetRecording returns a recording by ID, or nil if not found
func (c *Config) GetRecording(id string) *recorder.Recording {
	for i := range c.Recordings {
		if c.Recordings[i].ID == id {
			return &c.Recordings[i]
		}
	}
	return nil
}
