package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// MIDIConfig defines where the engine sends its notes. An empty PortName
// means "no MIDI output": the engine still sequences and the TUI renders.
type MIDIConfig struct {
	PortName      string `json:"portName,omitempty"`
	VoiceChannels []int  `json:"voiceChannels,omitempty"` // one per acid voice, 1-16
	DrumChannel   int    `json:"drumChannel,omitempty"`   // 1-16
	Kit           string `json:"kit,omitempty"`           // drum kit note map
}

// PilotConfig stores the startup state of the autopilot switches.
type PilotConfig struct {
	Patterns bool `json:"patterns"`
	Wander   bool `json:"wander"`
	Mutes    bool `json:"mutes"`
}

// Config is the main configuration structure
type Config struct {
	Tempo   float64     `json:"tempo,omitempty"`
	Shuffle float64     `json:"shuffle,omitempty"`
	Seed    int64       `json:"seed,omitempty"` // 0 = seed from the clock
	Palette string      `json:"palette,omitempty"`
	MIDI    MIDIConfig  `json:"midi,omitempty"`
	Pilot   PilotConfig `json:"pilot"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Tempo:   125,
		Shuffle: 0.1,
		Palette: "palettes/acid.gpl",
		MIDI: MIDIConfig{
			VoiceChannels: []int{1, 2},
			DrumChannel:   10,
			Kit:           "gm",
		},
		Pilot: PilotConfig{
			Patterns: true,
			Wander:   true,
			Mutes:    true,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "acidbox"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
