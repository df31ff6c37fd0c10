package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"acidbox/config"
	"acidbox/debug"
	acidmidi "acidbox/midi"
	"acidbox/sequencer"
	"acidbox/theme"
	"acidbox/tui"
)

// Synth parameter CC numbers, per voice channel.
var voiceCCs = []uint8{74, 71, 79, 80, 81} // cutoff, resonance, env mod, decay, distortion

func main() {
	debug.EnableIfEnv()
	defer debug.Disable()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	th := theme.New(theme.LoadGPLOrDefault(cfg.Palette))

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	debug.Log("main", "seed=%d", seed)

	// MIDI is optional: without a port the engine sequences for the TUI only.
	var sinks sequencer.Sinks
	var out *acidmidi.Out
	if cfg.MIDI.PortName != "" {
		out, err = acidmidi.Open(cfg.MIDI.PortName)
		if err != nil {
			fmt.Printf("MIDI disabled: %v\n", err)
		} else {
			for _, ch := range cfg.MIDI.VoiceChannels {
				sinks.Voices = append(sinks.Voices, acidmidi.NewVoiceOut(out, uint8(ch-1)))
			}
			sinks.Drums = acidmidi.NewDrumOut(out, uint8(cfg.MIDI.DrumChannel-1), acidmidi.GetKit(cfg.MIDI.Kit))
		}
	}

	manager := sequencer.NewManager(cfg.Tempo, cfg.Shuffle, sinks, rng)
	manager.Pilot.PatternEnabled.SetValue(cfg.Pilot.Patterns)
	manager.Pilot.WanderEnabled.SetValue(cfg.Pilot.Wander)
	manager.Pilot.MutesEnabled.SetValue(cfg.Pilot.Mutes)

	// Bridge the wandering knobs onto MIDI CCs once the units exist.
	if out != nil {
		for i, v := range manager.Voices {
			if i >= len(cfg.MIDI.VoiceChannels) {
				break
			}
			ch := uint8(cfg.MIDI.VoiceChannels[i] - 1)
			for j, p := range v.SynthParams() {
				out.BindCC(p, ch, voiceCCs[j])
			}
		}
		ch := uint8(cfg.MIDI.DrumChannel - 1)
		out.BindCC(manager.Delay.Feedback, ch, 91)
		out.BindCC(manager.Delay.DryWet, ch, 93)
	}

	manager.StartRuntime()
	manager.Play()

	m := tui.NewModel(manager, th)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
