package midi

import "acidbox/sequencer"

// DrumKit maps the four engine voices to MIDI notes, in voice index order:
// kick, open hat, closed hat, snare.
type DrumKit struct {
	Name  string
	Notes [sequencer.NumDrumVoices]uint8
}

// Kits contains the available drum kit mappings
var Kits = map[string]DrumKit{
	"gm": {
		Name:  "General MIDI",
		Notes: [sequencer.NumDrumVoices]uint8{36, 46, 42, 38},
	},
	"rd8": {
		Name: "Behringer RD-8",
		// RD-8 snare sits on 40, not 38
		Notes: [sequencer.NumDrumVoices]uint8{36, 46, 42, 40},
	},
	"volca": {
		Name:  "Volca Beats",
		Notes: [sequencer.NumDrumVoices]uint8{36, 39, 42, 38},
	},
}

// DefaultKit is used when the configured kit name is unknown
const DefaultKit = "gm"

// GetKit returns the named kit, falling back to the default
func GetKit(name string) DrumKit {
	if kit, ok := Kits[name]; ok {
		return kit
	}
	return Kits[DefaultKit]
}
