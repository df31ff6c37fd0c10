package sequencer

import "math/rand"

// Drum voice indices into DrumPatterns and the mute array.
const (
	VoiceKick = iota
	VoiceOpenHat
	VoiceClosedHat
	VoiceSnare
	NumDrumVoices
)

var drumVoiceNames = [NumDrumVoices]string{"kick", "open-hat", "closed-hat", "snare"}

// DrumVoiceName returns the short display name of a voice.
func DrumVoiceName(voice int) string {
	return drumVoiceNames[voice]
}

// DrumPatterns is one bar of velocities per voice. Zero means silent,
// anything in (0,1] is a hit at that strength.
type DrumPatterns struct {
	Kick      [PatternLength]float64
	OpenHat   [PatternLength]float64
	ClosedHat [PatternLength]float64
	Snare     [PatternLength]float64
}

// Voice returns the velocity row for a voice index.
func (d *DrumPatterns) Voice(voice int) *[PatternLength]float64 {
	switch voice {
	case VoiceKick:
		return &d.Kick
	case VoiceOpenHat:
		return &d.OpenHat
	case VoiceClosedHat:
		return &d.ClosedHat
	default:
		return &d.Snare
	}
}

// NineOhGen synthesizes one-bar drum patterns. Unlike the melodic generator
// it keeps no state between calls: every call independently picks a playing
// mode per voice group and fills from that mode's anchors.
type NineOhGen struct {
	rng *rand.Rand
}

func NewNineOhGen(rng *rand.Rand) *NineOhGen {
	return &NineOhGen{rng: rng}
}

func (g *NineOhGen) choose(options ...string) string {
	return options[g.rng.Intn(len(options))]
}

// CreatePatterns builds a fresh set of drum patterns. With full set, the
// "none" modes for hats and snare are replaced by playing ones, so neither
// group can come back entirely silent.
func (g *NineOhGen) CreatePatterns(full bool) DrumPatterns {
	hatFallback := "none"
	snareFallback := "none"
	if full {
		hatFallback = "offbeats"
		snareFallback = "backbeat"
	}
	kickMode := g.choose("electro", "fourfloor")
	hatMode := g.choose("offbeats", "closed", hatFallback)
	snareMode := g.choose("backbeat", "skip", snareFallback)

	var d DrumPatterns

	switch kickMode {
	case "fourfloor":
		for i := 0; i < PatternLength; i++ {
			if i%4 == 0 {
				d.Kick[i] = 0.9
			} else if i%2 == 0 && g.rng.Float64() < 0.1 {
				// occasional offbeat ghost
				d.Kick[i] = 0.6
			}
		}
	default: // electro
		for i := 0; i < PatternLength; i++ {
			if i == 0 {
				d.Kick[i] = 1
			} else if i%2 == 0 && i%8 != 4 && g.rng.Float64() < 0.5 {
				d.Kick[i] = 0.1 + g.rng.Float64()*0.8
			}
		}
	}

	switch snareMode {
	case "backbeat":
		for i := 0; i < PatternLength; i++ {
			if i%8 == 4 {
				d.Snare[i] = 1
			}
		}
	case "skip":
		for i := 0; i < PatternLength; i++ {
			if i%8 == 3 || i%8 == 6 {
				d.Snare[i] = 0.6 + g.rng.Float64()*0.4
			} else if i%2 == 0 && g.rng.Float64() < 0.2 {
				d.Snare[i] = 0.4 + g.rng.Float64()*0.2
			}
		}
	}

	switch hatMode {
	case "offbeats":
		for i := 0; i < PatternLength; i++ {
			if i%4 == 2 {
				d.OpenHat[i] = 0.4
			} else if g.rng.Float64() < 0.3 {
				// scattered quiet ticks on either hat
				if g.rng.Float64() < 0.5 {
					d.ClosedHat[i] = 0.05 + g.rng.Float64()*0.15
				} else {
					d.OpenHat[i] = 0.05 + g.rng.Float64()*0.15
				}
			}
		}
	case "closed":
		for i := 0; i < PatternLength; i++ {
			if i%2 == 0 {
				d.ClosedHat[i] = 0.4
			} else if g.rng.Float64() < 0.5 {
				d.ClosedHat[i] = 0.05 + g.rng.Float64()*0.25
			}
		}
	}

	return d
}
