package sequencer

import "sync"

// Unit is anything that reacts to the step bus. The engine calls Step once
// per clock tick with the 0-15 bar position.
type Unit interface {
	Step(step int)
}

// VoiceSink consumes melodic note events. Implementations are external
// collaborators (MIDI out, a softsynth); the engine never knows which.
type VoiceSink interface {
	// PlayNote starts a note. With glide set the previous note should be
	// released after the new one starts, not before.
	PlayNote(note string, accent, glide bool)
	// Release ends the sounding note, if any.
	Release()
}

// DrumSink consumes drum hits by voice index and velocity in (0,1].
type DrumSink interface {
	PlayDrum(voice int, velocity float64)
}

// ThreeOhUnit is one acid voice: a pattern, the synth knobs the wanderers
// and the autopilot drive, and a trigger that requests a fresh pattern at
// the next bar boundary.
type ThreeOhUnit struct {
	Name       string
	NewPattern *BoolParameter

	Cutoff     *Parameter
	Resonance  *Parameter
	EnvMod     *Parameter
	Decay      *Parameter
	Distortion *Parameter

	gen  *ThreeOhGen
	sink VoiceSink

	mu      sync.Mutex
	pattern Pattern
}

// NewThreeOhUnit creates a voice with an initial pattern from gen.
// sink may be nil; the unit then sequences silently (the TUI still shows it).
func NewThreeOhUnit(name string, gen *ThreeOhGen, sink VoiceSink) *ThreeOhUnit {
	return &ThreeOhUnit{
		Name:       name,
		NewPattern: NewTrigger(name+"-new-pattern", false),
		Cutoff:     NewParameter(name+"-cutoff", 100, 2000, 400),
		Resonance:  NewParameter(name+"-resonance", 0.1, 0.97, 0.7),
		EnvMod:     NewParameter(name+"-env-mod", 0, 1, 0.6),
		Decay:      NewParameter(name+"-decay", 0.05, 0.5, 0.2),
		Distortion: NewParameter(name+"-distortion", 0, 1, 0.3),
		gen:        gen,
		sink:       sink,
		pattern:    gen.CreatePattern(),
	}
}

// Step plays the slot for the bar position, regenerating the pattern first
// when a new one was requested and the bar is starting.
func (u *ThreeOhUnit) Step(step int) {
	i := step % PatternLength
	u.mu.Lock()
	if i == 0 && u.NewPattern.Value() {
		u.pattern = u.gen.CreatePattern()
		u.NewPattern.SetValue(false)
	}
	slot := u.pattern[i]
	u.mu.Unlock()

	if u.sink == nil {
		return
	}
	if slot.Note == Rest {
		u.sink.Release()
	} else {
		u.sink.PlayNote(slot.Note, slot.Accent, slot.Glide)
	}
}

// Pattern returns a copy of the current pattern for display.
func (u *ThreeOhUnit) Pattern() Pattern {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.pattern
}

// SynthParams lists the wanderable knobs in display order.
func (u *ThreeOhUnit) SynthParams() []*Parameter {
	return []*Parameter{u.Cutoff, u.Resonance, u.EnvMod, u.Decay, u.Distortion}
}

// NineOhUnit is the drum machine: four velocity rows, a mute per voice, and
// a regeneration trigger consumed at bar boundaries.
type NineOhUnit struct {
	NewPattern *BoolParameter
	Mutes      [NumDrumVoices]*BoolParameter

	gen  *NineOhGen
	sink DrumSink

	mu       sync.Mutex
	patterns DrumPatterns
}

// NewNineOhUnit creates the drum unit with an initial full pattern set.
func NewNineOhUnit(gen *NineOhGen, sink DrumSink) *NineOhUnit {
	u := &NineOhUnit{
		NewPattern: NewTrigger("drums-new-pattern", false),
		gen:        gen,
		sink:       sink,
		patterns:   gen.CreatePatterns(true),
	}
	for v := 0; v < NumDrumVoices; v++ {
		u.Mutes[v] = NewBoolParameter(DrumVoiceName(v)+"-mute", false)
	}
	return u
}

// Step fires every unmuted voice with a velocity at this bar position.
// Regeneration always asks for a full pattern so the groove never collapses
// to silence mid-set; sparse patterns come from mutes instead.
func (u *NineOhUnit) Step(step int) {
	i := step % PatternLength
	u.mu.Lock()
	if i == 0 && u.NewPattern.Value() {
		u.patterns = u.gen.CreatePatterns(true)
		u.NewPattern.SetValue(false)
	}
	patterns := u.patterns
	u.mu.Unlock()

	if u.sink == nil {
		return
	}
	for v := 0; v < NumDrumVoices; v++ {
		if u.Mutes[v].Value() {
			continue
		}
		if vel := patterns.Voice(v)[i]; vel > 0 {
			u.sink.PlayDrum(v, vel)
		}
	}
}

// Patterns returns a copy of the current drum patterns for display.
func (u *NineOhUnit) Patterns() DrumPatterns {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.patterns
}

// DelayUnit holds the send-effect knobs. It produces nothing itself; the
// wanderers write into it and whatever renders audio subscribes.
type DelayUnit struct {
	Feedback *Parameter
	DryWet   *Parameter
}

func NewDelayUnit() *DelayUnit {
	return &DelayUnit{
		Feedback: NewParameter("delay-feedback", 0, 0.9, 0.45),
		DryWet:   NewParameter("delay-dry-wet", 0, 0.8, 0.3),
	}
}

// Params lists the wanderable delay knobs.
func (d *DelayUnit) Params() []*Parameter {
	return []*Parameter{d.Feedback, d.DryWet}
}
