package sequencer

import (
	"math/rand"

	"acidbox/debug"
)

// Subdivisions per beat: 16th notes against a 4/4 pulse.
const stepsPerBeat = 4

// Sinks carries the external collaborators the units play into. Any field
// may be nil; the engine sequences regardless and the TUI still renders.
type Sinks struct {
	Voices []VoiceSink // one per acid voice, padded with nil
	Drums  DrumSink
}

// Manager owns the whole unit graph and the clock, in the same role the
// session orchestrator plays in a groovebox: wiring, transport, and a
// notification channel for the front-end.
type Manager struct {
	Clock   *Clock
	Gen     *ThreeOhGen
	DrumGen *NineOhGen
	Voices  []*ThreeOhUnit
	Drums   *NineOhUnit
	Delay   *DelayUnit
	Pilot   *AutoPilot

	// UpdateChan receives a non-blocking poke per tick so the TUI can
	// redraw without polling.
	UpdateChan chan struct{}
}

// NewManager builds and wires the engine: two acid voices over a shared
// generator, the drum unit, the delay knobs, and the autopilot. Units
// subscribe to the step bus before the autopilot so pattern consumption in
// a tick happens before the next round of dice rolls.
func NewManager(bpm, shuffle float64, sinks Sinks, rng *rand.Rand) *Manager {
	m := &Manager{
		Clock:      NewClock(bpm, stepsPerBeat, shuffle),
		Gen:        NewThreeOhGen(rng),
		DrumGen:    NewNineOhGen(rng),
		Delay:      NewDelayUnit(),
		UpdateChan: make(chan struct{}, 1),
	}

	voiceSink := func(i int) VoiceSink {
		if i < len(sinks.Voices) {
			return sinks.Voices[i]
		}
		return nil
	}
	m.Voices = []*ThreeOhUnit{
		NewThreeOhUnit("303-a", m.Gen, voiceSink(0)),
		NewThreeOhUnit("303-b", m.Gen, voiceSink(1)),
	}
	m.Drums = NewNineOhUnit(m.DrumGen, sinks.Drums)

	m.Clock.CurrentStep.Subscribe(func(step int) {
		// Subscription replay delivers step 0 during wiring; units only
		// react to ticks of a running clock.
		if !m.Clock.Running() {
			return
		}
		for _, v := range m.Voices {
			v.Step(step)
		}
		m.Drums.Step(step)
		m.notify()
	})

	m.Pilot = NewAutoPilot(m.Clock, m.Gen, m.Voices, m.Drums, m.Delay, rng)
	return m
}

// StartRuntime starts the autopilot's wander loop. Called once at startup.
func (m *Manager) StartRuntime() {
	m.Pilot.StartRuntime()
}

// Play starts the musical clock.
func (m *Manager) Play() {
	debug.Log("transport", "play")
	m.Clock.Start()
	m.notify()
}

// Stop halts the musical clock; the step counter and all patterns survive.
func (m *Manager) Stop() {
	debug.Log("transport", "stop")
	m.Clock.Stop()
	m.notify()
}

// Shutdown stops the clock and the autopilot runtime.
func (m *Manager) Shutdown() {
	m.Clock.Stop()
	m.Pilot.Stop()
}

// SetTempo sets the BPM, clamped to a sane range.
func (m *Manager) SetTempo(bpm float64) {
	if bpm < 20 {
		bpm = 20
	}
	if bpm > 300 {
		bpm = 300
	}
	m.Clock.SetBpm(bpm)
	m.notify()
}

// GetState returns the transport snapshot the header renders.
func (m *Manager) GetState() (step int, playing bool, tempo float64) {
	return m.Clock.CurrentStep.Value(), m.Clock.Running(), m.Clock.Bpm()
}

func (m *Manager) notify() {
	select {
	case m.UpdateChan <- struct{}{}:
	default:
	}
}
