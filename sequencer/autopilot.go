package sequencer

import (
	"math/rand"
	"sync"
	"time"

	"acidbox/debug"
)

// Step offsets within the bar that drive the two measure counters. The
// upcoming counter leads the current one so look-ahead decisions (arming
// pattern triggers) land a bar before their effects are consumed.
const (
	upcomingMeasureStep = 4
	currentMeasureStep  = 15
)

// wanderInterval is the wall-clock cadence for knob wandering. It is
// unrelated to the musical clock on purpose - knobs drift in human time,
// not in step time.
const wanderInterval = 100 * time.Millisecond

// AutoPilot is the composition layer: it watches the step bus and, at
// measure boundaries, rolls dice over the generators' triggers and the drum
// mutes. It creates no parameters of its own besides the enable switches
// and its measure counters; everything else it writes into already exists
// on the units.
type AutoPilot struct {
	// Enable switches, exposed for display and toggling.
	PatternEnabled *BoolParameter
	WanderEnabled  *BoolParameter
	MutesEnabled   *BoolParameter

	gen    *ThreeOhGen
	voices []*ThreeOhUnit
	drums  *NineOhUnit

	upcomingMeasure *IntParameter
	currentMeasure  *IntParameter

	wanderers []*WanderingParameter
	rng       *rand.Rand

	mu       sync.Mutex
	stopChan chan struct{}
}

// NewAutoPilot wires the autopilot into an existing clock and unit graph.
// It subscribes to the clock's step bus immediately; call StartRuntime to
// begin knob wandering.
func NewAutoPilot(clock *Clock, gen *ThreeOhGen, voices []*ThreeOhUnit, drums *NineOhUnit, delay *DelayUnit, rng *rand.Rand) *AutoPilot {
	a := &AutoPilot{
		PatternEnabled:  NewBoolParameter("pilot-patterns", true),
		WanderEnabled:   NewBoolParameter("pilot-wander", true),
		MutesEnabled:    NewBoolParameter("pilot-mutes", true),
		gen:             gen,
		voices:          voices,
		drums:           drums,
		upcomingMeasure: NewIntParameter("upcoming-measure", 0),
		currentMeasure:  NewIntParameter("current-measure", 0),
		rng:             rng,
	}

	// The wander loop runs on its own goroutine while the dice above roll on
	// the clock goroutine; rand.Rand is not safe for concurrent use, so the
	// wanderers get a generator of their own.
	wanderRng := rand.New(rand.NewSource(rng.Int63()))
	for _, v := range voices {
		for _, p := range v.SynthParams() {
			a.wanderers = append(a.wanderers, NewWanderingParameter(p, DefaultWanderScale, wanderRng))
		}
	}
	for _, p := range delay.Params() {
		a.wanderers = append(a.wanderers, NewWanderingParameter(p, DefaultWanderScale, wanderRng))
	}

	a.upcomingMeasure.Subscribe(a.onUpcomingMeasure)
	a.currentMeasure.Subscribe(a.onCurrentMeasure)
	clock.CurrentStep.Subscribe(a.onStep)
	return a
}

func (a *AutoPilot) onStep(step int) {
	switch step {
	case upcomingMeasureStep:
		a.upcomingMeasure.SetValue(a.upcomingMeasure.Value() + 1)
	case currentMeasureStep:
		a.currentMeasure.SetValue(a.currentMeasure.Value() + 1)
	}
}

// onUpcomingMeasure arms regeneration triggers one bar ahead of the
// boundary where the units consume them.
func (a *AutoPilot) onUpcomingMeasure(measure int) {
	if measure == 0 || !a.PatternEnabled.Value() {
		return
	}
	if measure%64 == 0 && a.rng.Float64() < 0.2 {
		debug.Log("pilot", "measure %d: refreshing note set", measure)
		a.gen.NewNotes.SetValue(true)
		for _, v := range a.voices {
			v.NewPattern.SetValue(true)
		}
	}
	// The 16-measure roll runs on its own schedule, including at 64-measure
	// boundaries where the note refresh missed or already armed everything.
	if measure%16 == 0 {
		for _, v := range a.voices {
			if a.rng.Float64() < 0.5 {
				debug.Log("pilot", "measure %d: new pattern for %s", measure, v.Name)
				v.NewPattern.SetValue(true)
			}
		}
		if a.rng.Float64() < 0.3 {
			debug.Log("pilot", "measure %d: new drum patterns", measure)
			a.drums.NewPattern.SetValue(true)
		}
	}
}

// onCurrentMeasure re-rolls the drum mutes. The kick mutes less often than
// the other voices; losing the kick for eight bars is a statement, not a
// default.
func (a *AutoPilot) onCurrentMeasure(measure int) {
	if measure == 0 || !a.MutesEnabled.Value() {
		return
	}
	if measure%8 != 0 {
		return
	}
	for v, mute := range a.drums.Mutes {
		chance := 0.5
		if v == VoiceKick {
			chance = 0.2
		}
		mute.SetValue(a.rng.Float64() < chance)
	}
	debug.Log("pilot", "measure %d: re-rolled mutes", measure)
}

// StepWanderers advances every registered wanderer once. Called from the
// wander loop; exposed so the cadence can be driven externally in tests.
func (a *AutoPilot) StepWanderers() {
	for _, w := range a.wanderers {
		w.Step()
	}
}

// StartRuntime starts the knob-wandering loop on its own wall-clock timer.
func (a *AutoPilot) StartRuntime() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopChan != nil {
		return
	}
	a.stopChan = make(chan struct{})
	go a.wanderLoop(a.stopChan)
}

// Stop halts the knob-wandering loop. The step-bus subscription stays; a
// stopped clock produces no steps anyway.
func (a *AutoPilot) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopChan == nil {
		return
	}
	close(a.stopChan)
	a.stopChan = nil
}

func (a *AutoPilot) wanderLoop(stop chan struct{}) {
	ticker := time.NewTicker(wanderInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if a.WanderEnabled.Value() {
				a.StepWanderers()
			}
		}
	}
}
