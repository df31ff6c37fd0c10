package sequencer

import (
	"math/rand"
	"testing"
)

// pilotRig builds an autopilot over an idle clock so tests can feed the
// step bus by hand.
func pilotRig(seed int64) (*Clock, *AutoPilot, *NineOhUnit) {
	rng := rand.New(rand.NewSource(seed))
	clock := NewClock(120, 4, 0)
	gen := NewThreeOhGen(rng)
	voices := []*ThreeOhUnit{
		NewThreeOhUnit("303-a", gen, nil),
		NewThreeOhUnit("303-b", gen, nil),
	}
	drums := NewNineOhUnit(NewNineOhGen(rng), nil)
	pilot := NewAutoPilot(clock, gen, voices, drums, NewDelayUnit(), rng)
	return clock, pilot, drums
}

func playMeasures(clock *Clock, n int) {
	for m := 0; m < n; m++ {
		for s := 0; s < PatternLength; s++ {
			clock.CurrentStep.SetValue(s)
		}
	}
}

func TestAutoPilotMeasureCounters(t *testing.T) {
	clock, pilot, _ := pilotRig(1)

	playMeasures(clock, 5)

	if got := pilot.upcomingMeasure.Value(); got != 5 {
		t.Fatalf("upcomingMeasure = %d, want 5", got)
	}
	if got := pilot.currentMeasure.Value(); got != 5 {
		t.Fatalf("currentMeasure = %d, want 5", got)
	}

	// Only the two counter offsets matter; other steps must not count.
	clock.CurrentStep.SetValue(7)
	clock.CurrentStep.SetValue(0)
	if pilot.upcomingMeasure.Value() != 5 || pilot.currentMeasure.Value() != 5 {
		t.Fatal("non-boundary steps advanced a measure counter")
	}
}

func TestAutoPilotMutesDisabled(t *testing.T) {
	clock, pilot, drums := pilotRig(2)
	pilot.MutesEnabled.SetValue(false)

	writes := 0
	for _, mute := range drums.Mutes {
		mute.Subscribe(func(bool) { writes++ })
	}
	writes = 0 // drop replays

	playMeasures(clock, 64)

	if writes != 0 {
		t.Fatalf("mutes written %d times with mute randomization disabled", writes)
	}
}

func TestAutoPilotRerollsMutesEveryEightMeasures(t *testing.T) {
	clock, _, drums := pilotRig(3)

	writes := make([]int, NumDrumVoices)
	for v, mute := range drums.Mutes {
		v := v
		mute.Subscribe(func(bool) { writes[v]++ })
		writes[v] = 0 // drop replay
	}

	playMeasures(clock, 24)

	// Boundaries at measures 8, 16 and 24; every voice is re-rolled each
	// time whether or not its value changes.
	for v, n := range writes {
		if n != 3 {
			t.Fatalf("%s mute written %d times, want 3", DrumVoiceName(v), n)
		}
	}
}

func TestAutoPilotPatternRollsDisabled(t *testing.T) {
	clock, pilot, drums := pilotRig(4)
	pilot.PatternEnabled.SetValue(false)

	writes := 0
	pilot.gen.NewNotes.Subscribe(func(bool) { writes++ })
	for _, v := range pilot.voices {
		v.NewPattern.Subscribe(func(bool) { writes++ })
	}
	drums.NewPattern.Subscribe(func(bool) { writes++ })
	writes = 0 // drop replays

	playMeasures(clock, 128)

	if writes != 0 {
		t.Fatalf("%d trigger writes with pattern alteration disabled", writes)
	}
}

func TestAutoPilotArmsTriggersOverTime(t *testing.T) {
	clock, pilot, drums := pilotRig(5)

	armed := 0
	for _, v := range pilot.voices {
		v.NewPattern.Subscribe(func(on bool) {
			if on {
				armed++
			}
		})
	}
	drums.NewPattern.Subscribe(func(on bool) {
		if on {
			armed++
		}
	})
	armed = 0 // triggers start disarmed, but drop replays regardless

	// 512 measures crosses 32 sixteen-measure boundaries; the chance that
	// every roll misses is negligible even before picking a seed.
	playMeasures(clock, 512)

	if armed == 0 {
		t.Fatal("pattern alteration never armed a trigger across 512 measures")
	}
}

func TestAutoPilotRollsPatternsOnSixtyFourBoundaries(t *testing.T) {
	_, pilot, drums := pilotRig(8)

	// The 16-measure roll is its own schedule: at a 64-measure boundary it
	// must run whether or not the note refresh fired. Only trials where the
	// refresh missed are checked; over this many the per-voice and drum
	// rolls cannot all miss.
	sawRoll := false
	for trial := 0; trial < 500 && !sawRoll; trial++ {
		pilot.gen.NewNotes.SetValue(false)
		for _, v := range pilot.voices {
			v.NewPattern.SetValue(false)
		}
		drums.NewPattern.SetValue(false)

		pilot.onUpcomingMeasure(64)

		if pilot.gen.NewNotes.Value() {
			continue // the note refresh fired and armed everything itself
		}
		if drums.NewPattern.Value() {
			sawRoll = true
		}
		for _, v := range pilot.voices {
			if v.NewPattern.Value() {
				sawRoll = true
			}
		}
	}
	if !sawRoll {
		t.Fatal("64-measure boundaries never ran the 16-measure pattern roll")
	}
}

func TestStepWanderersConcurrentWithTicks(t *testing.T) {
	m := NewManager(120, 0, Sinks{}, rand.New(rand.NewSource(9)))
	s := &fakeScheduler{}
	s.install(m.Clock)
	m.Play()

	// Wander on one goroutine while the clock side generates patterns and
	// rolls its measure dice. The two paths draw from separate generators;
	// the race detector keeps it that way.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 2000; i++ {
			m.Pilot.StepWanderers()
		}
	}()

	for i := 0; i < 16*PatternLength; i++ {
		if i%PatternLength == 0 {
			m.Voices[0].NewPattern.SetValue(true)
			m.Drums.NewPattern.SetValue(true)
		}
		s.fire(t)
	}
	<-done
}

func TestAutoPilotQuietAtConstruction(t *testing.T) {
	_, pilot, drums := pilotRig(6)

	// Measure counters replay 0 on wiring; that must not count as a
	// boundary decision.
	if pilot.upcomingMeasure.Value() != 0 || pilot.currentMeasure.Value() != 0 {
		t.Fatal("counters moved during wiring")
	}
	for v, mute := range drums.Mutes {
		if mute.Value() {
			t.Fatalf("%s muted at construction", DrumVoiceName(v))
		}
	}
}

func TestAutoPilotWandererRegistry(t *testing.T) {
	_, pilot, _ := pilotRig(7)

	// Five knobs per voice, two voices, plus the two delay knobs.
	want := 5*2 + 2
	if len(pilot.wanderers) != want {
		t.Fatalf("registered %d wanderers, want %d", len(pilot.wanderers), want)
	}

	before := make([]float64, 0, want)
	for _, v := range pilot.voices {
		for _, p := range v.SynthParams() {
			before = append(before, p.Value())
		}
	}
	pilot.StepWanderers()
	moved := false
	i := 0
	for _, v := range pilot.voices {
		for _, p := range v.SynthParams() {
			if p.Value() != before[i] {
				moved = true
			}
			i++
		}
	}
	if !moved {
		t.Fatal("StepWanderers moved nothing")
	}
}
