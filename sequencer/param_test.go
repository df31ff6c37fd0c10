package sequencer

import "testing"

func TestParameterReplayOnSubscribe(t *testing.T) {
	p := NewParameter("cutoff", 0, 1, 0.5)

	var got []float64
	p.Subscribe(func(v float64) { got = append(got, v) })

	if len(got) != 1 || got[0] != 0.5 {
		t.Fatalf("expected exactly one replay of 0.5, got %v", got)
	}

	p.SetValue(0.7)
	if len(got) != 2 || got[1] != 0.7 {
		t.Fatalf("expected write delivery of 0.7, got %v", got)
	}
}

func TestParameterDeliveryCountAndOrder(t *testing.T) {
	p := NewParameter("res", 0, 1, 0)

	const subscribers = 3
	var order []int
	counts := make([]int, subscribers)
	for i := 0; i < subscribers; i++ {
		i := i
		p.Subscribe(func(v float64) {
			counts[i]++
			order = append(order, i)
		})
	}
	order = nil // drop the replay deliveries

	const writes = 4
	for w := 0; w < writes; w++ {
		p.SetValue(float64(w))
	}

	for i, c := range counts {
		if c != 1+writes {
			t.Errorf("subscriber %d: got %d deliveries, want %d", i, c, 1+writes)
		}
	}
	// Each write must hit subscribers in subscription order.
	for w := 0; w < writes; w++ {
		for i := 0; i < subscribers; i++ {
			if order[w*subscribers+i] != i {
				t.Fatalf("write %d delivered out of order: %v", w, order)
			}
		}
	}
}

func TestParameterNoDedup(t *testing.T) {
	p := NewParameter("env", 0, 1, 0.3)

	n := 0
	p.Subscribe(func(float64) { n++ })

	p.SetValue(0.3)
	p.SetValue(0.3)
	if n != 3 { // replay + two identical writes
		t.Fatalf("got %d deliveries, want 3: equal-value writes must still publish", n)
	}
}

func TestTriggerFireAndClear(t *testing.T) {
	trig := NewTrigger("new-pattern", false)

	var got []bool
	trig.Subscribe(func(v bool) { got = append(got, v) })

	trig.SetValue(true)
	if !trig.Value() {
		t.Fatal("trigger not set")
	}
	// Consumer convention: read, then clear.
	trig.SetValue(false)

	want := []bool{false, true, false}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestIntParameter(t *testing.T) {
	p := NewIntParameter("step", 7)

	var got []int
	p.Subscribe(func(v int) { got = append(got, v) })
	p.SetValue(8)

	if p.Value() != 8 {
		t.Fatalf("Value() = %d, want 8", p.Value())
	}
	if len(got) != 2 || got[0] != 7 || got[1] != 8 {
		t.Fatalf("deliveries = %v, want [7 8]", got)
	}
}

func TestNoteSetParameterCopies(t *testing.T) {
	p := NewNoteSetParameter("notes", []string{"C2", "E2"})

	notes := p.Value()
	notes[0] = "G9"
	if p.Value()[0] != "C2" {
		t.Fatal("Value() aliases internal storage")
	}

	in := []string{"A1"}
	p.SetValue(in)
	in[0] = "B7"
	if p.Value()[0] != "A1" {
		t.Fatal("SetValue aliases caller storage")
	}
}

func TestNoteSetParameterCallbacksGetCopies(t *testing.T) {
	p := NewNoteSetParameter("notes", []string{"C2", "E2"})

	// A subscriber scribbling on its argument must not reach the stored set.
	p.Subscribe(func(notes []string) {
		for i := range notes {
			notes[i] = "G9"
		}
	})
	if got := p.Value(); got[0] != "C2" || got[1] != "E2" {
		t.Fatalf("replay argument aliases internal storage: %v", got)
	}

	p.SetValue([]string{"A1", "B1"})
	if got := p.Value(); got[0] != "A1" || got[1] != "B1" {
		t.Fatalf("write argument aliases internal storage: %v", got)
	}
}
