package sequencer

import (
	"math/rand"
	"testing"
)

func TestCreatePatternShape(t *testing.T) {
	gen := NewThreeOhGen(rand.New(rand.NewSource(1)))

	for trial := 0; trial < 16; trial++ {
		p := gen.CreatePattern()
		noteSet := gen.NoteSet.Value()
		for i, slot := range p {
			if slot.Note == Rest {
				if slot.Accent || slot.Glide {
					t.Fatalf("trial %d step %d: rest with accent=%v glide=%v", trial, i, slot.Accent, slot.Glide)
				}
				continue
			}
			if _, err := NoteNumber(slot.Note); err != nil {
				t.Fatalf("trial %d step %d: unparseable note %q", trial, i, slot.Note)
			}
			found := false
			for _, n := range noteSet {
				if n == slot.Note {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("trial %d step %d: note %q not in note set %v", trial, i, slot.Note, noteSet)
			}
		}
	}
}

func TestNewNotesConsumedOnCreate(t *testing.T) {
	gen := NewThreeOhGen(rand.New(rand.NewSource(2)))

	if !gen.NewNotes.Value() {
		t.Fatal("generator should start with NewNotes armed")
	}
	gen.CreatePattern()
	if gen.NewNotes.Value() {
		t.Fatal("CreatePattern did not clear NewNotes")
	}

	// Without the trigger the note set is stable across calls.
	before := gen.NoteSet.Value()
	gen.CreatePattern()
	after := gen.NoteSet.Value()
	if len(before) != len(after) {
		t.Fatalf("note set changed without trigger: %v -> %v", before, after)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("note set changed without trigger: %v -> %v", before, after)
		}
	}
}

func TestNoteSetWithinRegisterBand(t *testing.T) {
	gen := NewThreeOhGen(rand.New(rand.NewSource(3)))

	for trial := 0; trial < 50; trial++ {
		gen.NewNotes.SetValue(true)
		gen.CreatePattern()
		for _, name := range gen.NoteSet.Value() {
			n, err := NoteNumber(name)
			if err != nil {
				t.Fatalf("bad note %q: %v", name, err)
			}
			if n < rootLow || n >= rootLow+rootBand+27 {
				t.Fatalf("note %q (%d) outside root band plus template span", name, n)
			}
		}
	}
}

func TestCreatePatternDeterministicWithSeed(t *testing.T) {
	a := NewThreeOhGen(rand.New(rand.NewSource(42)))
	b := NewThreeOhGen(rand.New(rand.NewSource(42)))

	for trial := 0; trial < 8; trial++ {
		pa, pb := a.CreatePattern(), b.CreatePattern()
		if pa != pb {
			t.Fatalf("trial %d: same seed produced different patterns\n%v\n%v", trial, pa, pb)
		}
	}
}
