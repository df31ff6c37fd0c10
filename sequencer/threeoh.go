package sequencer

import "math/rand"

// PatternLength is the number of steps per bar; every pattern in the engine
// is one bar long.
const PatternLength = 16

// Slot is one melodic step: a note name (Rest for silence) plus performance
// modifiers. A rest never carries accent or glide.
type Slot struct {
	Note   string
	Accent bool
	Glide  bool
}

// Pattern is one bar of melodic slots.
type Pattern [PatternLength]Slot

// Melodic shape templates, as semitone offsets above a random root. Mostly
// root-heavy so the lines stay hypnotic: unison clusters, octave stabs, the
// odd wide chromatic run.
var offsetTemplates = [][]int{
	{0, 0, 12, 24, 27},
	{0, 0, 0, 12, 10, 19, 26, 27},
	{0, 1, 7, 10, 12, 13},
	{0},
	{0, 0, 0, 12},
	{0, 0, 12, 14, 15, 19},
	{0, 0, 0, 0, 12, 13, 16, 19, 22, 24, 25},
	{0, 0, 0, 7, 12, 15, 17, 20, 24},
}

// Roots are drawn from a fixed low register band.
const (
	rootLow  = 28 // E1
	rootBand = 15
)

// ThreeOhGen synthesizes one-bar acid lines from a shared note set. The note
// set persists across calls; setting NewNotes makes the next CreatePattern
// regenerate it first and clear the trigger.
type ThreeOhGen struct {
	NoteSet  *NoteSetParameter
	NewNotes *BoolParameter

	rng *rand.Rand
}

// NewThreeOhGen creates a generator with NewNotes armed, so the first
// pattern request picks a fresh note set.
func NewThreeOhGen(rng *rand.Rand) *ThreeOhGen {
	return &ThreeOhGen{
		NoteSet:  NewNoteSetParameter("note-set", []string{NoteName(rootLow)}),
		NewNotes: NewTrigger("new-notes", true),
		rng:      rng,
	}
}

// changeNotes picks a root within the register band and one offset template,
// and publishes root+offset as the new note set.
func (g *ThreeOhGen) changeNotes() {
	root := rootLow + g.rng.Intn(rootBand)
	template := offsetTemplates[g.rng.Intn(len(offsetTemplates))]
	notes := make([]string, len(template))
	for i, offset := range template {
		notes[i] = NoteName(root + offset)
	}
	g.NoteSet.SetValue(notes)
}

// stepChance returns the fill probability for a step. Beat-aligned steps hit
// most often, then triplet-aligned, then remaining even steps; the rest of
// the grid stays sparse. The gradient is what makes the line syncopated
// instead of a flat random spray.
func stepChance(i int) float64 {
	switch {
	case i%4 == 0:
		return 0.6
	case i%3 == 0:
		return 0.5
	case i%2 == 0:
		return 0.3
	default:
		return 0.1
	}
}

// CreatePattern returns a fresh one-bar pattern over the current note set,
// regenerating the note set first if NewNotes is armed.
func (g *ThreeOhGen) CreatePattern() Pattern {
	if g.NewNotes.Value() {
		g.changeNotes()
		g.NewNotes.SetValue(false)
	}

	notes := g.NoteSet.Value()
	var p Pattern
	for i := range p {
		if g.rng.Float64() < stepChance(i) {
			p[i] = Slot{
				Note:   notes[g.rng.Intn(len(notes))],
				Accent: g.rng.Float64() < 0.3,
				Glide:  g.rng.Float64() < 0.1,
			}
		} else {
			p[i] = Slot{Note: Rest}
		}
	}
	return p
}
