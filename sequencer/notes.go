package sequencer

import (
	"fmt"
	"strconv"
	"strings"
)

// Rest marks an empty melodic slot.
const Rest = "-"

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName converts a MIDI note number to a name like "C#2".
// Octave numbering follows the MIDI convention where 60 is C4.
func NoteName(midi int) string {
	return noteNames[((midi%12)+12)%12] + strconv.Itoa(midi/12-1)
}

// NoteNumber converts a note name back to its MIDI number.
func NoteNumber(name string) (int, error) {
	if name == Rest || name == "" {
		return 0, fmt.Errorf("not a note: %q", name)
	}
	split := 1
	if len(name) > 1 && name[1] == '#' {
		split = 2
	}
	pitch := -1
	for i, n := range noteNames {
		if n == name[:split] {
			pitch = i
			break
		}
	}
	if pitch < 0 {
		return 0, fmt.Errorf("bad pitch class in %q", name)
	}
	octave, err := strconv.Atoi(strings.TrimSpace(name[split:]))
	if err != nil {
		return 0, fmt.Errorf("bad octave in %q: %w", name, err)
	}
	return (octave+1)*12 + pitch, nil
}
