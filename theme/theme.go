package theme

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	// Grid states
	StepEmpty  rune // · silent step
	Playhead   rune // ▶ current step marker
	NoteHit    rune // ● plain hit
	NoteAccent rune // ◆ accented hit
	NoteGlide  rune // ~ glide into this step
	DrumHit    rune // ■ drum hit (colored by velocity)

	// Autopilot switches
	SwitchOn  rune // ■
	SwitchOff rune // □
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			StepEmpty:  '·',
			Playhead:   '▶',
			NoteHit:    '●',
			NoteAccent: '◆',
			NoteGlide:  '~',
			DrumHit:    '■',

			SwitchOn:  '■',
			SwitchOff: '□',
		},
	}
}

// Accent is the header/highlight color, drawn from the hot end of the
// palette.
func (t *Theme) Accent() lipgloss.Color {
	return lipgloss.Color(t.Palette.Lookup(0.75).Hex())
}

// Muted is the color for help text and inactive elements.
func (t *Theme) Muted() lipgloss.Color {
	return lipgloss.Color(t.Palette.Lookup(0.3).Hex())
}

// FG is the main foreground color.
func (t *Theme) FG() lipgloss.Color {
	return lipgloss.Color(t.Palette.Lookup(0.95).Hex())
}

// VelocityColor maps a 0-1 velocity onto the palette.
func (t *Theme) VelocityColor(v float64) lipgloss.Color {
	return lipgloss.Color(t.Palette.Lookup(0.25 + 0.75*v).Hex())
}
