package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"acidbox/sequencer"
	"acidbox/theme"
)

const nameWidth = 12

// RenderRuler renders the step numbers with the playhead marked.
func RenderRuler(th *theme.Theme, playhead int) string {
	var out strings.Builder
	out.WriteString(strings.Repeat(" ", nameWidth+1))
	dim := lipgloss.NewStyle().Foreground(th.Muted())
	hot := lipgloss.NewStyle().Foreground(th.Accent())
	for i := 0; i < sequencer.PatternLength; i++ {
		ch := "."
		if i%4 == 0 {
			ch = fmt.Sprintf("%d", i/4+1)
		}
		if i == playhead {
			out.WriteString(hot.Render(string(th.Symbols.Playhead)))
		} else {
			out.WriteString(dim.Render(ch))
		}
		out.WriteString(" ")
	}
	return out.String()
}

// RenderDrumRow renders one drum voice as velocity-shaded cells.
func RenderDrumRow(th *theme.Theme, name string, row *[sequencer.PatternLength]float64, playhead int, muted bool) string {
	var out strings.Builder
	nameStyle := lipgloss.NewStyle().Foreground(th.FG())
	if muted {
		nameStyle = lipgloss.NewStyle().Foreground(th.Muted())
		name += " M"
	}
	out.WriteString(nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)))
	out.WriteString(" ")

	empty := lipgloss.NewStyle().Foreground(th.Muted())
	for i, vel := range row {
		var cell string
		if vel > 0 {
			style := lipgloss.NewStyle().Foreground(th.VelocityColor(vel))
			if muted {
				style = empty
			}
			cell = style.Render(string(th.Symbols.DrumHit))
		} else {
			cell = empty.Render(string(th.Symbols.StepEmpty))
		}
		if i == playhead {
			cell = lipgloss.NewStyle().Reverse(true).Render(cell)
		}
		out.WriteString(cell)
		out.WriteString(" ")
	}
	return out.String()
}

// RenderVoiceRow renders one acid voice pattern; accents get their own
// symbol, glides a tilde, and the note set is appended for context.
func RenderVoiceRow(th *theme.Theme, name string, pattern sequencer.Pattern, playhead int) string {
	var out strings.Builder
	out.WriteString(lipgloss.NewStyle().Foreground(th.FG()).Render(fmt.Sprintf("%-*s", nameWidth, name)))
	out.WriteString(" ")

	empty := lipgloss.NewStyle().Foreground(th.Muted())
	hit := lipgloss.NewStyle().Foreground(th.VelocityColor(0.6))
	accent := lipgloss.NewStyle().Foreground(th.VelocityColor(1))
	for i, slot := range pattern {
		var cell string
		switch {
		case slot.Note == sequencer.Rest:
			cell = empty.Render(string(th.Symbols.StepEmpty))
		case slot.Glide:
			cell = hit.Render(string(th.Symbols.NoteGlide))
		case slot.Accent:
			cell = accent.Render(string(th.Symbols.NoteAccent))
		default:
			cell = hit.Render(string(th.Symbols.NoteHit))
		}
		if i == playhead {
			cell = lipgloss.NewStyle().Reverse(true).Render(cell)
		}
		out.WriteString(cell)
		out.WriteString(" ")
	}
	return out.String()
}

// RenderMeter renders a parameter as a horizontal bar, colored by position
// within its bounds.
func RenderMeter(th *theme.Theme, p *sequencer.Parameter, width int) string {
	span := p.Max - p.Min
	norm := 0.0
	if span > 0 {
		norm = (p.Value() - p.Min) / span
	}
	if norm < 0 {
		norm = 0
	}
	if norm > 1 {
		norm = 1
	}
	filled := int(norm*float64(width) + 0.5)

	bar := lipgloss.NewStyle().Foreground(th.VelocityColor(norm)).Render(strings.Repeat("━", filled))
	rest := lipgloss.NewStyle().Foreground(th.Muted()).Render(strings.Repeat("─", width-filled))
	return fmt.Sprintf("%-*s %s%s", nameWidth, p.Name, bar, rest)
}

// RenderSwitch renders a labelled on/off marker.
func RenderSwitch(th *theme.Theme, label string, on bool) string {
	if on {
		style := lipgloss.NewStyle().Foreground(th.Accent())
		return style.Render(string(th.Symbols.SwitchOn) + " " + label)
	}
	style := lipgloss.NewStyle().Foreground(th.Muted())
	return style.Render(string(th.Symbols.SwitchOff) + " " + label)
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
