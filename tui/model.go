package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"acidbox/sequencer"
	"acidbox/theme"
	"acidbox/widgets"
)

type Model struct {
	Manager  *sequencer.Manager
	Theme    *theme.Theme
	quitting bool
}

type UpdateMsg struct{}

func NewModel(manager *sequencer.Manager, th *theme.Theme) Model {
	return Model{
		Manager: manager,
		Theme:   th,
	}
}

func ListenForUpdates(manager *sequencer.Manager) tea.Cmd {
	return func() tea.Msg {
		<-manager.UpdateChan
		return UpdateMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.Manager)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		pilot := m.Manager.Pilot
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.Manager.Shutdown()
			return m, tea.Quit

		case "p":
			_, playing, _ := m.Manager.GetState()
			if playing {
				m.Manager.Stop()
			} else {
				m.Manager.Play()
			}

		case "+", "=":
			_, _, tempo := m.Manager.GetState()
			m.Manager.SetTempo(tempo + 5)

		case "-", "_":
			_, _, tempo := m.Manager.GetState()
			m.Manager.SetTempo(tempo - 5)

		case "a":
			pilot.PatternEnabled.SetValue(!pilot.PatternEnabled.Value())
		case "w":
			pilot.WanderEnabled.SetValue(!pilot.WanderEnabled.Value())
		case "m":
			pilot.MutesEnabled.SetValue(!pilot.MutesEnabled.Value())

		case "n":
			// New note set at the next bar, on both voices
			m.Manager.Gen.NewNotes.SetValue(true)
			for _, v := range m.Manager.Voices {
				v.NewPattern.SetValue(true)
			}
		case "r":
			for _, v := range m.Manager.Voices {
				v.NewPattern.SetValue(true)
			}
		case "d":
			m.Manager.Drums.NewPattern.SetValue(true)

		case "1", "2", "3", "4":
			v := int(msg.String()[0] - '1')
			mute := m.Manager.Drums.Mutes[v]
			mute.SetValue(!mute.Value())
		}

	case UpdateMsg:
		return m, ListenForUpdates(m.Manager)
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	step, playing, tempo := m.Manager.GetState()
	th := m.Theme

	headerStyle := lipgloss.NewStyle().Foreground(th.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(th.Muted())

	playState := "STOP"
	if playing {
		playState = "PLAY"
	}
	header := headerStyle.Render(fmt.Sprintf("acidbox  %s  %3.0fbpm  step:%02d", playState, tempo, step))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")

	// Pattern grids
	out.WriteString(widgets.RenderRuler(th, step))
	out.WriteString("\n")
	for _, v := range m.Manager.Voices {
		out.WriteString(widgets.RenderVoiceRow(th, v.Name, v.Pattern(), step))
		out.WriteString("\n")
	}
	drums := m.Manager.Drums.Patterns()
	for voice := 0; voice < sequencer.NumDrumVoices; voice++ {
		muted := m.Manager.Drums.Mutes[voice].Value()
		out.WriteString(widgets.RenderDrumRow(th, sequencer.DrumVoiceName(voice), drums.Voice(voice), step, muted))
		out.WriteString("\n")
	}
	out.WriteString("\n")

	// Note set + autopilot switches
	notes := m.Manager.Gen.NoteSet.Value()
	out.WriteString(dimStyle.Render("notes: " + strings.Join(notes, " ")))
	out.WriteString("\n")
	pilot := m.Manager.Pilot
	out.WriteString(widgets.RenderSwitch(th, "patterns", pilot.PatternEnabled.Value()))
	out.WriteString("  ")
	out.WriteString(widgets.RenderSwitch(th, "wander", pilot.WanderEnabled.Value()))
	out.WriteString("  ")
	out.WriteString(widgets.RenderSwitch(th, "mutes", pilot.MutesEnabled.Value()))
	out.WriteString("\n\n")

	// Wandering knobs
	for _, v := range m.Manager.Voices {
		for _, p := range v.SynthParams() {
			out.WriteString(widgets.RenderMeter(th, p, 24))
			out.WriteString("\n")
		}
	}
	for _, p := range m.Manager.Delay.Params() {
		out.WriteString(widgets.RenderMeter(th, p, 24))
		out.WriteString("\n")
	}
	out.WriteString("\n")

	out.WriteString(widgets.RenderKeyHelp([]widgets.KeySection{
		{Keys: []widgets.KeyBinding{
			{Key: "p", Desc: "play/stop"},
			{Key: "+ / -", Desc: "tempo"},
			{Key: "a / w / m", Desc: "autopilot: patterns / wander / mutes"},
			{Key: "n / r / d", Desc: "new notes / new 303 patterns / new drums"},
			{Key: "1-4", Desc: "toggle drum mutes"},
			{Key: "q", Desc: "quit"},
		}},
	}))

	return out.String()
}
