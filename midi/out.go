package midi

import (
	"fmt"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"

	"acidbox/debug"
	"acidbox/sequencer"
)

// Ports returns the names of all MIDI output ports.
func Ports() []string {
	var names []string
	for _, p := range gomidi.GetOutPorts() {
		names = append(names, p.String())
	}
	return names
}

// Out is one open MIDI output port. All sinks built over it share the
// underlying sender.
type Out struct {
	mu   sync.Mutex
	send func(gomidi.Message) error
}

// Open opens the named output port.
func Open(portName string) (*Out, error) {
	for _, port := range gomidi.GetOutPorts() {
		if port.String() == portName {
			send, err := gomidi.SendTo(port)
			if err != nil {
				return nil, fmt.Errorf("open midi port %q: %w", portName, err)
			}
			debug.Log("midi", "opened port %q", portName)
			return &Out{send: send}, nil
		}
	}
	return nil, fmt.Errorf("midi port %q not found", portName)
}

func (o *Out) emit(msg gomidi.Message) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.send(msg); err != nil {
		debug.Log("midi", "send failed: %v", err)
	}
}

// BindCC subscribes a parameter and forwards its value as a control change,
// scaled linearly from the parameter's bounds onto 0-127. The subscription
// replay sends the current value immediately, which doubles as the initial
// CC state for the receiving synth.
func (o *Out) BindCC(p *sequencer.Parameter, channel, controller uint8) {
	p.Subscribe(func(v float64) {
		o.emit(gomidi.ControlChange(channel, controller, ccValue(p, v)))
	})
}

func ccValue(p *sequencer.Parameter, v float64) uint8 {
	span := p.Range()
	if span <= 0 {
		return 0
	}
	norm := (v - p.Min) / span
	if norm < 0 {
		norm = 0
	}
	if norm > 1 {
		norm = 1
	}
	return uint8(norm * 127)
}

// VoiceOut plays one acid voice on a MIDI channel, implementing
// sequencer.VoiceSink. Glide is rendered as legato overlap: the new note
// starts before the previous one is released, which mono synths read as a
// slide.
type VoiceOut struct {
	out     *Out
	channel uint8 // 0-based

	mu       sync.Mutex
	lastNote int // -1 = nothing sounding
}

func NewVoiceOut(out *Out, channel uint8) *VoiceOut {
	return &VoiceOut{out: out, channel: channel, lastNote: -1}
}

func (v *VoiceOut) PlayNote(note string, accent, glide bool) {
	n, err := sequencer.NoteNumber(note)
	if err != nil {
		debug.Log("midi", "unplayable note %q: %v", note, err)
		return
	}
	velocity := uint8(100)
	if accent {
		velocity = 127
	}

	v.mu.Lock()
	prev := v.lastNote
	v.lastNote = n
	v.mu.Unlock()

	if glide && prev >= 0 {
		v.out.emit(gomidi.NoteOn(v.channel, uint8(n), velocity))
		v.out.emit(gomidi.NoteOff(v.channel, uint8(prev)))
		return
	}
	if prev >= 0 {
		v.out.emit(gomidi.NoteOff(v.channel, uint8(prev)))
	}
	v.out.emit(gomidi.NoteOn(v.channel, uint8(n), velocity))
}

func (v *VoiceOut) Release() {
	v.mu.Lock()
	prev := v.lastNote
	v.lastNote = -1
	v.mu.Unlock()
	if prev >= 0 {
		v.out.emit(gomidi.NoteOff(v.channel, uint8(prev)))
	}
}

// DrumOut plays drum hits on a MIDI channel, implementing
// sequencer.DrumSink. Hits are sent as immediate on/off pairs; drum modules
// latch on the NoteOn.
type DrumOut struct {
	out     *Out
	channel uint8 // 0-based
	kit     DrumKit
}

func NewDrumOut(out *Out, channel uint8, kit DrumKit) *DrumOut {
	return &DrumOut{out: out, channel: channel, kit: kit}
}

func (d *DrumOut) PlayDrum(voice int, velocity float64) {
	if voice < 0 || voice >= sequencer.NumDrumVoices {
		return
	}
	vel := uint8(1 + velocity*126)
	note := d.kit.Notes[voice]
	d.out.emit(gomidi.NoteOn(d.channel, note, vel))
	d.out.emit(gomidi.NoteOff(d.channel, note))
}
