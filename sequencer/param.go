package sequencer

import "sync"

// Parameter is an observable float64 cell with optional bounds. Every write
// publishes to all subscribers in subscription order, even when the value is
// unchanged - triggers depend on re-fire semantics, so there is no dedup.
//
// Subscribe replays the current value once before registering the callback,
// so dependent machinery initializes without a separate primed read.
//
// Dispatch is synchronous. A subscriber that writes back into the parameter
// it observes will recurse without bound; nothing in this engine does that,
// and nothing detects it.
type Parameter struct {
	Name     string
	Min, Max float64

	mu    sync.Mutex
	value float64
	subs  []func(float64)
}

// NewParameter creates a bounded parameter with an initial value.
func NewParameter(name string, min, max, initial float64) *Parameter {
	return &Parameter{Name: name, Min: min, Max: max, value: initial}
}

// Value returns the last written value.
func (p *Parameter) Value() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// SetValue writes v and notifies every subscriber.
func (p *Parameter) SetValue(v float64) {
	p.mu.Lock()
	p.value = v
	subs := p.subs
	p.mu.Unlock()
	for _, cb := range subs {
		cb(v)
	}
}

// Subscribe registers cb for all future writes, after delivering the current
// value to it once. There is no unsubscribe; subscriptions live as long as
// the parameter.
func (p *Parameter) Subscribe(cb func(float64)) {
	p.mu.Lock()
	p.subs = append(p.subs, cb)
	v := p.value
	p.mu.Unlock()
	cb(v)
}

// Range returns Max - Min.
func (p *Parameter) Range() float64 {
	return p.Max - p.Min
}

// BoolParameter is an observable bool cell with the same publish semantics
// as Parameter. A trigger is a BoolParameter by convention: the producer
// sets it true, the consumer reads it and clears it.
type BoolParameter struct {
	Name string

	mu    sync.Mutex
	value bool
	subs  []func(bool)
}

func NewBoolParameter(name string, initial bool) *BoolParameter {
	return &BoolParameter{Name: name, value: initial}
}

// NewTrigger creates a one-shot boolean signal, initially armed or not.
func NewTrigger(name string, armed bool) *BoolParameter {
	return NewBoolParameter(name, armed)
}

func (p *BoolParameter) Value() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

func (p *BoolParameter) SetValue(v bool) {
	p.mu.Lock()
	p.value = v
	subs := p.subs
	p.mu.Unlock()
	for _, cb := range subs {
		cb(v)
	}
}

func (p *BoolParameter) Subscribe(cb func(bool)) {
	p.mu.Lock()
	p.subs = append(p.subs, cb)
	v := p.value
	p.mu.Unlock()
	cb(v)
}

// IntParameter is an observable int cell. The clock's step bus and the
// autopilot's measure counters are IntParameters.
type IntParameter struct {
	Name string

	mu    sync.Mutex
	value int
	subs  []func(int)
}

func NewIntParameter(name string, initial int) *IntParameter {
	return &IntParameter{Name: name, value: initial}
}

func (p *IntParameter) Value() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

func (p *IntParameter) SetValue(v int) {
	p.mu.Lock()
	p.value = v
	subs := p.subs
	p.mu.Unlock()
	for _, cb := range subs {
		cb(v)
	}
}

func (p *IntParameter) Subscribe(cb func(int)) {
	p.mu.Lock()
	p.subs = append(p.subs, cb)
	v := p.value
	p.mu.Unlock()
	cb(v)
}

// NoteSetParameter is an observable cell holding an ordered set of note
// names. Readers get a copy; the stored slice is never aliased out.
type NoteSetParameter struct {
	Name string

	mu    sync.Mutex
	notes []string
	subs  []func([]string)
}

func NewNoteSetParameter(name string, notes []string) *NoteSetParameter {
	p := &NoteSetParameter{Name: name}
	p.notes = append(p.notes, notes...)
	return p
}

func (p *NoteSetParameter) Value() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot()
}

func (p *NoteSetParameter) SetValue(notes []string) {
	p.mu.Lock()
	p.notes = make([]string, len(notes))
	copy(p.notes, notes)
	subs := p.subs
	v := p.snapshot()
	p.mu.Unlock()
	for _, cb := range subs {
		cb(v)
	}
}

func (p *NoteSetParameter) Subscribe(cb func([]string)) {
	p.mu.Lock()
	p.subs = append(p.subs, cb)
	v := p.snapshot()
	p.mu.Unlock()
	cb(v)
}

// snapshot copies the stored notes. Callbacks get the copy, same as Value();
// the stored slice is never aliased out. Callers must hold the mutex.
func (p *NoteSetParameter) snapshot() []string {
	out := make([]string, len(p.notes))
	copy(out, p.notes)
	return out
}
