package game

import (
	"sync"
)

// Renderer receives state-change notifications from the engine. Calls are made while
// the engine holds its lock, so implementations must not call back into the engine
// synchronously; hand the notification off instead.
type Renderer interface {
	// OnLayout announces a new board. Views are face down and carry no symbols.
	OnLayout(cards []CardView)
	OnReveal(cardID int, symbol Symbol)
	OnHide(cardID int)
	OnMatched(cardID int)
	OnMoveCountChanged(moves int)
	OnTimeChanged(seconds int)
	OnPairsChanged(matched, total int)
	OnMismatch(first, second int)
	OnComplete(result Result)
}

// Result summarises a finished session
type Result struct {
	ElapsedSeconds int    `json:"elapsedSeconds"`
	Moves          int    `json:"moves"`
	PairsTotal     int    `json:"pairsTotal"`
	Rating         Rating `json:"rating"`
}

// NopRenderer ignores every notification. Embed it to implement only part of Renderer.
type NopRenderer struct{}

func (NopRenderer) OnLayout([]CardView) {}
func (NopRenderer) OnReveal(int, Symbol) {}
func (NopRenderer) OnHide(int) {}
func (NopRenderer) OnMatched(int) {}
func (NopRenderer) OnMoveCountChanged(int) {}
func (NopRenderer) OnTimeChanged(int) {}
func (NopRenderer) OnPairsChanged(int, int) {}
func (NopRenderer) OnMismatch(int, int) {}
func (NopRenderer) OnComplete(Result) {}

// MultiRenderer fans each notification out to every renderer in order
type MultiRenderer []Renderer

func (m MultiRenderer) OnLayout(cards []CardView) {
	for _, r := range m {
		r.OnLayout(cards)
	}
}

func (m MultiRenderer) OnReveal(cardID int, symbol Symbol) {
	for _, r := range m {
		r.OnReveal(cardID, symbol)
	}
}

func (m MultiRenderer) OnHide(cardID int) {
	for _, r := range m {
		r.OnHide(cardID)
	}
}

func (m MultiRenderer) OnMatched(cardID int) {
	for _, r := range m {
		r.OnMatched(cardID)
	}
}

func (m MultiRenderer) OnMoveCountChanged(moves int) {
	for _, r := range m {
		r.OnMoveCountChanged(moves)
	}
}

func (m MultiRenderer) OnTimeChanged(seconds int) {
	for _, r := range m {
		r.OnTimeChanged(seconds)
	}
}

func (m MultiRenderer) OnPairsChanged(matched, total int) {
	for _, r := range m {
		r.OnPairsChanged(matched, total)
	}
}

func (m MultiRenderer) OnMismatch(first, second int) {
	for _, r := range m {
		r.OnMismatch(first, second)
	}
}

func (m MultiRenderer) OnComplete(result Result) {
	for _, r := range m {
		r.OnComplete(result)
	}
}

// EventType represents an engine notification type
type EventType string

const (
	EventTypeLayout   EventType = "layout"
	EventTypeReveal   EventType = "reveal"
	EventTypeHide     EventType = "hide"
	EventTypeMatched  EventType = "matched"
	EventTypeMoves    EventType = "moves"
	EventTypeTime     EventType = "time"
	EventTypePairs    EventType = "pairs"
	EventTypeMismatch EventType = "mismatch"
	EventTypeComplete EventType = "complete"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is a notification in value form
type Event interface {
	EventType() EventType
}

type LayoutEvent struct{ Cards []CardView }

type RevealEvent struct {
	CardID int
	Symbol Symbol
}

type HideEvent struct{ CardID int }

type MatchedEvent struct{ CardID int }

type MovesEvent struct{ Moves int }

type TimeEvent struct{ Seconds int }

type PairsEvent struct{ Matched, Total int }

type MismatchEvent struct{ First, Second int }

type CompleteEvent struct{ Result Result }

func (LayoutEvent) EventType() EventType { return EventTypeLayout }
func (RevealEvent) EventType() EventType { return EventTypeReveal }
func (HideEvent) EventType() EventType { return EventTypeHide }
func (MatchedEvent) EventType() EventType { return EventTypeMatched }
func (MovesEvent) EventType() EventType { return EventTypeMoves }
func (TimeEvent) EventType() EventType { return EventTypeTime }
func (PairsEvent) EventType() EventType { return EventTypePairs }
func (MismatchEvent) EventType() EventType { return EventTypeMismatch }
func (CompleteEvent) EventType() EventType { return EventTypeComplete }

// EventFunc adapts a function taking events into a Renderer
type EventFunc func(Event)

func (f EventFunc) OnLayout(cards []CardView) {
	cp := make([]CardView, len(cards))
	copy(cp, cards)
	f(LayoutEvent{Cards: cp})
}

func (f EventFunc) OnReveal(cardID int, symbol Symbol) { f(RevealEvent{CardID: cardID, Symbol: symbol}) }
func (f EventFunc) OnHide(cardID int) { f(HideEvent{CardID: cardID}) }
func (f EventFunc) OnMatched(cardID int) { f(MatchedEvent{CardID: cardID}) }
func (f EventFunc) OnMoveCountChanged(moves int) { f(MovesEvent{Moves: moves}) }
func (f EventFunc) OnTimeChanged(seconds int) { f(TimeEvent{Seconds: seconds}) }
func (f EventFunc) OnPairsChanged(matched, total int) {
	f(PairsEvent{Matched: matched, Total: total})
}
func (f EventFunc) OnMismatch(first, second int) { f(MismatchEvent{First: first, Second: second}) }
func (f EventFunc) OnComplete(result Result) { f(CompleteEvent{Result: result}) }

// Recorder is a Renderer that keeps every event it receives
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Renderer returns the recorder as a Renderer
func (r *Recorder) Renderer() Renderer {
	return EventFunc(r.record)
}

func (r *Recorder) record(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// OfType returns the recorded events of one type
func (r *Recorder) OfType(t EventType) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.EventType() == t {
			out = append(out, e)
		}
	}
	return out
}

// Reset discards recorded events
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
