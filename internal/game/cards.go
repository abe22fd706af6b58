package game

// Symbol is the face value of a card. Every symbol in a session appears on exactly
// two cards.
type Symbol string

// CardState represents the visibility of a card
type CardState int

const (
	Hidden CardState = iota
	Revealed
	Matched
)

// String returns the string representation of a card state
func (s CardState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case Matched:
		return "matched"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name
func (s CardState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Card is a single position on the board. ID is the card's position and never changes
// during a session; only State is mutated, and only by the engine.
type Card struct {
	ID     int
	Symbol Symbol
	State  CardState
}

// CardView is the presentation-safe form of a card. Symbol is empty while the card is
// hidden so a renderer cannot leak the layout.
type CardView struct {
	ID     int       `json:"id"`
	State  CardState `json:"state"`
	Symbol Symbol    `json:"symbol,omitempty"`
}

// View returns the card as seen by the player
func (c Card) View() CardView {
	v := CardView{ID: c.ID, State: c.State}
	if c.State != Hidden {
		v.Symbol = c.Symbol
	}
	return v
}

func viewsOf(cards []Card) []CardView {
	views := make([]CardView, len(cards))
	for i, c := range cards {
		views[i] = c.View()
	}
	return views
}
