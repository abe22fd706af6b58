package server

import (
	"github.com/lox/concentration/internal/game"
)

// connectionRenderer forwards engine notifications to a client. Sends only enqueue,
// so it is safe to call while the engine holds its lock.
type connectionRenderer struct {
	conn *Connection
}

var _ game.Renderer = connectionRenderer{}

func (r connectionRenderer) send(t MessageType, data interface{}) {
	msg, err := NewMessage(t, data)
	if err != nil {
		r.conn.logger.Error("Failed to create message", "type", t, "error", err)
		return
	}
	_ = r.conn.SendMessage(msg) // Ignore send errors, the read pump notices closed connections
}

func (r connectionRenderer) OnLayout(cards []game.CardView) {
	d := r.conn.Difficulty()
	r.send(MessageTypeLayout, LayoutData{
		Difficulty: d.Name,
		Columns:    d.Columns,
		PairsTotal: len(cards) / 2,
		Cards:      cards,
	})
}

func (r connectionRenderer) OnReveal(cardID int, symbol game.Symbol) {
	r.send(MessageTypeReveal, RevealData{CardID: cardID, Symbol: symbol})
}

func (r connectionRenderer) OnHide(cardID int) {
	r.send(MessageTypeHide, CardData{CardID: cardID})
}

func (r connectionRenderer) OnMatched(cardID int) {
	r.send(MessageTypeMatched, CardData{CardID: cardID})
}

func (r connectionRenderer) OnMoveCountChanged(moves int) {
	r.send(MessageTypeMoves, MovesData{Moves: moves})
}

func (r connectionRenderer) OnTimeChanged(seconds int) {
	r.send(MessageTypeTime, TimeData{Seconds: seconds, Display: game.FormatElapsed(seconds)})
}

func (r connectionRenderer) OnPairsChanged(matched, total int) {
	r.send(MessageTypePairs, PairsData{Matched: matched, Total: total})
}

func (r connectionRenderer) OnMismatch(first, second int) {
	r.send(MessageTypeMismatch, MismatchData{CardIDs: [2]int{first, second}})
}

func (r connectionRenderer) OnComplete(result game.Result) {
	r.send(MessageTypeComplete, CompleteDataFromResult(result))
}
