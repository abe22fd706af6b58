package server

import (
	"encoding/json"
	"time"

	"github.com/lox/concentration/internal/game"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

type StartData struct {
	Difficulty string `json:"difficulty,omitempty"`
}

type FlipData struct {
	CardID int `json:"cardId"`
}

type DifficultyData struct {
	Difficulty string `json:"difficulty"`
	Confirm    bool   `json:"confirm,omitempty"`
}

// Server → Client Messages

type DifficultyInfo struct {
	Name    string `json:"name"`
	Pairs   int    `json:"pairs"`
	Columns int    `json:"columns"`
}

type WelcomeData struct {
	Difficulties []DifficultyInfo `json:"difficulties"`
	Default      string           `json:"default"`
}

type LayoutData struct {
	Difficulty string          `json:"difficulty"`
	Columns    int             `json:"columns"`
	PairsTotal int             `json:"pairsTotal"`
	Cards      []game.CardView `json:"cards"`
}

type RevealData struct {
	CardID int         `json:"cardId"`
	Symbol game.Symbol `json:"symbol"`
}

type CardData struct {
	CardID int `json:"cardId"`
}

type MovesData struct {
	Moves int `json:"moves"`
}

type TimeData struct {
	Seconds int    `json:"seconds"`
	Display string `json:"display"`
}

type PairsData struct {
	Matched int `json:"matched"`
	Total   int `json:"total"`
}

type MismatchData struct {
	CardIDs [2]int `json:"cardIds"`
}

type CompleteData struct {
	ElapsedSeconds int         `json:"elapsedSeconds"`
	Display        string      `json:"display"`
	Moves          int         `json:"moves"`
	PairsTotal     int         `json:"pairsTotal"`
	Rating         game.Rating `json:"rating"`
	Stars          int         `json:"stars"`
}

type FlipResultData struct {
	CardID int             `json:"cardId"`
	Status game.FlipStatus `json:"status"`
}

type ConfirmRequiredData struct {
	Difficulty string `json:"difficulty"`
}

type StateData struct {
	Difficulty string        `json:"difficulty"`
	Columns    int           `json:"columns"`
	Snapshot   game.Snapshot `json:"snapshot"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CompleteDataFromResult converts an engine result into its wire form
func CompleteDataFromResult(r game.Result) CompleteData {
	return CompleteData{
		ElapsedSeconds: r.ElapsedSeconds,
		Display:        game.FormatElapsed(r.ElapsedSeconds),
		Moves:          r.Moves,
		PairsTotal:     r.PairsTotal,
		Rating:         r.Rating,
		Stars:          r.Rating.Stars(),
	}
}

// DifficultyInfoFromGame converts a difficulty into its wire form
func DifficultyInfoFromGame(d game.Difficulty) DifficultyInfo {
	return DifficultyInfo{Name: d.Name, Pairs: d.Pairs, Columns: d.Columns}
}
