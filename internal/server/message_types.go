package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
// These are used for client-server communication protocol
const (
	// Client to server messages
	MessageTypeStart      MessageType = "start"
	MessageTypeFlip       MessageType = "flip"
	MessageTypeReset      MessageType = "reset"
	MessageTypeDifficulty MessageType = "difficulty"
	MessageTypeGetState   MessageType = "get_state"

	// Server to client messages
	MessageTypeWelcome         MessageType = "welcome"
	MessageTypeLayout          MessageType = "layout"
	MessageTypeReveal          MessageType = "reveal"
	MessageTypeHide            MessageType = "hide"
	MessageTypeMatched         MessageType = "matched"
	MessageTypeMoves           MessageType = "moves"
	MessageTypeTime            MessageType = "time"
	MessageTypePairs           MessageType = "pairs"
	MessageTypeMismatch        MessageType = "mismatch"
	MessageTypeComplete        MessageType = "complete"
	MessageTypeFlipResult      MessageType = "flip_result"
	MessageTypeConfirmRequired MessageType = "confirm_required"
	MessageTypeState           MessageType = "state"
	MessageTypeError           MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
