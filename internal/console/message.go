package console

import "time"

// Severity levels for console messages.
const (
	LevelInfo  = "info"
	LevelError = "error"
)

// Message is one line in the IDE console. The sequence is append-only and
// insertion-ordered; capping what is displayed is the view's concern.
type Message struct {
	ID    string    `json:"id"`
	Level string    `json:"level"`
	Text  string    `json:"text"`
	At    time.Time `json:"at"`
}
