// Package domain contains entity without logic, just meta-data
package domain

import "unicode/utf8"

const (
	MaxUsernameLen = 20
	MaxChatLen     = 500

	DefaultHostName  = "Host"
	DefaultGuestName = "Guest"
)

// Participant is a room member's display identity.
type Participant struct {
	Username string `json:"username"`
	Color    string `json:"color"`
}

// NewParticipant falls back to def for an empty name and truncates to MaxUsernameLen.
func NewParticipant(username, def, color string) Participant {
	if username == "" {
		username = def
	}
	return Participant{Username: Truncate(username, MaxUsernameLen), Color: color}
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
