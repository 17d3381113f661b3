package domain

import (
	"strings"

	"github.com/google/uuid"
)

const RoomIDLen = 6

type RoomID string

// NewRoomID returns a short human-typeable id: the head of a v4 uuid, upper-cased.
func NewRoomID() RoomID {
	return RoomID(strings.ToUpper(uuid.NewString()[:RoomIDLen]))
}

// NormalizeRoomID applies the lookup form used for every room-scoped message.
func NormalizeRoomID(raw string) RoomID {
	return RoomID(strings.ToUpper(strings.TrimSpace(raw)))
}
