package core

import (
	"errors"
	"time"

	"github.com/dkeye/Collab/internal/domain"
	"github.com/rs/zerolog/log"
)

var ErrRoomExists = errors.New("room already exists")

// RoomRegistry maps room ids to live rooms.
// Like Room, it relies on the orchestrator for serialization.
type RoomRegistry struct {
	rooms map[domain.RoomID]*Room
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{rooms: make(map[domain.RoomID]*Room)}
}

func (rr *RoomRegistry) Create(id domain.RoomID, createdAt time.Time, host Member) (*Room, error) {
	if _, ok := rr.rooms[id]; ok {
		return nil, ErrRoomExists
	}
	room := NewRoom(id, createdAt, host)
	rr.rooms[id] = room
	log.Info().Str("module", "core.rooms").Str("room_id", string(id)).Str("host", host.Info.Username).Msg("room created")
	return room, nil
}

func (rr *RoomRegistry) Get(id domain.RoomID) (*Room, bool) {
	room, ok := rr.rooms[id]
	return room, ok
}

func (rr *RoomRegistry) Delete(id domain.RoomID) {
	if _, ok := rr.rooms[id]; !ok {
		return
	}
	delete(rr.rooms, id)
	log.Info().Str("module", "core.rooms").Str("room_id", string(id)).Msg("room deleted")
}

func (rr *RoomRegistry) Len() int { return len(rr.rooms) }

// ForEach visits every room. fn may delete the visited room.
func (rr *RoomRegistry) ForEach(fn func(*Room)) {
	for _, room := range rr.rooms {
		fn(room)
	}
}
