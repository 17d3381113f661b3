package orch

import (
	"errors"
	"sync"
	"time"

	"github.com/dkeye/Collab/internal/app"
	"github.com/dkeye/Collab/internal/core"
	"github.com/dkeye/Collab/internal/domain"
	"github.com/dkeye/Collab/internal/protocol"
	"github.com/rs/zerolog/log"
)

var (
	ErrUnknownSession = errors.New("unknown session")
	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomFull       = errors.New("room is full")
)

type Limits struct {
	MaxMembers     int
	RoomTTL        time.Duration
	RoomIDAttempts int
}

func DefaultLimits() Limits {
	return Limits{
		MaxMembers:     10,
		RoomTTL:        24 * time.Hour,
		RoomIDAttempts: 5,
	}
}

// Orchestrator owns all room state. Every mutation of Rooms happens under mu,
// which gives handlers from different connections the same one-at-a-time
// ordering a single event loop would.
type Orchestrator struct {
	Registry *app.Registry
	Rooms    *core.RoomRegistry
	Policy   app.Policy
	Palette  *domain.Palette
	Limits   Limits

	// Now and NewRoomID are replaceable in tests.
	Now       func() time.Time
	NewRoomID func() domain.RoomID

	mu sync.Mutex
}

func (o *Orchestrator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o *Orchestrator) newRoomID() domain.RoomID {
	if o.NewRoomID != nil {
		return o.NewRoomID()
	}
	return domain.NewRoomID()
}

func (o *Orchestrator) RoomCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.Rooms.Len()
}

func (o *Orchestrator) ConnectionCount() int {
	return o.Registry.Count()
}

// send is fire-and-forget: a failed enqueue is dropped on purpose.
func (o *Orchestrator) send(conn core.SignalConnection, v any) {
	f, err := protocol.Encode(v)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("encode frame")
		return
	}
	if err := conn.TrySend(f); err != nil {
		log.Debug().Err(err).Str("module", "orch").Msg("send dropped")
	}
}

func (o *Orchestrator) broadcast(room *core.Room, from core.SessionID, v any) {
	f, err := protocol.Encode(v)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("encode frame")
		return
	}
	res := room.Broadcast(from, f)
	if o.Policy == nil {
		return
	}
	for _, sid := range res.Dropped {
		switch o.Policy.OnBackPressure(room, sid) {
		case app.KickMember:
			log.Warn().Str("module", "orch").Str("room_id", string(room.ID)).Str("sid", string(sid)).Msg("kicking slow member")
			// The pumps observe the close and come back through Disconnect.
			o.Registry.Cancel(sid)
			if m, ok := room.Member(sid); ok {
				m.Conn.Close()
			}
		case app.NoAction:
		}
	}
}
