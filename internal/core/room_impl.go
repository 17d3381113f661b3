package core

import (
	"strconv"
	"time"

	"github.com/dkeye/Collab/internal/domain"
	"github.com/rs/zerolog/log"
)

// Member pairs a connection with its participant info inside a room.
type Member struct {
	SID  SessionID
	Info domain.Participant
	Conn SignalConnection
}

// Room is one collaborative session.
// It is not safe for concurrent use; the orchestrator serializes access.
// It never closes adapter-owned resources.
type Room struct {
	ID        domain.RoomID
	CreatedAt time.Time

	host    SessionID
	order   []SessionID
	members map[SessionID]*Member
}

func NewRoom(id domain.RoomID, createdAt time.Time, host Member) *Room {
	r := &Room{
		ID:        id,
		CreatedAt: createdAt,
		members:   make(map[SessionID]*Member),
	}
	r.AddMember(host)
	r.host = host.SID
	return r
}

func (r *Room) Host() SessionID { return r.host }

func (r *Room) MemberCount() int { return len(r.members) }

func (r *Room) Member(sid SessionID) (*Member, bool) {
	m, ok := r.members[sid]
	return m, ok
}

func (r *Room) AddMember(m Member) {
	if _, ok := r.members[m.SID]; !ok {
		r.order = append(r.order, m.SID)
	}
	r.members[m.SID] = &m
	log.Debug().Str("module", "core.room").Str("room_id", string(r.ID)).Str("sid", string(m.SID)).Str("username", m.Info.Username).Msg("member added")
}

func (r *Room) RemoveMember(sid SessionID) (Member, bool) {
	m, ok := r.members[sid]
	if !ok {
		return Member{}, false
	}
	delete(r.members, sid)
	for i, s := range r.order {
		if s == sid {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	log.Debug().Str("module", "core.room").Str("room_id", string(r.ID)).Str("sid", string(sid)).Msg("member removed")
	return *m, true
}

// PromoteHost makes the earliest-joined remaining member the host.
func (r *Room) PromoteHost() (Member, bool) {
	if len(r.order) == 0 {
		return Member{}, false
	}
	r.host = r.order[0]
	return *r.members[r.host], true
}

// Users lists participants in join order.
func (r *Room) Users() []domain.Participant {
	out := make([]domain.Participant, 0, len(r.order))
	for _, sid := range r.order {
		out = append(out, r.members[sid].Info)
	}
	return out
}

func (r *Room) SessionIDs() []SessionID {
	return append([]SessionID(nil), r.order...)
}

func (r *Room) FindByUsername(username string) (*Member, bool) {
	for _, sid := range r.order {
		if m := r.members[sid]; m.Info.Username == username {
			return m, true
		}
	}
	return nil, false
}

// UniqueUsername suffixes base with _1, _2, ... until no member holds it.
func (r *Room) UniqueUsername(base string) string {
	name := base
	for n := 1; ; n++ {
		if _, taken := r.FindByUsername(name); !taken {
			return name
		}
		name = base + "_" + strconv.Itoa(n)
	}
}

// Broadcast sends data to every member except from. An empty from reaches everyone.
// Failed sends are recorded and skipped.
func (r *Room) Broadcast(from SessionID, data Frame) PublishResult {
	res := PublishResult{}
	for _, sid := range r.order {
		if sid == from {
			continue
		}
		if err := r.members[sid].Conn.TrySend(data); err != nil {
			res.Dropped = append(res.Dropped, sid)
			continue
		}
		res.SendTo++
	}
	log.Debug().Str("module", "core.room").Str("room_id", string(r.ID)).Str("from", string(from)).Int("sent_to", res.SendTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	return res
}

func (r *Room) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(r.CreatedAt) > ttl
}
