package orch

import (
	"fmt"

	"github.com/dkeye/Collab/internal/core"
	"github.com/dkeye/Collab/internal/domain"
	"github.com/dkeye/Collab/internal/protocol"
	"github.com/rs/zerolog/log"
)

// CreateRoom moves sid out of its current room into a fresh room it hosts.
func (o *Orchestrator) CreateRoom(sid core.SessionID, username string) (*core.Room, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	conn, ok := o.Registry.Conn(sid)
	if !ok {
		return nil, ErrUnknownSession
	}
	o.departLocked(sid)

	host := core.Member{
		SID:  sid,
		Info: domain.NewParticipant(username, domain.DefaultHostName, o.Palette.Next()),
		Conn: conn,
	}

	attempts := max(o.Limits.RoomIDAttempts, 1)
	var (
		room *core.Room
		err  error
	)
	for range attempts {
		if room, err = o.Rooms.Create(o.newRoomID(), o.now(), host); err == nil {
			break
		}
	}
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Str("sid", string(sid)).Int("attempts", attempts).Msg("allocate room id")
		return nil, err
	}
	o.Registry.UpdateRoom(sid, room.ID)

	o.send(conn, protocol.RoomEntered{
		Type:     protocol.TypeRoomCreated,
		RoomID:   room.ID,
		Username: host.Info.Username,
		Color:    host.Info.Color,
		Users:    room.Users(),
	})
	return room, nil
}

// JoinRoom moves sid into an existing room. Not-found and full rooms are
// reported to the sender as error frames.
func (o *Orchestrator) JoinRoom(sid core.SessionID, rawRoomID, username string) (domain.Participant, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	conn, ok := o.Registry.Conn(sid)
	if !ok {
		return domain.Participant{}, ErrUnknownSession
	}
	o.departLocked(sid)

	id := domain.NormalizeRoomID(rawRoomID)
	room, ok := o.Rooms.Get(id)
	if !ok {
		o.send(conn, protocol.Error{Type: protocol.TypeError, Message: fmt.Sprintf(`Room "%s" not found`, id)})
		return domain.Participant{}, ErrRoomNotFound
	}
	if room.MemberCount() >= o.Limits.MaxMembers {
		o.send(conn, protocol.Error{Type: protocol.TypeError, Message: fmt.Sprintf("Room is full (max %d)", o.Limits.MaxMembers)})
		return domain.Participant{}, ErrRoomFull
	}

	requested := domain.NewParticipant(username, domain.DefaultGuestName, "")
	info := domain.Participant{
		Username: room.UniqueUsername(requested.Username),
		Color:    o.Palette.Next(),
	}
	room.AddMember(core.Member{SID: sid, Info: info, Conn: conn})
	o.Registry.UpdateRoom(sid, id)

	users := room.Users()
	o.send(conn, protocol.RoomEntered{
		Type:     protocol.TypeRoomJoined,
		RoomID:   id,
		Username: info.Username,
		Color:    info.Color,
		Users:    users,
	})
	o.broadcast(room, sid, protocol.UserJoined{
		Type:     protocol.TypeUserJoined,
		Username: info.Username,
		Color:    info.Color,
		Users:    users,
	})
	if host, ok := room.Member(room.Host()); ok {
		o.send(host.Conn, protocol.RequestFullState{Type: protocol.TypeRequestFullState, TargetUser: info.Username})
	}

	log.Info().Str("module", "orch").Str("room_id", string(id)).Str("username", info.Username).Int("members", room.MemberCount()).Msg("joined")
	return info, nil
}

// Leave takes sid out of its room and acknowledges, even if it was in none.
func (o *Orchestrator) Leave(sid core.SessionID) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.departLocked(sid)
	if conn, ok := o.Registry.Conn(sid); ok {
		o.send(conn, protocol.Simple{Type: protocol.TypeLeftRoom})
	}
}

// Disconnect runs departure for a closed or failed connection and forgets it.
// Safe to call more than once.
func (o *Orchestrator) Disconnect(sid core.SessionID) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.departLocked(sid)
	o.Registry.Unbind(sid)
}

// departLocked removes sid from its room, notifies the rest, deletes an
// emptied room and hands the host role to the earliest-joined member.
func (o *Orchestrator) departLocked(sid core.SessionID) {
	id, ok := o.Registry.RoomOf(sid)
	if !ok {
		return
	}
	o.Registry.RemoveRoom(sid)

	room, ok := o.Rooms.Get(id)
	if !ok {
		return
	}
	left, ok := room.RemoveMember(sid)
	if !ok {
		return
	}
	log.Info().Str("module", "orch").Str("room_id", string(id)).Str("username", left.Info.Username).Msg("left")

	o.broadcast(room, "", protocol.UserLeft{
		Type:     protocol.TypeUserLeft,
		Username: left.Info.Username,
		Users:    room.Users(),
	})

	if room.MemberCount() == 0 {
		o.Rooms.Delete(id)
		return
	}
	if room.Host() != sid {
		return
	}
	next, ok := room.PromoteHost()
	if !ok {
		return
	}
	log.Info().Str("module", "orch").Str("room_id", string(id)).Str("username", next.Info.Username).Msg("new host")
	o.broadcast(room, "", protocol.NewHost{Type: protocol.TypeNewHost, Username: next.Info.Username})
}
