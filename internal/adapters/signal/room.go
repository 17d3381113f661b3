package signal

import (
	"github.com/dkeye/Collab/internal/core"
	"github.com/dkeye/Collab/internal/protocol"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) allowJoin(sid core.SessionID, conn *WsSignalConn) bool {
	if ctl.Limiter.Allow(sid) {
		return true
	}
	log.Warn().Str("module", "signal").Str("sid", string(sid)).Msg("join rate limited")
	ctl.sendJSON(conn, protocol.Error{Type: protocol.TypeError, Message: "Too many requests"})
	return false
}

func (ctl *SignalWSController) handleCreateRoom(
	sid core.SessionID,
	conn *WsSignalConn,
	data []byte,
) {
	var p protocol.CreateRoomRequest
	if !decode(sid, data, &p) || !ctl.allowJoin(sid, conn) {
		return
	}
	if _, err := ctl.Orch.CreateRoom(sid, p.Username); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("create room")
	}
}

func (ctl *SignalWSController) handleJoinRoom(
	sid core.SessionID,
	conn *WsSignalConn,
	data []byte,
) {
	var p protocol.JoinRoomRequest
	if !decode(sid, data, &p) || !ctl.allowJoin(sid, conn) {
		return
	}
	// Not-found and full rooms were already reported to the client.
	if _, err := ctl.Orch.JoinRoom(sid, p.RoomID, p.Username); err != nil {
		log.Info().Err(err).Str("module", "signal").Str("sid", string(sid)).Str("room_id", p.RoomID).Msg("join refused")
	}
}

// handleLeave leaves the current room; the connection stays open.
func (ctl *SignalWSController) handleLeave(sid core.SessionID) {
	log.Debug().Str("module", "signal").Str("sid", string(sid)).Msg("leave")
	ctl.Orch.Leave(sid)
}
