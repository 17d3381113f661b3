package orch

import (
	"encoding/json"

	"github.com/dkeye/Collab/internal/core"
	"github.com/dkeye/Collab/internal/domain"
	"github.com/dkeye/Collab/internal/protocol"
)

// relay fans v out to the room named by rawRoomID, skipping from unless it is
// empty. A missing room is ignored and reported as false.
func (o *Orchestrator) relay(rawRoomID string, from core.SessionID, v any) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	room, ok := o.Rooms.Get(domain.NormalizeRoomID(rawRoomID))
	if !ok {
		return false
	}
	o.broadcast(room, from, v)
	return true
}

// RelayFullState delivers a host snapshot to the single member named targetUser.
func (o *Orchestrator) RelayFullState(rawRoomID, targetUser string, projectData json.RawMessage) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	room, ok := o.Rooms.Get(domain.NormalizeRoomID(rawRoomID))
	if !ok {
		return false
	}
	target, ok := room.FindByUsername(targetUser)
	if !ok {
		return false
	}
	o.send(target.Conn, protocol.FullState{Type: protocol.TypeFullState, ProjectData: projectData})
	return true
}

func (o *Orchestrator) RelayModelAction(sid core.SessionID, req protocol.ModelActionRequest) bool {
	return o.relay(req.RoomID, sid, protocol.ModelAction{
		Type:     protocol.TypeModelAction,
		Action:   req.Action,
		Username: req.Username,
		Data:     req.Data,
	})
}

func (o *Orchestrator) RelayTextureUpdate(sid core.SessionID, req protocol.TextureUpdateRequest) bool {
	return o.relay(req.RoomID, sid, protocol.TextureUpdate{
		Type:        protocol.TypeTextureUpdate,
		Username:    req.Username,
		TextureUUID: req.TextureUUID,
		DataURL:     req.DataURL,
	})
}

func (o *Orchestrator) RelayCursorUpdate(sid core.SessionID, req protocol.CursorUpdateRequest) bool {
	return o.relay(req.RoomID, sid, protocol.CursorUpdate{
		Type:            protocol.TypeCursorUpdate,
		Username:        req.Username,
		Color:           req.Color,
		SelectedElement: req.SelectedElement,
	})
}

// Chat goes to every member, the sender included.
func (o *Orchestrator) Chat(req protocol.ChatMessageRequest) bool {
	return o.relay(req.RoomID, "", protocol.ChatMessage{
		Type:      protocol.TypeChatMessage,
		Username:  req.Username,
		Message:   domain.Truncate(req.Message, domain.MaxChatLen),
		Timestamp: o.now().UnixMilli(),
	})
}
