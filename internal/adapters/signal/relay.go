package signal

import (
	"github.com/dkeye/Collab/internal/core"
	"github.com/dkeye/Collab/internal/protocol"
)

// Relayed messages to a room that no longer exists are ignored silently.

func (ctl *SignalWSController) handleFullState(sid core.SessionID, data []byte) {
	var p protocol.FullStateRequest
	if decode(sid, data, &p) {
		ctl.Orch.RelayFullState(p.RoomID, p.TargetUser, p.ProjectData)
	}
}

func (ctl *SignalWSController) handleModelAction(sid core.SessionID, data []byte) {
	var p protocol.ModelActionRequest
	if decode(sid, data, &p) {
		ctl.Orch.RelayModelAction(sid, p)
	}
}

func (ctl *SignalWSController) handleTextureUpdate(sid core.SessionID, data []byte) {
	var p protocol.TextureUpdateRequest
	if decode(sid, data, &p) {
		ctl.Orch.RelayTextureUpdate(sid, p)
	}
}

func (ctl *SignalWSController) handleChatMessage(sid core.SessionID, data []byte) {
	var p protocol.ChatMessageRequest
	if decode(sid, data, &p) {
		ctl.Orch.Chat(p)
	}
}

func (ctl *SignalWSController) handleCursorUpdate(sid core.SessionID, data []byte) {
	var p protocol.CursorUpdateRequest
	if decode(sid, data, &p) {
		ctl.Orch.RelayCursorUpdate(sid, p)
	}
}
