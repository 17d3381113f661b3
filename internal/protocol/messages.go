// Package protocol defines the JSON frames exchanged with clients.
// Field names are fixed by the client application.
package protocol

import (
	"encoding/json"

	"github.com/dkeye/Collab/internal/core"
	"github.com/dkeye/Collab/internal/domain"
)

// Inbound message types.
const (
	TypeCreateRoom    = "create_room"
	TypeJoinRoom      = "join_room"
	TypeFullState     = "full_state"
	TypeModelAction   = "model_action"
	TypeTextureUpdate = "texture_update"
	TypeChatMessage   = "chat_message"
	TypeCursorUpdate  = "cursor_update"
	TypeLeaveRoom     = "leave_room"
	TypePing          = "ping"
)

// Outbound-only message types.
const (
	TypeRoomCreated      = "room_created"
	TypeRoomJoined       = "room_joined"
	TypeUserJoined       = "user_joined"
	TypeUserLeft         = "user_left"
	TypeRequestFullState = "request_full_state"
	TypeNewHost          = "new_host"
	TypeLeftRoom         = "left_room"
	TypePong             = "pong"
	TypeError            = "error"
)

type Envelope struct {
	Type string `json:"type"`
}

// RoomScoped is embedded by every inbound message addressed to a room.
type RoomScoped struct {
	RoomID string `json:"roomId"`
}

type CreateRoomRequest struct {
	Username string `json:"username"`
}

type JoinRoomRequest struct {
	RoomScoped
	Username string `json:"username"`
}

type FullStateRequest struct {
	RoomScoped
	TargetUser  string          `json:"targetUser"`
	ProjectData json.RawMessage `json:"projectData,omitempty"`
}

// Relay payloads are forwarded verbatim, so they stay raw.

type ModelActionRequest struct {
	RoomScoped
	Action   json.RawMessage `json:"action,omitempty"`
	Username json.RawMessage `json:"username,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}

type TextureUpdateRequest struct {
	RoomScoped
	Username    json.RawMessage `json:"username,omitempty"`
	TextureUUID json.RawMessage `json:"textureUuid,omitempty"`
	DataURL     json.RawMessage `json:"dataUrl,omitempty"`
}

type ChatMessageRequest struct {
	RoomScoped
	Username json.RawMessage `json:"username,omitempty"`
	Message  string          `json:"message"`
}

type CursorUpdateRequest struct {
	RoomScoped
	Username        json.RawMessage `json:"username,omitempty"`
	Color           json.RawMessage `json:"color,omitempty"`
	SelectedElement json.RawMessage `json:"selectedElement,omitempty"`
}

// RoomEntered answers create_room and join_room.
type RoomEntered struct {
	Type     string               `json:"type"`
	RoomID   domain.RoomID        `json:"roomId"`
	Username string               `json:"username"`
	Color    string               `json:"color"`
	Users    []domain.Participant `json:"users"`
}

type UserJoined struct {
	Type     string               `json:"type"`
	Username string               `json:"username"`
	Color    string               `json:"color"`
	Users    []domain.Participant `json:"users"`
}

type UserLeft struct {
	Type     string               `json:"type"`
	Username string               `json:"username"`
	Users    []domain.Participant `json:"users"`
}

type RequestFullState struct {
	Type       string `json:"type"`
	TargetUser string `json:"targetUser"`
}

type FullState struct {
	Type        string          `json:"type"`
	ProjectData json.RawMessage `json:"projectData,omitempty"`
}

type NewHost struct {
	Type     string `json:"type"`
	Username string `json:"username"`
}

type ModelAction struct {
	Type     string          `json:"type"`
	Action   json.RawMessage `json:"action,omitempty"`
	Username json.RawMessage `json:"username,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}

type TextureUpdate struct {
	Type        string          `json:"type"`
	Username    json.RawMessage `json:"username,omitempty"`
	TextureUUID json.RawMessage `json:"textureUuid,omitempty"`
	DataURL     json.RawMessage `json:"dataUrl,omitempty"`
}

type ChatMessage struct {
	Type      string          `json:"type"`
	Username  json.RawMessage `json:"username,omitempty"`
	Message   string          `json:"message"`
	Timestamp int64           `json:"timestamp"`
}

type CursorUpdate struct {
	Type            string          `json:"type"`
	Username        json.RawMessage `json:"username,omitempty"`
	Color           json.RawMessage `json:"color,omitempty"`
	SelectedElement json.RawMessage `json:"selectedElement,omitempty"`
}

type Simple struct {
	Type string `json:"type"`
}

type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Encode marshals v into a frame.
func Encode(v any) (core.Frame, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return core.Frame(b), nil
}
