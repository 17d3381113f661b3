package app

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/dkeye/Collab/internal/core"
	"github.com/dkeye/Collab/internal/domain"
	"github.com/rs/zerolog/log"
)

type sessionEntry struct {
	RoomID domain.RoomID
	Conn   core.SignalConnection
	Cancel context.CancelFunc
	alive  atomic.Bool
}

// Registry holds one record per open connection: its transport, the room it
// is in and its liveness flag.
type Registry struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*sessionEntry
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[core.SessionID]*sessionEntry),
	}
}

func (r *Registry) Bind(sid core.SessionID, conn core.SignalConnection, cancel context.CancelFunc) {
	e := &sessionEntry{Conn: conn, Cancel: cancel}
	e.alive.Store(true)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sid] = e
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Int("connections", len(r.sessions)).Msg("bound session")
}

func (r *Registry) Unbind(sid core.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[sid]; !ok {
		return
	}
	delete(r.sessions, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Int("connections", len(r.sessions)).Msg("unbind session")
}

func (r *Registry) Conn(sid core.SessionID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.sessions[sid]; ok {
		return e.Conn, true
	}
	return nil, false
}

func (r *Registry) RoomOf(sid core.SessionID) (domain.RoomID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[sid]
	if !ok || e.RoomID == "" {
		return "", false
	}
	return e.RoomID, true
}

func (r *Registry) UpdateRoom(sid core.SessionID, id domain.RoomID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[sid]
	if !ok {
		return false
	}
	e.RoomID = id
	log.Debug().Str("module", "app.registry").Str("sid", string(sid)).Str("room_id", string(id)).Msg("updated room")
	return true
}

func (r *Registry) RemoveRoom(sid core.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.sessions[sid]; ok {
		e.RoomID = ""
	}
}

// MarkAlive records a pong.
func (r *Registry) MarkAlive(sid core.SessionID) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.sessions[sid]; ok {
		e.alive.Store(true)
	}
}

// Heartbeat runs one liveness round. Sessions that did not answer the
// previous probe are returned as stale; every other session has its flag
// cleared and is returned for probing.
func (r *Registry) Heartbeat() (stale []core.SessionID, probe map[core.SessionID]core.SignalConnection) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	probe = make(map[core.SessionID]core.SignalConnection, len(r.sessions))
	for sid, e := range r.sessions {
		if !e.alive.Swap(false) {
			stale = append(stale, sid)
			continue
		}
		probe[sid] = e.Conn
	}
	return stale, probe
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) Cancel(sid core.SessionID) bool {
	r.mu.RLock()
	e, ok := r.sessions[sid]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("canceled session")
	return true
}
