package orch

import (
	"context"
	"time"

	"github.com/dkeye/Collab/internal/core"
	"github.com/rs/zerolog/log"
)

// CheckLiveness evicts sessions that missed the previous probe and probes
// the rest. It returns the number of evicted sessions.
func (o *Orchestrator) CheckLiveness() int {
	stale, probe := o.Registry.Heartbeat()
	for _, sid := range stale {
		o.Evict(sid)
	}
	for sid, conn := range probe {
		if err := conn.Ping(); err != nil {
			log.Debug().Err(err).Str("module", "orch.liveness").Str("sid", string(sid)).Msg("probe failed")
		}
	}
	if len(stale) > 0 {
		log.Info().Str("module", "orch.liveness").Int("evicted", len(stale)).Int("probed", len(probe)).Msg("liveness sweep")
	}
	return len(stale)
}

// Evict runs departure for sid and force-closes its connection.
func (o *Orchestrator) Evict(sid core.SessionID) {
	o.mu.Lock()
	conn, ok := o.Registry.Conn(sid)
	o.departLocked(sid)
	o.Registry.Cancel(sid)
	o.Registry.Unbind(sid)
	o.mu.Unlock()

	if ok {
		conn.Close()
	}
	log.Info().Str("module", "orch.liveness").Str("sid", string(sid)).Msg("evicted unresponsive connection")
}

// ReapRooms deletes empty rooms and rooms older than Limits.RoomTTL,
// occupied or not. It returns the number of deleted rooms.
func (o *Orchestrator) ReapRooms() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	now := o.now()
	n := 0
	o.Rooms.ForEach(func(r *core.Room) {
		if r.MemberCount() > 0 && !r.Expired(now, o.Limits.RoomTTL) {
			return
		}
		for _, sid := range r.SessionIDs() {
			if id, ok := o.Registry.RoomOf(sid); ok && id == r.ID {
				o.Registry.RemoveRoom(sid)
			}
		}
		o.Rooms.Delete(r.ID)
		n++
	})
	if n > 0 {
		log.Info().Str("module", "orch.reaper").Int("reaped", n).Int("rooms", o.Rooms.Len()).Msg("reaper sweep")
	}
	return n
}

// RunLiveness runs CheckLiveness every period until ctx is done.
func (o *Orchestrator) RunLiveness(ctx context.Context, period time.Duration) error {
	return every(ctx, period, func() { o.CheckLiveness() })
}

// RunReaper runs ReapRooms every period until ctx is done.
func (o *Orchestrator) RunReaper(ctx context.Context, period time.Duration) error {
	return every(ctx, period, func() { o.ReapRooms() })
}

func every(ctx context.Context, period time.Duration, fn func()) error {
	t := time.NewTicker(period)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			fn()
		}
	}
}
