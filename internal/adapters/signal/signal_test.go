package signal

import (
	"testing"
	"time"

	"github.com/dkeye/Collab/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestRoomRateLimiter(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	rl := NewRoomRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("s1"))
	assert.True(t, rl.Allow("s1"))
	assert.False(t, rl.Allow("s1"))
	assert.True(t, rl.Allow("s2"), "limits are per session")

	now = now.Add(time.Minute + time.Second)
	assert.True(t, rl.Allow("s1"), "window slid past old attempts")

	rl.Forget("s1")
	assert.True(t, rl.Allow("s1"))
	assert.True(t, rl.Allow("s1"))
}

func TestRoomRateLimiter_Disabled(t *testing.T) {
	var nilLimiter *RoomRateLimiter
	assert.True(t, nilLimiter.Allow("s1"))
	nilLimiter.Forget("s1")

	rl := NewRoomRateLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		assert.True(t, rl.Allow("s1"))
	}
}

func TestWsSignalConn_TrySend(t *testing.T) {
	c := &WsSignalConn{send: make(chan core.Frame, 1)}

	assert.NoError(t, c.TrySend(core.Frame("a")))
	assert.ErrorIs(t, c.TrySend(core.Frame("b")), ErrBackpressure)

	c.closed = true
	assert.ErrorIs(t, c.TrySend(core.Frame("c")), ErrConnClosed)
	assert.ErrorIs(t, c.Ping(), ErrConnClosed)
}
