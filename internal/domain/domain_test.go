package domain

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoomID(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := string(NewRoomID())
		require.Len(t, id, RoomIDLen)
		assert.Equal(t, strings.ToUpper(id), id)
		for _, c := range id {
			assert.True(t, (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z'), "unexpected char %q in %s", c, id)
		}
	}
}

func TestNormalizeRoomID(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want RoomID
	}{
		{name: "already normal", raw: "AB12CD", want: "AB12CD"},
		{name: "lower case", raw: "ab12cd", want: "AB12CD"},
		{name: "surrounding space", raw: "  ab12cd\n", want: "AB12CD"},
		{name: "empty", raw: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeRoomID(tt.raw))
		})
	}
}

func TestNewParticipant(t *testing.T) {
	tests := []struct {
		name     string
		username string
		def      string
		want     string
	}{
		{name: "given name", username: "Alice", def: DefaultGuestName, want: "Alice"},
		{name: "empty falls back", username: "", def: DefaultHostName, want: "Host"},
		{name: "truncated", username: strings.Repeat("x", 25), def: DefaultGuestName, want: strings.Repeat("x", MaxUsernameLen)},
		{name: "multibyte truncated by rune", username: strings.Repeat("я", 21), def: DefaultGuestName, want: strings.Repeat("я", MaxUsernameLen)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParticipant(tt.username, tt.def, "#FFFFFF")
			assert.Equal(t, tt.want, p.Username)
			assert.Equal(t, "#FFFFFF", p.Color)
		})
	}
}

func TestPalette_RoundRobin(t *testing.T) {
	p := NewPalette("a", "b", "c")
	got := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		got = append(got, p.Next())
	}
	assert.Equal(t, []string{"a", "b", "c", "a", "b", "c", "a"}, got)
}

func TestPalette_DefaultColors(t *testing.T) {
	p := NewPalette()
	assert.Equal(t, DefaultColors[0], p.Next())
	assert.Equal(t, DefaultColors[1], p.Next())
}

func TestPalette_Concurrent(t *testing.T) {
	p := NewPalette("a", "b")
	var wg sync.WaitGroup
	var mu sync.Mutex
	counts := map[string]int{}
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := p.Next()
			mu.Lock()
			counts[c]++
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counts["a"])
	assert.Equal(t, 50, counts["b"])
}
