package app

import (
	"fmt"

	"github.com/dkeye/Collab/internal/core"
)

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	KickMember
)

// Policy decides what happens to a member whose outbound buffer overflowed
// during fan-out.
type Policy interface {
	OnBackPressure(room *core.Room, sid core.SessionID) BackpressureAction
}

// DropPolicy loses the frame and keeps the member.
type DropPolicy struct{}

func (DropPolicy) OnBackPressure(*core.Room, core.SessionID) BackpressureAction { return NoAction }

// KickPolicy disconnects the slow member.
type KickPolicy struct{}

func (KickPolicy) OnBackPressure(*core.Room, core.SessionID) BackpressureAction { return KickMember }

// PolicyByName maps the config value to a Policy.
func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", "drop":
		return DropPolicy{}, nil
	case "kick":
		return KickPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown backpressure policy %q", name)
	}
}
