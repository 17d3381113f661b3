package domain

import "sync/atomic"

var DefaultColors = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4",
	"#FFEAA7", "#DDA0DD", "#98D8C8", "#F7DC6F",
	"#BB8FCE", "#85C1E9", "#F8C471", "#82E0AA",
	"#F0B27A", "#AED6F1", "#A3E4D7", "#FAD7A0",
}

// Palette hands out colors round-robin. The cursor is shared by all rooms.
type Palette struct {
	colors []string
	next   atomic.Uint64
}

func NewPalette(colors ...string) *Palette {
	if len(colors) == 0 {
		colors = DefaultColors
	}
	return &Palette{colors: colors}
}

func (p *Palette) Next() string {
	i := p.next.Add(1) - 1
	return p.colors[i%uint64(len(p.colors))]
}
