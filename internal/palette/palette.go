// Package palette provides the colour palette model and the adapter for the
// external palette-extraction tool.
package palette

import (
	"fmt"
	"strconv"
	"strings"
)

// Size is the number of colour slots in a palette. Slot meanings are fixed:
// slot 0 is the primary background, slot 1 the primary foreground, slots 2-7
// the accent ramp, and slots 8-15 the bright variants. Only the colour values
// vary between palettes, never the slot semantics.
const Size = 16

// Well-known slot indices.
const (
	SlotBackground = 0
	SlotForeground = 1
	SlotAccentLow  = 2
	SlotAccentHigh = 7
)

// RGB represents a 24-bit colour.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex returns the colour as a hex string (e.g., "#1a2b3c").
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Decimal returns the colour as a comma-separated decimal triplet
// (e.g., "26,43,60"), the form used by key-value desktop settings files.
func (c RGB) Decimal() string {
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}

// String returns the colour in rgb(r, g, b) form.
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// ParseHex parses a "#rrggbb" or "rrggbb" string into an RGB colour.
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("invalid hex colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}

// Palette is an ordered sequence of 16 colours with fixed slot semantics.
type Palette struct {
	Colors [Size]RGB
}

// New builds a Palette from exactly 16 colours.
func New(colors []RGB) (*Palette, error) {
	if len(colors) != Size {
		return nil, fmt.Errorf("palette requires %d colours, got %d", Size, len(colors))
	}
	p := &Palette{}
	copy(p.Colors[:], colors)
	return p, nil
}

// Background returns the primary background colour (slot 0).
func (p *Palette) Background() RGB {
	return p.Colors[SlotBackground]
}

// Foreground returns the primary foreground colour (slot 1).
func (p *Palette) Foreground() RGB {
	return p.Colors[SlotForeground]
}

// Slot returns the colour at the given index.
func (p *Palette) Slot(i int) (RGB, error) {
	if i < 0 || i >= Size {
		return RGB{}, fmt.Errorf("palette slot %d out of range [0,%d)", i, Size)
	}
	return p.Colors[i], nil
}

// ToHex returns all slots as hex strings in slot order.
func (p *Palette) ToHex() []string {
	hex := make([]string, Size)
	for i, c := range p.Colors {
		hex[i] = c.Hex()
	}
	return hex
}
