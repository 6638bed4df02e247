package vga

import (
	"fmt"
	"strings"
)

// Color is one of the 16 hardware text-mode colours, in VGA register order.
type Color uint8

const (
	Black Color = iota
	Blue
	Green
	Cyan
	Red
	Magenta
	Brown
	LightGrey
	DarkGrey
	LightBlue
	LightGreen
	LightCyan
	LightRed
	LightMagenta
	LightBrown
	White
)

// NumColors is the size of the colour enumeration.
const NumColors = 16

var colorNames = [NumColors]string{
	"black",
	"blue",
	"green",
	"cyan",
	"red",
	"magenta",
	"brown",
	"light_grey",
	"dark_grey",
	"light_blue",
	"light_green",
	"light_cyan",
	"light_red",
	"light_magenta",
	"light_brown",
	"white",
}

// Alternate spellings accepted by ParseColor
var colorAliases = map[string]Color{
	"light_gray": LightGrey,
	"dark_gray":  DarkGrey,
	"grey":       LightGrey,
	"gray":       LightGrey,
	"yellow":     LightBrown,
}

func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("color(%d)", uint8(c))
	}
	return colorNames[c]
}

// Valid reports whether c fits in the 4-bit colour field.
func (c Color) Valid() bool {
	return c < NumColors
}

// ParseColor converts a colour name such as "light_grey" or "Light Grey" into
// a Color.
func ParseColor(name string) (Color, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)

	for i, n := range colorNames {
		if n == key {
			return Color(i), nil
		}
	}
	if c, ok := colorAliases[key]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("%w: unknown colour %q", ErrInvalidColor, name)
}

// Attribute is a foreground/background colour pair.
type Attribute struct {
	FG Color
	BG Color
}

// DefaultAttribute is light grey on black, the attribute set by Initialize.
var DefaultAttribute = Attribute{FG: LightGrey, BG: Black}

// MakeAttribute returns the attribute for fg on bg.
func MakeAttribute(fg, bg Color) Attribute {
	return Attribute{FG: fg, BG: bg}
}

// Byte packs the attribute into its hardware form: foreground in the low
// nibble, background in the high nibble.
func (a Attribute) Byte() uint8 {
	return uint8(a.FG&0x0F) | uint8(a.BG&0x0F)<<4
}

// AttributeFromByte unpacks a hardware attribute byte.
func AttributeFromByte(b uint8) Attribute {
	return Attribute{FG: Color(b & 0x0F), BG: Color(b >> 4)}
}

func (a Attribute) String() string {
	return a.FG.String() + "/" + a.BG.String()
}
