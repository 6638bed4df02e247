package vga

// Cell is one display position: a character code and its attribute.
type Cell struct {
	Char byte
	Attr Attribute
}

// Blank returns a space cell in the given attribute.
func Blank(attr Attribute) Cell {
	return Cell{Char: ' ', Attr: attr}
}

// Pack returns the 16-bit wire form of the cell: the character code in the
// low byte, foreground in bits 8-11 and background in bits 12-15.
func (c Cell) Pack() uint16 {
	return uint16(c.Char) | uint16(c.Attr.Byte())<<8
}

// UnpackCell decodes a 16-bit wire word.
func UnpackCell(v uint16) Cell {
	return Cell{
		Char: byte(v),
		Attr: AttributeFromByte(uint8(v >> 8)),
	}
}
