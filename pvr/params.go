// SPDX-License-Identifier: GPL-2.0-or-later

package pvr

import (
	"encoding/binary"
	"math"
)

// Cursor reads the little-endian 32-bit words of a TA parameter in
// order, the Go equivalent of reinterpreting a byte offset as one of
// the source's poly_param/vert_param union members.
type Cursor struct {
	data []byte
	off  int
}

// NewCursor starts reading at the head of a single TA command.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// U32 reads the next 32-bit word.
func (c *Cursor) U32() uint32 {
	v := binary.LittleEndian.Uint32(c.data[c.off:])
	c.off += 4
	return v
}

// F32 reads the next 32-bit word as an IEEE-754 float, i.e. a numeric
// float field (as opposed to a packed color or 16-bit UV pair, which
// are read with U32 and decoded by the color package).
func (c *Cursor) F32() float32 {
	return math.Float32frombits(c.U32())
}

// Skip advances past n bytes of reserved/padding fields.
func (c *Cursor) Skip(n int) {
	c.off += n
}

// PCW reads the command's Parameter Control Word; every TA command
// starts with one.
func (c *Cursor) PCW() PCW {
	return PCW(c.U32())
}
