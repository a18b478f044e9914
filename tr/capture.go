// SPDX-License-Identifier: GPL-2.0-or-later

package tr

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"dctr/pvr"
)

// captureMagic identifies a captured TA context file for cmd/tatrace.
// File I/O and packetization are out of this module's concern (base
// spec §1); this is a minimal serialization of TAContext good enough
// to round-trip a capture between a producer and this translator.
const captureMagic = 0x54415452 // "TATR"

// LoadCapture reads a captured TAContext previously written by
// WriteCapture. Truncated or malformed input returns a wrapped error
// rather than panicking — unlike a fatal parse-time invariant inside
// Convert, a bad capture file is a caller mistake, not a programming
// bug.
func LoadCapture(r io.Reader) (*TAContext, error) {
	var magic, version uint32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return nil, errors.Wrap(err, "read capture magic")
	}
	if magic != captureMagic {
		return nil, errors.Errorf("not a capture file (magic %#x)", magic)
	}
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, errors.Wrap(err, "read capture version")
	}
	if version != 1 {
		return nil, errors.Errorf("unsupported capture version %d", version)
	}

	ctx := &TAContext{}

	var header struct {
		BGISP, BGTSP, BGTCW                       uint32
		PaletteFmt, Stride                        int32
		AlphaRef                                  uint8
		Autosort                                  uint8
		_, _                                      uint8 // padding to a 4-byte boundary
		VideoWidth, VideoHeight                   int32
		ParamsLen, BGVerticesLen                  uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, errors.Wrap(err, "read capture header")
	}

	ctx.BGISP = pvr.ISP(header.BGISP)
	ctx.BGTSP = pvr.TSP(header.BGTSP)
	ctx.BGTCW = pvr.TCW(header.BGTCW)
	ctx.PaletteFmt = int(header.PaletteFmt)
	ctx.Stride = int(header.Stride)
	ctx.AlphaRef = header.AlphaRef
	ctx.Autosort = header.Autosort != 0
	ctx.VideoWidth = int(header.VideoWidth)
	ctx.VideoHeight = int(header.VideoHeight)

	ctx.Params = make([]byte, header.ParamsLen)
	if _, err := io.ReadFull(r, ctx.Params); err != nil {
		return nil, errors.Wrap(err, "read capture params")
	}

	ctx.BGVertices = make([]byte, header.BGVerticesLen)
	if _, err := io.ReadFull(r, ctx.BGVertices); err != nil {
		return nil, errors.Wrap(err, "read capture background vertices")
	}

	return ctx, nil
}

// WriteCapture serializes ctx in LoadCapture's format.
func WriteCapture(w io.Writer, ctx *TAContext) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(captureMagic)); err != nil {
		return errors.Wrap(err, "write capture magic")
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(1)); err != nil {
		return errors.Wrap(err, "write capture version")
	}

	autosort := uint8(0)
	if ctx.Autosort {
		autosort = 1
	}
	header := struct {
		BGISP, BGTSP, BGTCW      uint32
		PaletteFmt, Stride       int32
		AlphaRef                 uint8
		Autosort                 uint8
		_, _                     uint8
		VideoWidth, VideoHeight  int32
		ParamsLen, BGVerticesLen uint32
	}{
		BGISP:         uint32(ctx.BGISP),
		BGTSP:         uint32(ctx.BGTSP),
		BGTCW:         uint32(ctx.BGTCW),
		PaletteFmt:    int32(ctx.PaletteFmt),
		Stride:        int32(ctx.Stride),
		AlphaRef:      ctx.AlphaRef,
		Autosort:      autosort,
		VideoWidth:    int32(ctx.VideoWidth),
		VideoHeight:   int32(ctx.VideoHeight),
		ParamsLen:     uint32(len(ctx.Params)),
		BGVerticesLen: uint32(len(ctx.BGVertices)),
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return errors.Wrap(err, "write capture header")
	}

	if _, err := w.Write(ctx.Params); err != nil {
		return errors.Wrap(err, "write capture params")
	}
	if _, err := w.Write(ctx.BGVertices); err != nil {
		return errors.Wrap(err, "write capture background vertices")
	}
	return nil
}
