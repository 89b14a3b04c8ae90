// Package exiftest synthesizes minimal TIFF and JPEG streams carrying EXIF
// fields, so metadata tests need no checked-in binary fixtures.
package exiftest

import (
	"bytes"
	"encoding/binary"
)

// Field is a single ASCII entry for IFD0.
type Field struct {
	ID    uint16
	Value string
}

const asciiType = 2

// TIFF encodes fields into a little-endian TIFF stream with a single IFD.
// Fields must be supplied in ascending ID order.
func TIFF(fields []Field) []byte {
	buf := new(bytes.Buffer)

	buf.WriteString("II")
	writeLE(buf, uint16(0x2a))
	writeLE(buf, uint32(8)) // IFD0 directly after the header

	// Values longer than the 4 inline bytes land after the IFD.
	dataOffset := uint32(8 + 2 + 12*len(fields) + 4)
	data := new(bytes.Buffer)

	writeLE(buf, uint16(len(fields)))
	for _, f := range fields {
		raw := append([]byte(f.Value), 0)
		writeLE(buf, f.ID)
		writeLE(buf, uint16(asciiType))
		writeLE(buf, uint32(len(raw)))
		if len(raw) <= 4 {
			var inline [4]byte
			copy(inline[:], raw)
			buf.Write(inline[:])
			continue
		}
		writeLE(buf, dataOffset+uint32(data.Len()))
		data.Write(raw)
	}
	writeLE(buf, uint32(0)) // no next IFD
	buf.Write(data.Bytes())

	return buf.Bytes()
}

// JPEG wraps a TIFF stream into a minimal JPEG with one APP1 EXIF segment.
func JPEG(tiff []byte) []byte {
	payload := append([]byte("Exif\x00\x00"), tiff...)

	buf := new(bytes.Buffer)
	buf.Write([]byte{0xff, 0xd8}) // SOI
	buf.Write([]byte{0xff, 0xe1}) // APP1
	writeBE(buf, uint16(len(payload)+2))
	buf.Write(payload)
	buf.Write([]byte{0xff, 0xd9}) // EOI

	return buf.Bytes()
}

func writeLE(buf *bytes.Buffer, v any) {
	_ = binary.Write(buf, binary.LittleEndian, v)
}

func writeBE(buf *bytes.Buffer, v any) {
	_ = binary.Write(buf, binary.BigEndian, v)
}
