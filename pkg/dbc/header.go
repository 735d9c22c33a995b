package dbc

import "encoding/binary"

// Header is the fixed table header. FieldCount is metadata only: some writers
// keep the original value instead of recomputing it, so it is never checked
// against RecordSize.
type Header struct {
	Magic           [4]byte
	RecordCount     uint32
	FieldCount      uint32
	RecordSize      uint32
	StringBlockSize uint32
}

// Valid reports whether the header carries the table magic.
func (h *Header) Valid() bool {
	return string(h.Magic[:]) == Magic
}

// FieldsPerRecord is the number of whole 32-bit words in one record.
func (h *Header) FieldsPerRecord() int {
	return int(h.RecordSize / wordSize)
}

// expectedSize is the minimum buffer length the header describes. It is
// computed in 64 bits so hostile counts cannot wrap.
func (h *Header) expectedSize() uint64 {
	return uint64(HeaderSize) +
		uint64(h.RecordCount)*uint64(h.RecordSize) +
		uint64(h.StringBlockSize)
}

func decodeHeader(b []byte) (Header, bool) {
	if len(b) < HeaderSize {
		return Header{}, false
	}
	var h Header
	copy(h.Magic[:], b[0:4])
	h.RecordCount = binary.LittleEndian.Uint32(b[4:8])
	h.FieldCount = binary.LittleEndian.Uint32(b[8:12])
	h.RecordSize = binary.LittleEndian.Uint32(b[12:16])
	h.StringBlockSize = binary.LittleEndian.Uint32(b[16:20])
	return h, true
}

func encodeHeader(dst []byte, h Header) bool {
	if len(dst) < HeaderSize {
		return false
	}
	copy(dst[0:4], h.Magic[:])
	binary.LittleEndian.PutUint32(dst[4:8], h.RecordCount)
	binary.LittleEndian.PutUint32(dst[8:12], h.FieldCount)
	binary.LittleEndian.PutUint32(dst[12:16], h.RecordSize)
	binary.LittleEndian.PutUint32(dst[16:20], h.StringBlockSize)
	return true
}

func magicBytes() [4]byte {
	var m [4]byte
	copy(m[:], Magic)
	return m
}
