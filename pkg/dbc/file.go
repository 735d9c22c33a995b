package dbc

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// Record is one row of raw 32-bit words. Index 0 holds the primary key by
// convention.
type Record []uint32

// File is a decoded table.
type File struct {
	Header     Header
	Records    []Record
	StringPool []byte

	// SourcePath is set when the file was read from disk.
	SourcePath string
}

// New builds a table whose header is consistent with the given records:
// RecordSize and FieldCount are taken from the widest record.
func New(records []Record, pool []byte) *File {
	width := 0
	for _, r := range records {
		width = max(width, len(r))
	}
	return &File{
		Header: Header{
			Magic:           magicBytes(),
			RecordCount:     uint32(len(records)),
			FieldCount:      uint32(width),
			RecordSize:      uint32(width * wordSize),
			StringBlockSize: uint32(len(pool)),
		},
		Records:    records,
		StringPool: pool,
	}
}

// FieldU32 returns the raw word at (record, field), or 0 when either index is
// out of range.
func (f *File) FieldU32(record, field int) uint32 {
	if f == nil || record < 0 || record >= len(f.Records) {
		return 0
	}
	r := f.Records[record]
	if field < 0 || field >= len(r) {
		return 0
	}
	return r[field]
}

// FieldI32 reinterprets the raw word as two's complement.
func (f *File) FieldI32(record, field int) int32 {
	return int32(f.FieldU32(record, field))
}

// FieldF32 reinterprets the raw word's bit pattern as an IEEE-754 float.
func (f *File) FieldF32(record, field int) float32 {
	return math.Float32frombits(f.FieldU32(record, field))
}

// FieldString treats the raw word as a string pool offset.
func (f *File) FieldString(record, field int) string {
	return f.String(f.FieldU32(record, field))
}

// String resolves a string pool offset. Offset 0 and offsets past the end of
// the pool are the empty string. The string ends at the next NUL byte or at
// the end of the pool; invalid UTF-8 is replaced, never rejected.
func (f *File) String(offset uint32) string {
	if f == nil || offset == 0 || uint64(offset) >= uint64(len(f.StringPool)) {
		return ""
	}
	b := f.StringPool[offset:]
	if end := bytes.IndexByte(b, 0); end >= 0 {
		b = b[:end]
	}
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}

// Clone returns a deep copy that shares no memory with f.
func (f *File) Clone() *File {
	if f == nil {
		return nil
	}
	out := &File{
		Header:     f.Header,
		Records:    make([]Record, len(f.Records)),
		StringPool: bytes.Clone(f.StringPool),
		SourcePath: f.SourcePath,
	}
	for i, r := range f.Records {
		out.Records[i] = append(Record(nil), r...)
	}
	return out
}

// Validate checks that the header describes the records exactly. Encode does
// not require this; it is a strict check for tooling.
func (f *File) Validate() error {
	if f == nil {
		return fmt.Errorf("%w: nil file", ErrRecordSize)
	}
	if !f.Header.Valid() {
		return ErrBadMagic
	}
	if f.Header.RecordSize%wordSize != 0 {
		return fmt.Errorf("%w: record size %d is not a multiple of %d", ErrRecordSize, f.Header.RecordSize, wordSize)
	}
	want := f.Header.FieldsPerRecord()
	for i, r := range f.Records {
		if len(r) != want {
			return fmt.Errorf("%w: record %d has %d fields, header implies %d", ErrRecordSize, i, len(r), want)
		}
	}
	return nil
}
