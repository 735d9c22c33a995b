package dbc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func sampleFile() *File {
	pool := []byte("\x00Foo\x00Bar\x00")
	return New([]Record{
		{1, 0xFFFFFFFF, 0x3F800000, 1},
		{2, 7, 0, 5},
		{9, 0x80000000, 0xBF800000, 100},
	}, pool)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	f := sampleFile()
	got, err := Decode(Encode(f))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Header != f.Header {
		t.Fatalf("header mismatch: got %+v want %+v", got.Header, f.Header)
	}
	if len(got.Records) != len(f.Records) {
		t.Fatalf("record count mismatch: got %d want %d", len(got.Records), len(f.Records))
	}
	for i := range f.Records {
		if !slices.Equal(got.Records[i], f.Records[i]) {
			t.Fatalf("record %d mismatch: got %v want %v", i, got.Records[i], f.Records[i])
		}
	}
	if !bytes.Equal(got.StringPool, f.StringPool) {
		t.Fatalf("string pool mismatch: got %q want %q", got.StringPool, f.StringPool)
	}
}

func TestEncodeRecomputesCounts(t *testing.T) {
	t.Parallel()

	f := sampleFile()
	f.Header.RecordCount = 99
	f.Header.StringBlockSize = 1
	f.Header.FieldCount = 12 // kept verbatim

	got, err := Decode(Encode(f))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Header.RecordCount != 3 {
		t.Fatalf("record count not recomputed: %d", got.Header.RecordCount)
	}
	if got.Header.StringBlockSize != uint32(len(f.StringPool)) {
		t.Fatalf("string block size not recomputed: %d", got.Header.StringBlockSize)
	}
	if got.Header.FieldCount != 12 {
		t.Fatalf("field count should be preserved, got %d", got.Header.FieldCount)
	}
	if got.Header.RecordSize != 16 {
		t.Fatalf("record size should be preserved, got %d", got.Header.RecordSize)
	}
}

func TestHeaderLittleEndian(t *testing.T) {
	t.Parallel()

	raw := Encode(New([]Record{{0x11223344}}, []byte{0}))
	if string(raw[0:4]) != Magic {
		t.Fatalf("magic: got %q", raw[0:4])
	}
	if raw[4] != 1 || raw[5] != 0 {
		t.Fatalf("record count is not little-endian: %x", raw[4:8])
	}
	if raw[HeaderSize] != 0x44 || raw[HeaderSize+3] != 0x11 {
		t.Fatalf("field word is not little-endian: %x", raw[HeaderSize:HeaderSize+4])
	}
	if len(raw) != HeaderSize+4+1 {
		t.Fatalf("unexpected encoded length %d", len(raw))
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	valid := Encode(sampleFile())
	badMagic := bytes.Clone(valid)
	copy(badMagic, "WDB2")
	shortBadMagic := append([]byte("XXXX"), make([]byte, HeaderSize-4)...)
	zeroRecordSize := make([]byte, HeaderSize)
	encodeHeader(zeroRecordSize, Header{Magic: magicBytes(), RecordCount: 0xFFFFFFFF, FieldCount: 1})

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{name: "empty", data: nil, want: ErrTooSmall},
		{name: "short header", data: valid[:HeaderSize-1], want: ErrTooSmall},
		{name: "bad magic", data: badMagic, want: ErrBadMagic},
		{name: "bad magic header only", data: shortBadMagic, want: ErrBadMagic},
		{name: "truncated records", data: valid[:HeaderSize+10], want: ErrSizeMismatch},
		{name: "truncated pool", data: valid[:len(valid)-1], want: ErrSizeMismatch},
		{name: "zero record size", data: zeroRecordSize, want: ErrRecordSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode(tt.data)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got error %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodeIgnoresTrailingBytes(t *testing.T) {
	t.Parallel()

	f := sampleFile()
	data := append(Encode(f), 0xAA, 0xBB, 0xCC)
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(got.StringPool, f.StringPool) {
		t.Fatalf("pool picked up trailing bytes: %q", got.StringPool)
	}
}

func TestDecodeDropsPartialWord(t *testing.T) {
	t.Parallel()

	// Two records of 6 bytes: one full word plus two stray bytes each.
	data := make([]byte, HeaderSize+12)
	encodeHeader(data, Header{Magic: magicBytes(), RecordCount: 2, FieldCount: 2, RecordSize: 6})
	binary.LittleEndian.PutUint32(data[HeaderSize:], 7)
	binary.LittleEndian.PutUint32(data[HeaderSize+6:], 8)

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Records) != 2 || len(got.Records[0]) != 1 || len(got.Records[1]) != 1 {
		t.Fatalf("unexpected record shape: %v", got.Records)
	}
	if got.Records[0][0] != 7 || got.Records[1][0] != 8 {
		t.Fatalf("unexpected words: %v", got.Records)
	}
	if got.Header.RecordSize != 6 || got.Header.FieldCount != 2 {
		t.Fatalf("header not preserved: %+v", got.Header)
	}
}

func TestDecodeDoesNotAliasInput(t *testing.T) {
	t.Parallel()

	data := Encode(sampleFile())
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i := range data {
		data[i] = 0
	}
	if got.FieldU32(0, 0) != 1 || got.String(1) != "Foo" {
		t.Fatalf("decoded file changed after input was cleared")
	}
}

func TestStringResolution(t *testing.T) {
	t.Parallel()

	f := &File{StringPool: []byte("\x00Foo\x00Bar\x00")}
	tests := []struct {
		offset uint32
		want   string
	}{
		{0, ""},
		{1, "Foo"},
		{2, "oo"},
		{4, ""},
		{5, "Bar"},
		{9, ""},
		{100, ""},
	}
	for _, tt := range tests {
		if got := f.String(tt.offset); got != tt.want {
			t.Fatalf("String(%d) = %q, want %q", tt.offset, got, tt.want)
		}
	}
}

func TestStringWithoutTerminator(t *testing.T) {
	t.Parallel()

	f := &File{StringPool: []byte("\x00abc")}
	if got := f.String(1); got != "abc" {
		t.Fatalf("got %q want %q", got, "abc")
	}
}

func TestStringInvalidUTF8IsReplaced(t *testing.T) {
	t.Parallel()

	f := &File{StringPool: []byte{0, 'a', 0xFF, 'b', 0}}
	if got := f.String(1); got != "a�b" {
		t.Fatalf("got %q", got)
	}
}

func TestFieldAccessors(t *testing.T) {
	t.Parallel()

	f := sampleFile()
	if got := f.FieldI32(0, 1); got != -1 {
		t.Fatalf("FieldI32(0xFFFFFFFF) = %d, want -1", got)
	}
	if got := f.FieldI32(2, 1); got != -2147483648 {
		t.Fatalf("FieldI32(0x80000000) = %d", got)
	}
	if got := f.FieldI32(1, 1); got != 7 {
		t.Fatalf("FieldI32(7) = %d", got)
	}
	if got := f.FieldF32(0, 2); got != 1.0 {
		t.Fatalf("FieldF32(0x3F800000) = %v, want 1", got)
	}
	if got := f.FieldF32(2, 2); got != -1.0 {
		t.Fatalf("FieldF32(0xBF800000) = %v, want -1", got)
	}
	if got := f.FieldString(0, 3); got != "Foo" {
		t.Fatalf("FieldString = %q", got)
	}
	if got := f.FieldString(1, 3); got != "Bar" {
		t.Fatalf("FieldString = %q", got)
	}
	if got := f.FieldString(2, 3); got != "" {
		t.Fatalf("out of range offset should be empty, got %q", got)
	}
}

func TestFieldAccessorsOutOfBounds(t *testing.T) {
	t.Parallel()

	f := sampleFile()
	cases := [][2]int{{-1, 0}, {3, 0}, {0, -1}, {0, 4}, {100, 100}}
	for _, p := range cases {
		if got := f.FieldU32(p[0], p[1]); got != 0 {
			t.Fatalf("FieldU32(%d,%d) = %d, want 0", p[0], p[1], got)
		}
		if got := f.FieldI32(p[0], p[1]); got != 0 {
			t.Fatalf("FieldI32(%d,%d) = %d, want 0", p[0], p[1], got)
		}
		if got := f.FieldF32(p[0], p[1]); got != 0 {
			t.Fatalf("FieldF32(%d,%d) = %v, want 0", p[0], p[1], got)
		}
		if got := f.FieldString(p[0], p[1]); got != "" {
			t.Fatalf("FieldString(%d,%d) = %q, want empty", p[0], p[1], got)
		}
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	f := sampleFile()
	if err := f.Validate(); err != nil {
		t.Fatalf("valid file rejected: %v", err)
	}

	ragged := sampleFile()
	ragged.Records[1] = ragged.Records[1][:2]
	if err := ragged.Validate(); !errors.Is(err, ErrRecordSize) {
		t.Fatalf("ragged record: got %v", err)
	}

	odd := sampleFile()
	odd.Header.RecordSize = 15
	if err := odd.Validate(); !errors.Is(err, ErrRecordSize) {
		t.Fatalf("odd record size: got %v", err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	t.Parallel()

	f := sampleFile()
	c := f.Clone()
	c.Records[0][0] = 42
	c.StringPool[1] = 'X'
	if f.Records[0][0] != 1 || f.StringPool[1] != 'F' {
		t.Fatalf("clone shares memory with original")
	}
}

func TestWriteFileAndOpen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Faction.dbc")
	f := sampleFile()
	if err := WriteFile(path, f); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if got.SourcePath != path {
		t.Fatalf("source path: got %q want %q", got.SourcePath, path)
	}
	if got.Header.RecordCount != 3 {
		t.Fatalf("record count: got %d", got.Header.RecordCount)
	}
	if got.FieldString(1, 3) != "Bar" {
		t.Fatalf("string lookup after open: %q", got.FieldString(1, 3))
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temporary file left behind: %v", entries)
	}
}

func TestOpenTooSmall(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Empty.dbc")
	if err := os.WriteFile(path, []byte("WDBC"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Open(path); !errors.Is(err, ErrTooSmall) {
		t.Fatalf("got %v want ErrTooSmall", err)
	}
}

func TestDecodeReaderAt(t *testing.T) {
	t.Parallel()

	data := Encode(sampleFile())
	got, err := DecodeReaderAt(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("decode reader at: %v", err)
	}
	if got.FieldU32(2, 0) != 9 {
		t.Fatalf("unexpected id %d", got.FieldU32(2, 0))
	}
}

// chunkedReaderAt returns at most n bytes per call and reports io.EOF together
// with the last bytes of the data.
type chunkedReaderAt struct {
	data []byte
	n    int
}

func (r chunkedReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(r.data)) {
		return 0, io.EOF
	}
	end := min(int(off)+min(len(p), r.n), len(r.data))
	n := copy(p, r.data[off:end])
	if end == len(r.data) {
		return n, io.EOF
	}
	return n, nil
}

func TestDecodeReaderAtShortReads(t *testing.T) {
	t.Parallel()

	data := Encode(sampleFile())
	got, err := DecodeReaderAt(chunkedReaderAt{data: data, n: 3}, int64(len(data)))
	if err != nil {
		t.Fatalf("decode reader at: %v", err)
	}
	if !bytes.Equal(Encode(got), data) {
		t.Fatal("short reads changed the decoded table")
	}

	_, err = DecodeReaderAt(chunkedReaderAt{data: data[:len(data)-2], n: 3}, int64(len(data)))
	if !errors.Is(err, io.EOF) {
		t.Fatalf("truncated reader: got %v, want io.EOF", err)
	}
}
