package dbc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// Decode parses a table from data. The returned File owns copies of
// everything it holds and never aliases data. Bytes past the end of the
// string pool are ignored.
func Decode(data []byte) (*File, error) {
	hdr, ok := decodeHeader(data)
	if !ok {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrTooSmall, len(data), HeaderSize)
	}
	if !hdr.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrBadMagic, hdr.Magic[:])
	}
	// A zero record size makes the size check blind to the record count.
	if hdr.RecordSize == 0 && hdr.RecordCount > 0 {
		return nil, fmt.Errorf("%w: zero record size with %d records", ErrRecordSize, hdr.RecordCount)
	}
	if want := hdr.expectedSize(); uint64(len(data)) < want {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrSizeMismatch, want, len(data))
	}

	recSize := int(hdr.RecordSize)
	fields := hdr.FieldsPerRecord()
	records := make([]Record, hdr.RecordCount)
	// One backing array for all words keeps large tables to a single allocation.
	words := make([]uint32, int(hdr.RecordCount)*fields)
	for i := range records {
		raw := data[HeaderSize+i*recSize : HeaderSize+(i+1)*recSize]
		rec := words[i*fields : (i+1)*fields : (i+1)*fields]
		for j := range rec {
			rec[j] = binary.LittleEndian.Uint32(raw[j*wordSize:])
		}
		records[i] = rec
	}

	poolStart := HeaderSize + int(hdr.RecordCount)*recSize
	pool := bytes.Clone(data[poolStart : poolStart+int(hdr.StringBlockSize)])
	if pool == nil {
		pool = []byte{}
	}

	return &File{
		Header:     hdr,
		Records:    records,
		StringPool: pool,
	}, nil
}

// Open reads and decodes the table at path. The file is mapped read-only
// when mmap is available and read with ReadAt otherwise; either way the
// mapping is released before Open returns.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size64 := stat.Size()
	if size64 > int64(int(^uint(0)>>1)) {
		return nil, fmt.Errorf("%w: file too large to index", ErrSizeMismatch)
	}
	size := int(size64)
	if size < HeaderSize {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrTooSmall, size, HeaderSize)
	}

	var df *File
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		df, err = Decode(data)
		if uerr := unix.Munmap(data); err == nil && uerr != nil {
			err = uerr
		}
	} else {
		df, err = DecodeReaderAt(f, size64)
	}
	if err != nil {
		return nil, err
	}
	df.SourcePath = path
	return df, nil
}

// DecodeReaderAt loads size bytes from r and decodes them without mmap. Open
// falls back to it when the mapping fails, as it does on filesystems without
// mmap support, and it serves readers that are not files at all.
func DecodeReaderAt(r io.ReaderAt, size int64) (*File, error) {
	if size < 0 || size > int64(int(^uint(0)>>1)) {
		return nil, fmt.Errorf("%w: invalid size %d", ErrSizeMismatch, size)
	}
	data, err := readAllAt(r, int(size))
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// readAllAt fills a buffer of exactly size bytes. A ReaderAt may return fewer
// bytes than asked without an error, and may report io.EOF together with the
// final bytes, so both cases are looped over rather than trusted.
func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}
