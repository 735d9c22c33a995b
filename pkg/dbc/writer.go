package dbc

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
)

// Encode serializes f. RecordCount and StringBlockSize are recomputed from
// the content; FieldCount and RecordSize are written exactly as found in
// f.Header. Words are written as raw bit patterns in record order with no
// padding, and record widths are not checked against RecordSize.
func Encode(f *File) []byte {
	words := 0
	for _, r := range f.Records {
		words += len(r)
	}
	out := make([]byte, HeaderSize+words*wordSize+len(f.StringPool))

	hdr := Header{
		Magic:           magicBytes(),
		RecordCount:     uint32(len(f.Records)),
		FieldCount:      f.Header.FieldCount,
		RecordSize:      f.Header.RecordSize,
		StringBlockSize: uint32(len(f.StringPool)),
	}
	encodeHeader(out, hdr)

	off := HeaderSize
	for _, r := range f.Records {
		for _, w := range r {
			binary.LittleEndian.PutUint32(out[off:], w)
			off += wordSize
		}
	}
	copy(out[off:], f.StringPool)
	return out
}

// WriteFile encodes f and replaces path atomically: the bytes go to a
// temporary file in the same directory which is then renamed over path.
func WriteFile(path string, f *File) error {
	if f == nil {
		return errors.New("dbc: nil file")
	}
	data := Encode(f)

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	cleanup := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := writeFull(tmp, data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}

func writeFull(f *os.File, p []byte) error {
	for len(p) > 0 {
		n, err := f.Write(p)
		if err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}
