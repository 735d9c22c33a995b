// Package dbc implements the WDBC client database table format.
//
// A table file holds one table: a fixed 20-byte header, a flat array of
// fixed-width records made of little-endian 32-bit words, and a trailing pool
// of NUL-terminated strings that records reference by byte offset.
//
// The codec never looks at field types. Every column is a raw uint32 and
// interpretation is left to the accessors and to whoever holds a schema.
package dbc

// Format constants must never change.
const (
	// Magic is the 4-byte tag at the start of every table file.
	Magic = "WDBC"

	// HeaderSize is the fixed size of the encoded header.
	HeaderSize = 20

	// Ext is the file extension used for table files on disk.
	Ext = ".dbc"

	wordSize = 4
)
