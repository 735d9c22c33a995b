package dbc

import "errors"

var (
	ErrTooSmall     = errors.New("dbc: data smaller than header")
	ErrBadMagic     = errors.New("dbc: invalid magic")
	ErrSizeMismatch = errors.New("dbc: data shorter than header declares")
	ErrRecordSize   = errors.New("dbc: record does not match record size")
)
