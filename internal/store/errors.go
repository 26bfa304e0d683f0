package store

import "errors"

var (
	ErrRead    = errors.New("store read error")
	ErrWrite   = errors.New("store write error")
	ErrCorrupt = errors.New("corrupt data file")
)
