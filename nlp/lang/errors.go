package lang

import "errors"

var (
	ErrUnknownPack = errors.New("unknown language pack")
	ErrBadPack     = errors.New("bad language pack")
)
