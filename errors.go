package weft

import "errors"

var (
	// ErrNoSegment is returned by Shift when PathInfo has no segment to consume
	ErrNoSegment = errors.New("no path segment to consume")
	// ErrBadSegment is returned by Shift when the next segment is not decodable
	ErrBadSegment = errors.New("undecodable path segment")
	// ErrNoApp is returned by Select when the selector yields no app
	ErrNoApp = errors.New("selector yielded no app")
)
