package feed

import "errors"

var (
	ErrEmptySnapshot   = errors.New("feed: snapshot has no regions")
	ErrDuplicateRegion = errors.New("feed: duplicate region")
	ErrNegativeVotes   = errors.New("feed: negative vote count")
	ErrUnknownRegion   = errors.New("feed: unknown region")
)
