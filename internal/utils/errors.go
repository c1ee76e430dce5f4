package util

import "errors"

var (
	ErrInvalidCapacity      = errors.New("frame capacity must be positive")
	ErrNoActiveProcess      = errors.New("no active process")
	ErrUnknownPage          = errors.New("unknown page")
	ErrPolicyNotImplemented = errors.New("replacement policy cannot select a victim")
	ErrEmptyPageID          = errors.New("page id is empty")
	ErrDuplicatePage        = errors.New("duplicate page id")
	ErrUnknownAlgorithm     = errors.New("unknown replacement algorithm")
	ErrProcessActive        = errors.New("process is active, reset first")
	ErrInvalidPoolSize      = errors.New("invalid pool size")
	ErrOutBoundOfFrame      = errors.New("frame idx out of bound")
	ErrNoEvictableFrame     = errors.New("no evictable frame")
	ErrPageNotFound         = errors.New("page not tracked by replacer")
	ErrPageAlreadyTracked   = errors.New("page already tracked by replacer")
	ErrInvariantViolation   = errors.New("paging invariant violated")
	ErrNegativePageCount    = errors.New("page count must not be negative")
	ErrNoPages              = errors.New("process declares no pages")
	ErrInvalidDriverConfig  = errors.New("invalid driver config")
)
