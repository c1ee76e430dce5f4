package util

import (
	"fmt"
	"strings"
)

// PageID identifies a logical page of the active process (e.g. "P1-3")
type PageID string

// NoFrame marks a page that lives on backing store
const NoFrame = -1

// Algorithm names a page replacement policy
type Algorithm string

const (
	AlgorithmFIFO    Algorithm = "FIFO"
	AlgorithmLRU     Algorithm = "LRU"
	AlgorithmOptimal Algorithm = "Optimal"
	AlgorithmClock   Algorithm = "CLOCK"
)

// ParseAlgorithm accepts the policy name case-insensitively, plus the usual aliases for Optimal.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fifo":
		return AlgorithmFIFO, nil
	case "lru":
		return AlgorithmLRU, nil
	case "optimal", "opt", "óptimo", "optimo", "belady":
		return AlgorithmOptimal, nil
	case "clock", "second-chance":
		return AlgorithmClock, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Outcome tells whether an access found its page resident
type Outcome uint8

const (
	OutcomeHit Outcome = iota
	OutcomeFault
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "Hit"
	case OutcomeFault:
		return "Fault"
	default:
		return fmt.Sprintf("Outcome(%d)", uint8(o))
	}
}

// ErrorType classifies paging errors
type ErrorType int

const (
	ErrTypeInvalidCapacity ErrorType = iota
	ErrTypeNoActiveProcess
	ErrTypeUnknownPage
	ErrTypePolicyNotImplemented
	ErrTypeInvalidPage
)

// PagingError carries the offending page along with the error kind
type PagingError struct {
	Type  ErrorType
	Page  PageID
	Cause error
}

func (e *PagingError) Error() string {
	if e.Page != "" {
		return fmt.Sprintf("%v: %q", e.Cause, string(e.Page))
	}
	return e.Cause.Error()
}

func (e *PagingError) Unwrap() error {
	return e.Cause
}

// NewPagingError creates a new paging error
func NewPagingError(errType ErrorType, page PageID, cause error) *PagingError {
	return &PagingError{
		Type:  errType,
		Page:  page,
		Cause: cause,
	}
}

// Options represents engine configuration options
type Options struct {
	Frames          int       `yaml:"frames"`
	Algorithm       Algorithm `yaml:"algorithm"`
	CheckInvariants bool      `yaml:"check_invariants"`
	ClockMaxUsage   int       `yaml:"clock_max_usage"`
}

// DefaultOptions returns default engine options
func DefaultOptions() Options {
	return Options{
		Frames:          4,
		Algorithm:       AlgorithmFIFO,
		CheckInvariants: true,
		ClockMaxUsage:   1,
	}
}

// Validate normalizes the algorithm name and checks numeric bounds.
func (o *Options) Validate() error {
	if o.Frames <= 0 {
		return fmt.Errorf("frames %d: %w", o.Frames, ErrInvalidCapacity)
	}
	alg, err := ParseAlgorithm(string(o.Algorithm))
	if err != nil {
		return err
	}
	o.Algorithm = alg
	if o.ClockMaxUsage <= 0 {
		o.ClockMaxUsage = 1
	}
	return nil
}
