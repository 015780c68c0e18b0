// Package record holds the vendor record shared by the supplyfinder
// services and the result and error types used on both sides of the wire.
package record

import "fmt"

// Record is an immutable vendor entry keyed by ID.
type Record struct {
	ID       uint32 `json:"id" mapstructure:"id"`
	URL      string `json:"url" mapstructure:"url"`
	Name     string `json:"name" mapstructure:"name"`
	Location string `json:"location" mapstructure:"location"`
}

// Validate reports InvalidArgument for a record that may not be stored.
func (r Record) Validate() error {
	if r.ID == 0 {
		return Errorf(KindInvalidArgument, "validate", "record id must be non-zero")
	}
	if r.URL == "" || r.Name == "" {
		return Errorf(KindInvalidArgument, "validate", "record %d: url and name are required", r.ID)
	}
	return nil
}

func (r Record) String() string {
	return fmt.Sprintf("%d %s (%s, %s)", r.ID, r.Name, r.URL, r.Location)
}

// Reply is the server-side answer to one lookup. Record is the zero value
// when Found is false.
type Reply struct {
	Found  bool
	Record Record
}

// Outcome tags a client-side Result.
type Outcome int

const (
	OutcomeFailed Outcome = iota
	OutcomeFound
	OutcomeNotFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeNotFound:
		return "not_found"
	default:
		return "failed"
	}
}

// Result is what a client gets back from a lookup: the record, a miss, or
// a failure with its kind. Callers switch on Outcome.
type Result struct {
	Outcome Outcome
	Record  Record
	Err     error
}

// Found builds a hit.
func Found(r Record) Result {
	return Result{Outcome: OutcomeFound, Record: r}
}

// NotFound builds a miss.
func NotFound() Result {
	return Result{Outcome: OutcomeNotFound}
}

// Failed builds a failure result around err.
func Failed(err error) Result {
	return Result{Outcome: OutcomeFailed, Err: err}
}

// Kind is the failure kind, KindNotFound for a miss, or KindUnknown for a hit.
func (r Result) Kind() Kind {
	switch r.Outcome {
	case OutcomeFound:
		return KindUnknown
	case OutcomeNotFound:
		return KindNotFound
	default:
		return KindOf(r.Err)
	}
}
