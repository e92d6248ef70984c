package types

import "time"

// OutcomeKind classifies the result of a single closure attempt.
type OutcomeKind string

const (
	OutcomeClosed        OutcomeKind = "closed"
	OutcomeAlreadyClosed OutcomeKind = "already_closed"
	OutcomeNotFound      OutcomeKind = "not_found"
	OutcomeFailed        OutcomeKind = "failed"
)

// ClosureOutcome records what happened to one store during one closure
// attempt. Created once per attempt and never mutated afterwards; batch
// summaries are derived by reduction over the outcome slice.
type ClosureOutcome struct {
	Identifier string      `json:"identifier"`
	Kind       OutcomeKind `json:"kind"`
	Message    string      `json:"message"`
	Row        int         `json:"row,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

// Summary tallies outcome kinds across a batch.
type Summary struct {
	Closed        int `json:"closed"`
	AlreadyClosed int `json:"already_closed"`
	NotFound      int `json:"not_found"`
	Failed        int `json:"failed"`
}

// Summarize reduces a batch of outcomes to per-kind counts.
func Summarize(outcomes []ClosureOutcome) Summary {
	var s Summary
	for _, o := range outcomes {
		switch o.Kind {
		case OutcomeClosed:
			s.Closed++
		case OutcomeAlreadyClosed:
			s.AlreadyClosed++
		case OutcomeNotFound:
			s.NotFound++
		case OutcomeFailed:
			s.Failed++
		}
	}
	return s
}

// Total returns the number of outcomes tallied.
func (s Summary) Total() int {
	return s.Closed + s.AlreadyClosed + s.NotFound + s.Failed
}

// Clean reports whether every outcome in the batch resolved without a
// failure or a missing store. Used for the process exit code.
func (s Summary) Clean() bool {
	return s.Failed == 0 && s.NotFound == 0
}
