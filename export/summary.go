package export

import (
	"fmt"
	"strings"
	"time"
)

// Status is the outcome of one type.
type Status string

const (
	// StatusExported means a Turtle file was written.
	StatusExported Status = "exported"
	// StatusEmpty means the type has no entities; no file is written.
	StatusEmpty Status = "empty"
	// StatusNoResult means the API answered without data for the type.
	StatusNoResult Status = "no_result"
	// StatusFetchFailed means the entity request failed.
	StatusFetchFailed Status = "fetch_failed"
	// StatusFailed means conversion or writing failed.
	StatusFailed Status = "failed"
)

// TypeResult records what happened to one type.
type TypeResult struct {
	Type     string
	Status   Status
	Entities int
	Quads    int
	// Dropped counts quads the encoder refused plus entities rejected for
	// malformed IRIs.
	Dropped int
	File     string
	Err      error
	Duration time.Duration
}

// Summary collects the results of a run in schema order.
type Summary struct {
	RunID string
	Types []TypeResult
}

// Failed returns the types whose fetch or conversion failed.
func (s *Summary) Failed() []TypeResult {
	var failed []TypeResult
	for _, r := range s.Types {
		if r.Status == StatusFailed || r.Status == StatusFetchFailed {
			failed = append(failed, r)
		}
	}
	return failed
}

// Count returns how many types ended with status.
func (s *Summary) Count(status Status) int {
	n := 0
	for _, r := range s.Types {
		if r.Status == status {
			n++
		}
	}
	return n
}

// String renders a one-line overview.
func (s *Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d types: ", len(s.Types))
	parts := make([]string, 0, 5)
	for _, status := range []Status{StatusExported, StatusEmpty, StatusNoResult, StatusFetchFailed, StatusFailed} {
		if n := s.Count(status); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, status))
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "nothing to do")
	}
	b.WriteString(strings.Join(parts, ", "))
	return b.String()
}
