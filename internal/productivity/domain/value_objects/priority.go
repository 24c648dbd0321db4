package value_objects

import (
	"errors"
	"strings"
)

// Priority represents task urgency level.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

var (
	ErrInvalidPriority = errors.New("invalid priority value")
)

// priorityRanks orders priorities for sorting; lower sorts first.
var priorityRanks = map[Priority]int{
	PriorityHigh:   0,
	PriorityMedium: 1,
	PriorityLow:    2,
}

// unknownRank places unrecognized priorities after low.
const unknownRank = 3

// ParsePriority creates a Priority from a string.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", ErrInvalidPriority
	}
	return p, nil
}

// String returns the string representation of the priority.
func (p Priority) String() string {
	return string(p)
}

// IsValid returns true if the priority is one of the three levels.
func (p Priority) IsValid() bool {
	_, ok := priorityRanks[p]
	return ok
}

// Rank returns the sort position of the priority (high=0, medium=1, low=2).
func (p Priority) Rank() int {
	if rank, ok := priorityRanks[p]; ok {
		return rank
	}
	return unknownRank
}
