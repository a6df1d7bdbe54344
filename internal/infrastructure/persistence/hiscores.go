// Package persistence stores the high score table.
package persistence

import "sort"

// MaxHiscores is how many scores the table keeps
const MaxHiscores = 5

// Table is the best scores, highest first
type Table struct {
	scores []int
}

// NewTable builds a table from any scores, keeping the best MaxHiscores
func NewTable(scores ...int) *Table {
	t := &Table{}
	for _, s := range scores {
		t.Add(s)
	}
	return t
}

// Scores returns a copy of the table, highest first
func (t *Table) Scores() []int {
	out := make([]int, len(t.scores))
	copy(out, t.scores)
	return out
}

// IsNew reports whether score would enter the table
func (t *Table) IsNew(score int) bool {
	if len(t.scores) < MaxHiscores {
		return true
	}
	return score > t.scores[len(t.scores)-1]
}

// Add inserts score if it qualifies. Below the cap every score goes in;
// at the cap it replaces the lowest only when greater.
func (t *Table) Add(score int) bool {
	if !t.IsNew(score) {
		return false
	}
	if len(t.scores) < MaxHiscores {
		t.scores = append(t.scores, score)
	} else {
		t.scores[len(t.scores)-1] = score
	}
	sort.Sort(sort.Reverse(sort.IntSlice(t.scores)))
	return true
}

// Best returns the top score, or 0 for an empty table
func (t *Table) Best() int {
	if len(t.scores) == 0 {
		return 0
	}
	return t.scores[0]
}

// Store keeps the table between runs
type Store interface {
	// Load returns the current table
	Load() (*Table, error)
	// Record saves a finished run's score
	Record(runID string, score int) error
	Close() error
}
