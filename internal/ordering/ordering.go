// Package ordering plans position updates for ordered sequences whose members
// share one scope (all events, or the photos of one event). Positions inside a
// scope are kept as the contiguous range 0..n-1.
package ordering

import (
	"errors"
	"sort"
)

// ErrNotInSequence is returned when the target id is not a member of the scope.
var ErrNotInSequence = errors.New("ordering: id not in sequence")

// Entry is a member of a scope with its stored position.
type Entry struct {
	ID       string
	Position int
}

// Change is a position write required to apply a plan.
type Change struct {
	ID       string
	Position int
}

// sorted returns a copy of entries ordered by position, ties broken by id so
// the plan is deterministic even when stored positions are damaged.
func sorted(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func diff(ordered []Entry, ids []string) []Change {
	current := make(map[string]int, len(ordered))
	for _, e := range ordered {
		current[e.ID] = e.Position
	}
	var changes []Change
	for pos, id := range ids {
		if current[id] != pos {
			changes = append(changes, Change{ID: id, Position: pos})
		}
	}
	return changes
}

func index(ordered []Entry, id string) int {
	for i, e := range ordered {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Next returns the position a newly appended member receives.
func Next(entries []Entry) int {
	return len(entries)
}

// Move places id at position to and shifts the members between its old and
// new place by one. to is clamped to the valid range.
func Move(entries []Entry, id string, to int) ([]Change, error) {
	ordered := sorted(entries)
	from := index(ordered, id)
	if from < 0 {
		return nil, ErrNotInSequence
	}
	if to < 0 {
		to = 0
	}
	if to > len(ordered)-1 {
		to = len(ordered) - 1
	}

	ids := make([]string, 0, len(ordered))
	for i, e := range ordered {
		if i != from {
			ids = append(ids, e.ID)
		}
	}
	ids = append(ids, "")
	copy(ids[to+1:], ids[to:])
	ids[to] = id

	return diff(ordered, ids), nil
}

// Remove returns the writes that close the gap left by deleting id.
func Remove(entries []Entry, id string) ([]Change, error) {
	ordered := sorted(entries)
	at := index(ordered, id)
	if at < 0 {
		return nil, ErrNotInSequence
	}
	rest := append(ordered[:at:at], ordered[at+1:]...)
	ids := make([]string, len(rest))
	for i, e := range rest {
		ids[i] = e.ID
	}
	return diff(rest, ids), nil
}

// Compact rewrites damaged positions back to 0..n-1, keeping relative order.
func Compact(entries []Entry) []Change {
	ordered := sorted(entries)
	ids := make([]string, len(ordered))
	for i, e := range ordered {
		ids[i] = e.ID
	}
	return diff(ordered, ids)
}

// Apply returns entries with changes written, ordered by the new positions.
func Apply(entries []Entry, changes []Change) []Entry {
	byID := make(map[string]int, len(changes))
	for _, c := range changes {
		byID[c.ID] = c.Position
	}
	out := make([]Entry, len(entries))
	for i, e := range entries {
		if pos, ok := byID[e.ID]; ok {
			e.Position = pos
		}
		out[i] = e
	}
	return sorted(out)
}
