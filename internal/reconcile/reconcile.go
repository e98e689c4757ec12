// Package reconcile computes the remote mutations that turn a goal's
// fetched datapoints into the set the user left behind in the editor.
package reconcile

import (
	"time"

	"github.com/felixmde/beeline/internal/beeminder"
	"github.com/felixmde/beeline/internal/tsv"
)

// Op is one remote mutation: Create, Update or Delete.
type Op interface {
	op()
}

// Create adds a datapoint the user wrote without an id.
type Create struct {
	Timestamp time.Time
	Value     float64
	Comment   string
}

// Update rewrites an existing datapoint whose row changed.
type Update struct {
	ID        string
	Timestamp time.Time
	Value     float64
	Comment   string
}

// Delete removes a datapoint whose id no longer appears in the table.
type Delete struct {
	ID string
}

func (Create) op() {}
func (Update) op() {}
func (Delete) op() {}

// Plan is the ordered outcome of a diff. Ops holds updates and creates in
// after-row order followed by deletes; the relative order of the deletes is
// map iteration order and carries no meaning. Orphans lists after-row ids
// that matched nothing in before — those are reported to the user and never
// turned into operations.
type Plan struct {
	Ops     []Op
	Orphans []string
}

// Diff compares the fetched snapshot against the edited rows.
//
// Rows with a recognized id emit an Update only when a field actually
// differs (exact float, instant and string equality), so an untouched table
// produces an empty plan. Rows without an id become Creates. Every before-id
// that no row claimed becomes a Delete. Duplicate ids in after are processed
// independently against the same before-row, exactly like repeated manual
// edits would be; the delete-set exclusion happens at most once.
func Diff(before []beeminder.Datapoint, after []tsv.Row) Plan {
	byID := make(map[string]beeminder.Datapoint, len(before))
	toDelete := make(map[string]struct{}, len(before))
	for _, dp := range before {
		byID[dp.ID] = dp
		toDelete[dp.ID] = struct{}{}
	}

	var plan Plan
	for _, row := range after {
		if row.ID == "" {
			plan.Ops = append(plan.Ops, Create{Timestamp: row.Timestamp, Value: row.Value, Comment: row.Comment})
			continue
		}
		orig, ok := byID[row.ID]
		if !ok {
			plan.Orphans = append(plan.Orphans, row.ID)
			continue
		}
		delete(toDelete, row.ID)
		if !row.Timestamp.Equal(orig.Timestamp) || row.Value != orig.Value || row.Comment != orig.Comment {
			plan.Ops = append(plan.Ops, Update{ID: row.ID, Timestamp: row.Timestamp, Value: row.Value, Comment: row.Comment})
		}
	}

	for id := range toDelete {
		plan.Ops = append(plan.Ops, Delete{ID: id})
	}
	return plan
}
