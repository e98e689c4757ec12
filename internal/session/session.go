// Package session orchestrates the edit workflow: fetch recent datapoints,
// hand them to the user's editor as a table, then reconcile and apply
// whatever came back.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/felixmde/beeline/internal/beeminder"
	"github.com/felixmde/beeline/internal/logging"
	"github.com/felixmde/beeline/internal/reconcile"
	"github.com/felixmde/beeline/internal/tsv"
	"github.com/google/uuid"
)

// fetchLimit bounds how many recent datapoints one edit session covers.
const fetchLimit = 20

type Session struct {
	Client   beeminder.Client
	Editor   Editor
	Location *time.Location
	Out      io.Writer // per-operation progress lines
	Errout   io.Writer // orphan reports
	Log      logging.Logger
}

func New(client beeminder.Client, editor Editor) *Session {
	return &Session{
		Client:   client,
		Editor:   editor,
		Location: time.Local,
		Out:      os.Stdout,
		Errout:   os.Stderr,
		Log:      logging.Nop(),
	}
}

// Run executes one edit session for a goal. Any failure before the apply
// phase (fetch, editor, parse) aborts with no mutations issued. During the
// apply phase each operation is attempted even if an earlier one failed;
// the failures are joined into the returned error. The temp table is
// removed on every path.
func (s *Session) Run(ctx context.Context, goal string) error {
	before, err := s.Client.Datapoints(ctx, goal, "timestamp", fetchLimit)
	if err != nil {
		return fmt.Errorf("fetch datapoints for %s: %w", goal, err)
	}

	f, err := os.CreateTemp("", "beeline-*.tsv")
	if err != nil {
		return fmt.Errorf("create temp table: %w", err)
	}
	defer os.Remove(f.Name())

	if err := tsv.Encode(f, before, s.Location); err != nil {
		f.Close()
		return fmt.Errorf("write temp table: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write temp table: %w", err)
	}

	if err := s.Editor.Edit(ctx, f.Name()); err != nil {
		return err
	}

	edited, err := os.Open(f.Name())
	if err != nil {
		return fmt.Errorf("reopen temp table: %w", err)
	}
	after, err := tsv.Decode(edited, s.Location)
	edited.Close()
	if err != nil {
		// Reject the whole edit; nothing has been applied yet.
		return fmt.Errorf("parse edited table for %s: %w", goal, err)
	}

	plan := reconcile.Diff(before, after)
	s.Log.Debug(ctx, "reconciled",
		"goal", goal, "before", len(before), "after", len(after),
		"ops", len(plan.Ops), "orphans", len(plan.Orphans))

	for _, id := range plan.Orphans {
		fmt.Fprintf(s.Errout, "No datapoint with ID '%s'.\n", id)
	}

	return s.apply(ctx, goal, plan)
}

// apply issues the plan best-effort: updates and creates first, in plan
// order, then deletes. One operation's failure does not stop the rest and
// nothing already applied is rolled back.
func (s *Session) apply(ctx context.Context, goal string, plan reconcile.Plan) error {
	var errs []error

	for _, op := range plan.Ops {
		if _, ok := op.(reconcile.Delete); ok {
			continue
		}
		if err := s.applyOne(ctx, goal, op); err != nil {
			s.Log.Error(ctx, "operation failed", "goal", goal, "error", err)
			errs = append(errs, err)
		}
	}
	for _, op := range plan.Ops {
		del, ok := op.(reconcile.Delete)
		if !ok {
			continue
		}
		fmt.Fprintf(s.Out, "Deleting datapoint '%s'.\n", del.ID)
		if err := s.Client.DeleteDatapoint(ctx, goal, del.ID); err != nil {
			s.Log.Error(ctx, "operation failed", "goal", goal, "error", err)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (s *Session) applyOne(ctx context.Context, goal string, op reconcile.Op) error {
	switch v := op.(type) {
	case reconcile.Update:
		fmt.Fprintf(s.Out, "Updating datapoint '%s'.\n", v.ID)
		return s.Client.UpdateDatapoint(ctx, goal, beeminder.DatapointUpdate{
			ID:        v.ID,
			Timestamp: v.Timestamp,
			Value:     v.Value,
			Comment:   v.Comment,
		})
	case reconcile.Create:
		fmt.Fprintf(s.Out, "Creating new datapoint with value '%s'.\n", strconv.FormatFloat(v.Value, 'f', -1, 64))
		ts := v.Timestamp
		return s.Client.CreateDatapoint(ctx, goal, beeminder.NewDatapoint{
			Timestamp: &ts,
			Value:     v.Value,
			Comment:   v.Comment,
			RequestID: uuid.NewString(),
		})
	default:
		return fmt.Errorf("unhandled operation %T", op)
	}
}
