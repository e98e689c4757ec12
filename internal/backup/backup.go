// Package backup exports the whole account — every goal with its full
// datapoint history — to a single JSON document.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/felixmde/beeline/internal/beeminder"
	"github.com/felixmde/beeline/internal/logging"
)

// DefaultFilename is used when the user gives no output path.
const DefaultFilename = "beedata.json"

type Metadata struct {
	BackupTimestamp time.Time `json:"backup_timestamp"`
	BeelineVersion  string    `json:"beeline_version"`
}

type GoalWithDatapoints struct {
	Goal       beeminder.Goal        `json:"goal"`
	Datapoints []beeminder.Datapoint `json:"datapoints"`
}

type Goals struct {
	Active   []GoalWithDatapoints `json:"active"`
	Archived []GoalWithDatapoints `json:"archived"`
}

type Document struct {
	Metadata Metadata `json:"metadata"`
	Goals    Goals    `json:"goals"`
}

type Backup struct {
	Client  beeminder.Client
	Version string
	Out     io.Writer // progress lines
	Now     func() time.Time
	Log     logging.Logger
}

func New(client beeminder.Client, version string) *Backup {
	return &Backup{
		Client:  client,
		Version: version,
		Out:     os.Stdout,
		Now:     time.Now,
		Log:     logging.Nop(),
	}
}

// Run collects the account and writes it, pretty-printed, to filename.
func (b *Backup) Run(ctx context.Context, filename string) error {
	doc, err := b.Collect(ctx)
	if err != nil {
		return err
	}

	b.Log.Debug(ctx, "collected account data",
		"active", len(doc.Goals.Active), "archived", len(doc.Goals.Archived))

	fmt.Fprintf(b.Out, "Writing backup to file: %s\n", filename)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize backup: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("write backup file %s: %w", filename, err)
	}

	fmt.Fprintf(b.Out, "Backup completed successfully! Saved to: %s\n", filename)
	return nil
}

// Collect fetches every active and archived goal along with its complete
// datapoint history, oldest-first (the fetch requests sort-by-timestamp
// with no limit).
func (b *Backup) Collect(ctx context.Context) (*Document, error) {
	fmt.Fprintln(b.Out, "Starting backup...")

	fmt.Fprintln(b.Out, "Fetching active goals...")
	active, err := b.Client.Goals(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch active goals: %w", err)
	}

	fmt.Fprintln(b.Out, "Fetching archived goals...")
	archived, err := b.Client.ArchivedGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch archived goals: %w", err)
	}

	total := len(active) + len(archived)
	fmt.Fprintf(b.Out, "Found %d active goals and %d archived goals\n", len(active), len(archived))

	doc := &Document{
		Metadata: Metadata{
			BackupTimestamp: b.Now().UTC(),
			BeelineVersion:  b.Version,
		},
	}

	processed := 0
	for _, goal := range active {
		processed++
		fmt.Fprintf(b.Out, "Fetching datapoints for active goal: %s (%d/%d)\n", goal.Slug, processed, total)
		dps, err := b.Client.Datapoints(ctx, goal.Slug, "timestamp", 0)
		if err != nil {
			return nil, fmt.Errorf("fetch datapoints for active goal %s: %w", goal.Slug, err)
		}
		fmt.Fprintf(b.Out, "  Found %d datapoints\n", len(dps))
		doc.Goals.Active = append(doc.Goals.Active, GoalWithDatapoints{Goal: goal, Datapoints: dps})
	}

	for _, goal := range archived {
		processed++
		fmt.Fprintf(b.Out, "Fetching datapoints for archived goal: %s (%d/%d)\n", goal.Slug, processed, total)
		dps, err := b.Client.Datapoints(ctx, goal.Slug, "timestamp", 0)
		if err != nil {
			return nil, fmt.Errorf("fetch datapoints for archived goal %s: %w", goal.Slug, err)
		}
		fmt.Fprintf(b.Out, "  Found %d datapoints\n", len(dps))
		doc.Goals.Archived = append(doc.Goals.Archived, GoalWithDatapoints{Goal: goal, Datapoints: dps})
	}

	return doc, nil
}
