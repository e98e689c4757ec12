// Package beeminder is a thin client for the Beeminder REST API, covering
// only the operations the CLI needs.
package beeminder

import "context"

// Client is the remote API surface consumed by the commands. Tests swap in
// fakes implementing this interface.
type Client interface {
	// Goals lists the account's active goals.
	Goals(ctx context.Context) ([]Goal, error)

	// ArchivedGoals lists the account's archived goals.
	ArchivedGoals(ctx context.Context) ([]Goal, error)

	// Datapoints fetches datapoints for a goal. sort names the wire field
	// to sort by (e.g. "timestamp"); count limits the result, with <= 0
	// meaning no limit.
	Datapoints(ctx context.Context, slug, sort string, count int) ([]Datapoint, error)

	// CreateDatapoint adds a datapoint to a goal.
	CreateDatapoint(ctx context.Context, slug string, dp NewDatapoint) error

	// UpdateDatapoint rewrites an existing datapoint's fields.
	UpdateDatapoint(ctx context.Context, slug string, dp DatapointUpdate) error

	// DeleteDatapoint removes a datapoint by id.
	DeleteDatapoint(ctx context.Context, slug, id string) error
}
