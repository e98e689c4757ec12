package cli

import (
	"fmt"
	"strconv"

	"github.com/felixmde/beeline/internal/beeminder"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <goal> <value> [comment]",
	Short: "Add a datapoint",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	goal := args[0]
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("value %q is not a number: %w", args[1], err)
	}

	dp := beeminder.NewDatapoint{
		Value:     value,
		RequestID: uuid.NewString(),
	}
	if len(args) == 3 {
		dp.Comment = args[2]
	}

	return client.CreateDatapoint(cmd.Context(), goal, dp)
}
