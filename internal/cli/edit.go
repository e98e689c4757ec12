package cli

import (
	"github.com/felixmde/beeline/internal/session"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <goal>",
	Short: "Edit recent datapoints for a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	client, cfg, err := newClient()
	if err != nil {
		return err
	}

	s := session.New(client, &session.CommandEditor{Command: cfg.Editor})
	return s.Run(cmd.Context(), args[0])
}
