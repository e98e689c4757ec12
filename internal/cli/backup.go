package cli

import (
	"github.com/felixmde/beeline/internal/backup"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup [filename]",
	Short: "Backup all user data to JSON file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBackup,
}

func runBackup(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	filename := backup.DefaultFilename
	if len(args) == 1 {
		filename = args[0]
	}

	b := backup.New(client, rootCmd.Version)
	b.Out = cmd.OutOrStdout()
	return b.Run(cmd.Context(), filename)
}
