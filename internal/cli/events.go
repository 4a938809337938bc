package cli

import (
	"github.com/spf13/cobra"
)

func newEventsCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Audit log commands",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent audit events (oldest first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			evs, err := s.ReadEventsTail(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": evs, "meta": map[string]any{"count": len(evs)}})
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 50, "Max events to return (0 = all)")

	cmd.AddCommand(listCmd)
	return cmd
}
