package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/songscribbler/songscribbler/internal/songlist"
	"github.com/songscribbler/songscribbler/pkg/types"
)

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a song",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			backend, table, err := attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			ok, err := songlist.New(table).Remove(id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("song %d: %w", id, types.ErrNotFound)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted song %d\n", id)
			return nil
		},
	}
}
