package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/songscribbler/songscribbler/internal/songlist"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all songs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, table, err := attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			songs, err := songlist.New(table).Songs()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flags.jsonMode {
				return printJSON(out, songs)
			}
			if len(songs) == 0 {
				fmt.Fprintln(out, "No songs.")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tSPEED")
			for _, s := range songs {
				fmt.Fprintf(w, "%d\t%s\t%d\n", s.SongID, s.Title, s.ScrollSpeed)
			}
			return w.Flush()
		},
	}
}
