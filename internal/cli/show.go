package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newShowCmd() *cobra.Command {
	var yamlMode bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a song",
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

			song, err := table.Get(id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case flags.jsonMode:
				return printJSON(out, song)
			case yamlMode:
				data, err := yaml.Marshal(song)
				if err != nil {
					return fmt.Errorf("marshal YAML: %w", err)
				}
				_, err = out.Write(data)
				return err
			}

			fmt.Fprintf(out, "%s (id %d, speed %d)\n\n", song.Title, song.SongID, song.ScrollSpeed)
			fmt.Fprintln(out, song.Display())
			return nil
		},
	}
	cmd.Flags().BoolVar(&yamlMode, "yaml", false, "output as YAML")
	return cmd
}
