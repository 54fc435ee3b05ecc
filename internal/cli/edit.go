package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/songscribbler/songscribbler/internal/songlist"
)

func newEditCmd() *cobra.Command {
	var (
		f          songFields
		thenScroll bool
		sf         scrollFlags
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a song's title, lyrics, chords or speed",
		Long: `Change the fields given by flags and keep the rest. With --scroll the
song is saved and then opened on the scroll screen.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			body, bodySet, err := f.resolveBody(cmd)
			if err != nil {
				return err
			}
			chords, chordsSet, err := f.resolveChords(cmd)
			if err != nil {
				return err
			}

			backend, table, err := attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			ed, err := songlist.New(table).Select(id)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("title") {
				ed.SetTitle(f.title)
			}
			if bodySet {
				ed.SetBody(body)
			}
			if chordsSet {
				ed.SetChords(chords)
			}
			if cmd.Flags().Changed("speed") {
				if err := ed.SetScrollSpeed(f.speed); err != nil {
					return err
				}
			}
			if _, err := ed.Close(); err != nil {
				return fmt.Errorf("save song %d: %w", id, err)
			}

			if thenScroll {
				return runScroll(cmd, table, id, sf)
			}

			if flags.jsonMode {
				song, err := table.Get(id)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), song)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated song %d\n", id)
			return nil
		},
	}
	f.register(cmd)
	sf.register(cmd)
	cmd.Flags().BoolVar(&thenScroll, "scroll", false, "open the scroll screen after saving")
	return cmd
}
