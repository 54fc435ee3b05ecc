package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/songscribbler/songscribbler/internal/songlist"
	"github.com/songscribbler/songscribbler/pkg/types"
)

// songFields holds the text flags shared by add and edit.
type songFields struct {
	title      string
	body       string
	bodyFile   string
	chords     string
	chordsFile string
	speed      int
}

func (f *songFields) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "song title")
	cmd.Flags().StringVar(&f.body, "body", "", "lyrics text")
	cmd.Flags().StringVar(&f.bodyFile, "body-file", "", "read lyrics from file (- for stdin)")
	cmd.Flags().StringVar(&f.chords, "chords", "", "chord annotations")
	cmd.Flags().StringVar(&f.chordsFile, "chords-file", "", "read chord annotations from file (- for stdin)")
	cmd.Flags().IntVar(&f.speed, "speed", types.DefaultScrollSpeed, fmt.Sprintf("scroll speed (%d-%d)", types.MinScrollSpeed, types.MaxScrollSpeed))
	cmd.MarkFlagsMutuallyExclusive("body", "body-file")
	cmd.MarkFlagsMutuallyExclusive("chords", "chords-file")
}

// resolveBody returns the body from --body or --body-file, and whether
// either was given.
func (f *songFields) resolveBody(cmd *cobra.Command) (string, bool, error) {
	return resolveText(cmd, "body", f.body, "body-file", f.bodyFile)
}

func (f *songFields) resolveChords(cmd *cobra.Command) (string, bool, error) {
	return resolveText(cmd, "chords", f.chords, "chords-file", f.chordsFile)
}

func resolveText(cmd *cobra.Command, flag, value, fileFlag, path string) (string, bool, error) {
	if cmd.Flags().Changed(fileFlag) {
		text, err := readText(path, cmd.InOrStdin())
		return text, true, err
	}
	return value, cmd.Flags().Changed(flag), nil
}

func newAddCmd() *cobra.Command {
	var f songFields

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new song",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, _, err := f.resolveBody(cmd)
			if err != nil {
				return err
			}
			chords, _, err := f.resolveChords(cmd)
			if err != nil {
				return err
			}

			backend, table, err := attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			ed := songlist.New(table).New()
			ed.SetTitle(f.title)
			ed.SetBody(body)
			ed.SetChords(chords)
			if err := ed.SetScrollSpeed(f.speed); err != nil {
				return err
			}

			id, err := ed.Close()
			if err != nil {
				return fmt.Errorf("create song: %w", err)
			}

			if flags.jsonMode {
				song, err := table.Get(id)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), song)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created song %d\n", id)
			return nil
		},
	}
	f.register(cmd)
	cmd.MarkFlagRequired("title")
	return cmd
}
