package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the songscribbler release version.
const Version = "0.3.0"

// Revision is the git revision, set at build time with -ldflags -X.
var Revision string

const modulePath = "github.com/songscribbler/songscribbler"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the songscribbler version",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "songscribbler v%s\nmodule: %s\n", Version, modulePath)
			if Revision != "" {
				fmt.Fprintf(out, "revision: %s\n", Revision)
			}
			return nil
		},
	}
}
