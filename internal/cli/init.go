package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize songscribbler storage",
		Long:  "Create the configuration and data directories, then create or upgrade the song database.",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

// runInit relies on PersistentPreRunE having written config.yaml; attaching
// creates the data directory and brings the schema up to date.
func runInit(cmd *cobra.Command, args []string) error {
	backend, _, err := attachBackend()
	if err != nil {
		return err
	}
	if err := backend.Detach(); err != nil {
		return sysError{fmt.Errorf("finalize storage: %w", err)}
	}

	cfg, err := storageConfig()
	if err != nil {
		return sysError{err}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Songbook initialized in %s (config: %s)\n", cfg.DataDir, resolvedConfigDir)
	return nil
}
