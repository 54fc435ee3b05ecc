// Package cli implements the songscribbler command-line interface: song list
// and editor commands over the SQLite songbook, and the terminal scroll
// screen.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/songscribbler/songscribbler/internal/paths"
	"github.com/songscribbler/songscribbler/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	logLevel  string
}

var (
	flags rootFlags

	// settings is the loaded config.yaml, set by PersistentPreRunE.
	settings *viper.Viper

	// resolvedConfigDir is the config directory settings were loaded from.
	resolvedConfigDir string
)

// NewRootCmd creates the top-level "songscribbler" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	flags = rootFlags{}
	settings = nil

	root := &cobra.Command{
		Use:   "songscribbler",
		Short: "Store song lyrics and chords and auto-scroll through them",
		Long: `songscribbler keeps song lyrics and chord annotations in a local
database and scrolls through them on a terminal screen at a per-song speed.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return loadSettings(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output as JSON")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error (default from config)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newAddCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newEditCmd())
	root.AddCommand(newDeleteCmd())
	root.AddCommand(newScrollCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "songscribbler:", err)
		os.Exit(exitCode(err))
	}
}

// loadSettings resolves the config directory, reads config.yaml and installs
// the default logger.
func loadSettings(stderr io.Writer) error {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return sysError{fmt.Errorf("resolve config dir: %w", err)}
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return sysError{err}
	}

	level := flags.logLevel
	if level == "" {
		level = v.GetString(cfgKeyLogLevel)
	}
	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: lvl})))

	settings = v
	resolvedConfigDir = configDir
	return nil
}

// parseLevel maps a config log level name to a slog.Level.
func parseLevel(name string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return 0, userError{fmt.Errorf("invalid log level %q", name)}
	}
	return lvl, nil
}

// resolveDataDir returns the data directory following the precedence
// --data-dir flag > config.yaml data_dir > SONGSCRIBBLER_DATA_DIR env >
// platform data dir.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flags.dataDir, settings.GetString(cfgKeyDataDir))
}

// userError marks failures caused by the invocation itself.
type userError struct{ err error }

func (e userError) Error() string { return e.err.Error() }
func (e userError) Unwrap() error { return e.err }

// sysError marks failures of the environment: storage, filesystem, config.
type sysError struct{ err error }

func (e sysError) Error() string { return e.err.Error() }
func (e sysError) Unwrap() error { return e.err }

// exitCode classifies err. Storage failures are system errors; missing songs,
// bad arguments and flag errors are user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se sysError
	if errors.As(err, &se) || errors.Is(err, types.ErrPersistence) {
		return exitSysError
	}
	return exitUserError
}
