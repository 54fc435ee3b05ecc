package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/songscribbler/songscribbler/internal/tui"
	"github.com/songscribbler/songscribbler/pkg/types"
)

// scrollLogFile receives log output while the scroll screen owns the
// terminal.
const scrollLogFile = "scroll.log"

// scrollFlags overrides the scroll settings from config.yaml.
type scrollFlags struct {
	interval  time.Duration
	autoStart bool
}

func (f *scrollFlags) register(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&f.interval, "interval", 0, "time between scroll steps (default from config, 1s)")
	cmd.Flags().BoolVar(&f.autoStart, "autostart", false, "start scrolling as soon as the screen opens")
}

func newScrollCmd() *cobra.Command {
	var sf scrollFlags

	cmd := &cobra.Command{
		Use:   "scroll <id>",
		Short: "Show a song and scroll through it",
		Long: `Open the scroll screen for a song.

Keys: s or space start/stop, r reset to top, + and - change speed,
1-9 and 0 (=10) pick a speed, q quit. Speed changes are saved to the song.`,
		Args: cobra.ExactArgs(1),
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

			return runScroll(cmd, table, id, sf)
		},
	}
	sf.register(cmd)
	return cmd
}

// runScroll opens the scroll screen for song id.
func runScroll(cmd *cobra.Command, table types.SongTable, id int64, sf scrollFlags) error {
	song, err := table.Get(id)
	if err != nil {
		return err
	}

	interval := settings.GetDuration(cfgKeyScrollInterval)
	if cmd.Flags().Changed("interval") {
		interval = sf.interval
	}
	if interval <= 0 {
		return userError{fmt.Errorf("interval must be positive, got %s", interval)}
	}
	autoStart := settings.GetBool(cfgKeyScrollAutoStart)
	if cmd.Flags().Changed("autostart") {
		autoStart = sf.autoStart
	}

	logger, closeLog := screenLogger()
	defer closeLog()

	final, err := tui.Run(*song, table, tui.Options{
		Interval:  interval,
		AutoStart: autoStart,
		Logger:    logger,
		Input:     cmd.InOrStdin(),
		Output:    cmd.OutOrStdout(),
	})
	if err != nil {
		return sysError{err}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: speed %d\n", final.Title, final.ScrollSpeed)
	return nil
}

// screenLogger returns a logger writing to scroll.log in the config
// directory, so log lines do not land on the scroll screen. It falls back
// to discarding output if the file cannot be opened.
func screenLogger() (*slog.Logger, func()) {
	lvl, err := parseLevel(settings.GetString(cfgKeyLogLevel))
	if err != nil {
		lvl = slog.LevelWarn
	}
	if flags.logLevel != "" {
		if l, err := parseLevel(flags.logLevel); err == nil {
			lvl = l
		}
	}

	path := filepath.Join(resolvedConfigDir, scrollLogFile)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl})), func() { f.Close() }
}
