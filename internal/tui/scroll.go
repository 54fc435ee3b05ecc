// Package tui renders the scroll screen in a terminal. The screen shows a
// song's chords and lyrics in a viewport whose offset is driven by a
// scroll.Controller.
package tui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/songscribbler/songscribbler/internal/scroll"
	"github.com/songscribbler/songscribbler/pkg/types"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1ED760")).
			Padding(0, 1)
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#B3B3B3")).
			Padding(0, 1)
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F")).
			Padding(0, 1)
)

// chromeHeight is the number of lines taken by the title and status bars.
const chromeHeight = 2

// Options configures the scroll screen.
type Options struct {
	Interval  time.Duration
	AutoStart bool
	Logger    *slog.Logger
	// Scheduler overrides the controller's tick source.
	Scheduler scroll.Scheduler
	Input     io.Reader
	Output    io.Writer
}

// Model is the bubbletea model of the scroll screen.
type Model struct {
	ctrl      *scroll.Controller
	view      *screenView
	viewport  viewport.Model
	song      types.Song
	autoStart bool
	ready     bool
	status    string
	err       error
}

// NewModel builds the screen for song and initializes its controller with
// the song's stored speed. Speed changes made on the screen are persisted
// through store.
func NewModel(song types.Song, store scroll.SongUpdater, opts Options) (*Model, error) {
	view := newScreenView()
	ctrl := scroll.NewController(song, store, view, scroll.Options{
		Interval:  opts.Interval,
		Scheduler: opts.Scheduler,
		Logger:    opts.Logger,
	})
	if err := ctrl.Initialize(song.ScrollSpeed); err != nil {
		return nil, err
	}
	return &Model{
		ctrl:      ctrl,
		view:      view,
		song:      song,
		autoStart: opts.AutoStart,
		status:    scroll.Stopped.String(),
	}, nil
}

// Run shows the scroll screen until the user quits and returns the song as
// last held by the controller.
func Run(song types.Song, store scroll.SongUpdater, opts Options) (types.Song, error) {
	m, err := NewModel(song, store, opts)
	if err != nil {
		return song, err
	}
	defer m.ctrl.Close()

	popts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Input != nil {
		popts = append(popts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		popts = append(popts, tea.WithOutput(opts.Output))
	}
	if _, err := tea.NewProgram(m, popts...).Run(); err != nil {
		return m.ctrl.Song(), fmt.Errorf("scroll screen: %w", err)
	}
	return m.ctrl.Song(), nil
}

// Controller exposes the screen's controller.
func (m *Model) Controller() *scroll.Controller { return m.ctrl }

func (m *Model) Init() tea.Cmd {
	return m.view.wait()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case syncMsg:
		m.viewport.SetYOffset(int(m.view.offset.Load()))
		if reason, ok := m.view.takeStop(); ok {
			m.status = reason.String()
		}
		return m, m.view.wait()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	switch key := msg.String(); key {
	case "q", "esc", "ctrl+c":
		m.ctrl.Close()
		return m, tea.Quit
	case "s", " ":
		if m.ctrl.State() == scroll.Running {
			m.setErr(m.ctrl.Stop())
			m.status = scroll.StopRequested.String()
		} else {
			m.setErr(m.ctrl.Start())
			m.status = scroll.Running.String()
		}
	case "r":
		m.setErr(m.ctrl.Reset())
		m.viewport.GotoTop()
		m.status = scroll.StopReset.String()
	case "+", "=":
		m.changeSpeed(m.ctrl.Speed() + 1)
	case "-", "_":
		m.changeSpeed(m.ctrl.Speed() - 1)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9", "0":
		speed := int(key[0] - '0')
		if speed == 0 {
			speed = types.MaxScrollSpeed
		}
		m.changeSpeed(speed)
	}
	return m, nil
}

// changeSpeed applies a user-picked speed, clamped to the selectable range.
func (m *Model) changeSpeed(speed int) {
	speed = max(types.MinScrollSpeed, min(types.MaxScrollSpeed, speed))
	if speed == m.ctrl.Speed() {
		return
	}
	m.setErr(m.ctrl.OnUserChange(speed))
}

func (m *Model) setErr(err error) {
	if err != nil {
		m.err = err
	}
}

// resize lays the content out for the new terminal size and reports the
// extents to the controller in lines.
func (m *Model) resize(width, height int) {
	h := max(1, height-chromeHeight)
	content := lipgloss.NewStyle().Width(width).Render(m.song.Display())

	if !m.ready {
		m.viewport = viewport.New(width, h)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = h
	}
	m.viewport.SetContent(content)
	m.viewport.SetYOffset(m.ctrl.Offset())
	m.view.setExtent(m.viewport.TotalLineCount(), h)

	if m.autoStart {
		m.autoStart = false
		m.setErr(m.ctrl.Start())
		m.status = scroll.Running.String()
	}
}

func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}

	title := m.song.Title
	if title == "" {
		title = fmt.Sprintf("song %d", m.song.SongID)
	}

	var footer string
	if m.err != nil {
		footer = errorStyle.Render(m.err.Error())
	} else {
		footer = statusStyle.Render(fmt.Sprintf("%s · speed %d · %3.f%% · s start/stop · r reset · +/- speed · q quit",
			m.status, m.ctrl.Speed(), m.viewport.ScrollPercent()*100))
	}

	return strings.Join([]string{titleStyle.Render(title), m.viewport.View(), footer}, "\n")
}
