// Package scroll drives the auto-scroll screen: a repeating tick advances a
// scroll offset through a song's text at the song's speed until the end of
// the content is reached.
//
// A Controller moves through open -> active -> closed. Initialize applies the
// speed the screen starts with and activates the controller; OnUserChange
// applies a speed the user picked and persists it. Within the active phase
// the controller is either Stopped or Running.
package scroll

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/songscribbler/songscribbler/pkg/types"
)

// DefaultInterval is the tick period used when Options.Interval is zero.
const DefaultInterval = time.Second

// State is the scrolling state within the active phase.
type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Phase is the controller lifecycle.
type Phase int

const (
	PhaseOpen Phase = iota
	PhaseActive
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseOpen:
		return "open"
	case PhaseActive:
		return "active"
	case PhaseClosed:
		return "closed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// StopReason tells the view why scrolling stopped.
type StopReason int

const (
	StopRequested StopReason = iota
	StopReset
	StopEndOfContent
)

func (r StopReason) String() string {
	switch r {
	case StopRequested:
		return "stopped"
	case StopReset:
		return "reset"
	case StopEndOfContent:
		return "end of song"
	default:
		return fmt.Sprintf("StopReason(%d)", int(r))
	}
}

// View is the passive display the controller scrolls. Extent reports the
// total height of the rendered content and the height of the visible
// window, in the same units as the scroll speed.
type View interface {
	Extent() (content, viewport int)
	ScrollTo(offset int)
	Stopped(reason StopReason)
}

// SongUpdater persists a song's fields. types.SongTable satisfies it.
type SongUpdater interface {
	Update(id int64, title, body, chords string, scrollSpeed int) (bool, error)
}

// Controller errors.
var (
	ErrControllerClosed    = errors.New("scroll controller is closed")
	ErrControllerNotActive = errors.New("scroll controller is not initialized")
)

// Options configures a Controller. Zero values select the defaults.
type Options struct {
	Interval  time.Duration
	Scheduler Scheduler
	Logger    *slog.Logger
}

// Controller owns the scroll offset and the tick task for one open song.
type Controller struct {
	mu       sync.Mutex
	song     types.Song
	store    SongUpdater
	view     View
	sched    Scheduler
	interval time.Duration
	logger   *slog.Logger

	phase  Phase
	state  State
	offset int
	task   Task
	// gen changes whenever the running task is replaced or cancelled; a tick
	// carrying an older value has no effect.
	gen uint64
}

// NewController returns a Controller in the open phase for song.
func NewController(song types.Song, store SongUpdater, view View, opts Options) *Controller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Scheduler == nil {
		opts.Scheduler = TickerScheduler{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Controller{
		song:     song,
		store:    store,
		view:     view,
		sched:    opts.Scheduler,
		interval: opts.Interval,
		logger:   opts.Logger.With("component", "scroll", "song", song.SongID),
	}
}

// Initialize sets the speed the screen opens with, without persisting it,
// and moves the controller from open to active. Calling it again while
// active only resets the speed.
func (c *Controller) Initialize(speed int) error {
	if err := types.ValidateStoredSpeed(speed); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == PhaseClosed {
		return ErrControllerClosed
	}
	c.song.ScrollSpeed = speed
	c.phase = PhaseActive
	return nil
}

// OnUserChange applies a speed chosen by the user and persists the song.
// The new speed takes effect on the next tick whether or not the song is
// scrolling. If persisting fails the in-memory speed is kept and the error,
// wrapping types.ErrPersistence, is returned.
func (c *Controller) OnUserChange(speed int) error {
	if err := types.ValidateSelectableSpeed(speed); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkActive(); err != nil {
		return err
	}
	c.song.ScrollSpeed = speed

	s := c.song
	ok, err := c.store.Update(s.SongID, s.Title, s.Body, s.Chords, s.ScrollSpeed)
	if err == nil && !ok {
		err = fmt.Errorf("song %d: %w", s.SongID, types.ErrNotFound)
	}
	if err != nil {
		c.logger.Warn("save scroll speed", "speed", speed, "error", err)
		if !errors.Is(err, types.ErrPersistence) {
			err = fmt.Errorf("%w: %w", types.ErrPersistence, err)
		}
		return err
	}
	c.logger.Debug("scroll speed saved", "speed", speed)
	return nil
}

// Start begins scrolling. Starting while running is a no-op.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkActive(); err != nil {
		return err
	}
	if c.state == Running {
		return nil
	}

	c.gen++
	gen := c.gen
	c.state = Running
	c.task = c.sched.Every(c.interval, func() { c.tick(gen) })
	c.logger.Debug("scrolling started", "interval", c.interval)
	return nil
}

// Stop halts scrolling and keeps the offset. Stopping while stopped is a
// no-op.
func (c *Controller) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkActive(); err != nil {
		return err
	}
	if c.state == Running {
		c.haltLocked()
		c.view.Stopped(StopRequested)
	}
	return nil
}

// Reset halts scrolling and returns the offset to the top.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkActive(); err != nil {
		return err
	}
	wasRunning := c.state == Running
	c.haltLocked()
	c.offset = 0
	c.view.ScrollTo(0)
	if wasRunning {
		c.view.Stopped(StopReset)
	}
	return nil
}

// Close cancels any pending tick and detaches the view. Later ticks and
// commands have no effect. Idempotent.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == PhaseClosed {
		return nil
	}
	c.haltLocked()
	c.phase = PhaseClosed
	c.view = nil
	c.logger.Debug("closed", "offset", c.offset)
	return nil
}

// State reports whether the controller is scrolling.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Phase reports the lifecycle phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Offset reports the current scroll offset.
func (c *Controller) Offset() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offset
}

// Speed reports the current scroll speed.
func (c *Controller) Speed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.song.ScrollSpeed
}

// Song returns a copy of the song as the controller currently holds it.
func (c *Controller) Song() types.Song {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.song
}

// tick advances the offset by one speed step, or stops at end of content.
func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen || c.phase != PhaseActive || c.state != Running {
		return
	}

	content, viewport := c.view.Extent()
	limit := content - viewport
	next := c.offset + c.song.ScrollSpeed
	if next > limit {
		c.haltLocked()
		c.logger.Debug("scrolled to end", "offset", c.offset)
		c.view.Stopped(StopEndOfContent)
		return
	}
	c.offset = next
	c.view.ScrollTo(next)
}

// haltLocked cancels the running task. The caller must hold c.mu.
func (c *Controller) haltLocked() {
	c.gen++
	if c.task != nil {
		c.task.Cancel()
		c.task = nil
	}
	c.state = Stopped
}

func (c *Controller) checkActive() error {
	switch c.phase {
	case PhaseClosed:
		return ErrControllerClosed
	case PhaseOpen:
		return ErrControllerNotActive
	}
	return nil
}
