package tui

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/songscribbler/songscribbler/internal/scroll"
)

// syncMsg tells the model that the controller moved the offset or stopped.
type syncMsg struct{}

// screenView is the scroll.View handed to the controller. The controller
// calls it from its tick goroutine, so values cross into the bubbletea loop
// through atomics and a one-slot signal channel that never blocks the
// caller.
type screenView struct {
	content  atomic.Int64
	viewport atomic.Int64
	offset   atomic.Int64
	// stop holds the last StopReason plus one; zero means none pending.
	stop   atomic.Int64
	signal chan struct{}
}

func newScreenView() *screenView {
	return &screenView{signal: make(chan struct{}, 1)}
}

func (v *screenView) Extent() (int, int) {
	return int(v.content.Load()), int(v.viewport.Load())
}

func (v *screenView) ScrollTo(offset int) {
	v.offset.Store(int64(offset))
	v.notify()
}

func (v *screenView) Stopped(reason scroll.StopReason) {
	v.stop.Store(int64(reason) + 1)
	v.notify()
}

func (v *screenView) setExtent(content, viewport int) {
	v.content.Store(int64(content))
	v.viewport.Store(int64(viewport))
}

// takeStop returns the pending stop reason, if any, and clears it.
func (v *screenView) takeStop() (scroll.StopReason, bool) {
	r := v.stop.Swap(0)
	if r == 0 {
		return 0, false
	}
	return scroll.StopReason(r - 1), true
}

func (v *screenView) notify() {
	select {
	case v.signal <- struct{}{}:
	default:
	}
}

// wait blocks until the controller signals, then delivers a syncMsg.
func (v *screenView) wait() tea.Cmd {
	return func() tea.Msg {
		<-v.signal
		return syncMsg{}
	}
}
