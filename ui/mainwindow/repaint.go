package mainwindow

import (
	"time"

	"colorose/internal/app"
	"colorose/internal/config"
)

// Repainter polls the shared state at a bounded rate and hands changed
// snapshots to a render callback.
type Repainter struct {
	state    *app.State
	interval time.Duration
	stopCh   chan struct{}
	onFrame  func(app.Snapshot)

	// Owned by the repaint goroutine.
	rendered    bool
	lastVersion uint64
	lastConfig  config.SampleConfig
	lastMode    string
}

// NewRepainter creates a repainter calling onFrame at most once per interval.
func NewRepainter(state *app.State, interval time.Duration, onFrame func(app.Snapshot)) *Repainter {
	return &Repainter{
		state:    state,
		interval: interval,
		stopCh:   make(chan struct{}),
		onFrame:  onFrame,
	}
}

// Start begins repainting in a background goroutine.
func (r *Repainter) Start() {
	// Create a fresh stop channel in case we're restarting
	r.stopCh = make(chan struct{})
	go r.loop()
}

// Stop stops the repaint goroutine.
func (r *Repainter) Stop() {
	close(r.stopCh)
}

func (r *Repainter) loop() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.Tick()
		}
	}
}

// Tick takes one snapshot and renders it unless nothing changed since the
// last frame. It reports whether a frame was rendered.
func (r *Repainter) Tick() bool {
	snap := r.state.Snapshot()
	if r.rendered && snap.Version == r.lastVersion &&
		snap.Config == r.lastConfig && snap.WheelMode == r.lastMode {
		return false
	}

	r.rendered = true
	r.lastVersion = snap.Version
	r.lastConfig = snap.Config
	r.lastMode = snap.WheelMode

	if r.onFrame != nil {
		r.onFrame(snap)
	}
	return true
}
