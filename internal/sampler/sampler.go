// Package sampler implements the background loop that polls the cursor,
// captures the screen around it and publishes the result to the shared
// state.
package sampler

import (
	"context"
	"errors"
	"time"

	"colorose/internal/app"
	"colorose/internal/config"
	"colorose/internal/logging"
	"colorose/internal/platform"
	"colorose/pkg/colorutil"
	"colorose/pkg/geometry"

	"github.com/sirupsen/logrus"
)

// failureWarnInterval is how long sampling may fail continuously before a
// warning is logged.
const failureWarnInterval = 5 * time.Second

// Options configures a Sampler.
type Options struct {
	Interval time.Duration

	// Floating enables tip placement. When false the window is never moved.
	Floating bool
	Tip      config.TipConfig
}

// DefaultOptions mirrors the defaults of config.Default.
func DefaultOptions() Options {
	cfg := config.Default()
	return Options{
		Interval: cfg.PollInterval,
		Floating: cfg.Floating,
		Tip:      cfg.Tip,
	}
}

// Stats counts what the loop has done so far.
type Stats struct {
	Iterations   uint64
	CursorSkips  uint64
	CaptureSkips uint64
	Publishes    uint64
	Moves        uint64
}

// Sampler polls the platform and publishes changed samples to the state.
// Step and Run must not be called concurrently.
type Sampler struct {
	platform platform.Platform
	state    *app.State
	opts     Options
	layout   TipLayout
	log      *logrus.Entry

	// Last published values, owned by the sampling goroutine.
	published bool
	position  geometry.PointInt
	color     colorutil.Color
	gridSize  int
	tip       geometry.PointInt
	hasTip    bool

	failingSince time.Time
	lastWarn     time.Time
	now          func() time.Time

	stats Stats
}

// New creates a Sampler reading from p and writing to state.
func New(p platform.Platform, state *app.State, opts Options) *Sampler {
	if opts.Interval <= 0 {
		opts.Interval = config.Default().PollInterval
	}
	return &Sampler{
		platform: p,
		state:    state,
		opts:     opts,
		layout:   NewTipLayout(opts.Tip),
		log:      logging.NewLogger("sampler"),
		now:      time.Now,
	}
}

// Run calls Step every interval until ctx is done.
func (s *Sampler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	s.log.WithFields(logrus.Fields{
		"interval": s.opts.Interval,
		"floating": s.opts.Floating,
	}).Info("Sampler started")

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Sampler stopped")
			return
		case <-ticker.C:
			s.Step()
		}
	}
}

// Stats returns the loop counters. It must be called from the sampling
// goroutine or after Run has returned.
func (s *Sampler) Stats() Stats {
	return s.stats
}

// Step runs one iteration and reports whether the shared state was written.
// Transient platform failures skip the iteration without touching state.
func (s *Sampler) Step() bool {
	s.stats.Iterations++

	pos, err := s.platform.CursorPosition()
	if err != nil {
		s.stats.CursorSkips++
		s.fail(err)
		return false
	}

	cfg := s.state.SampleConfig().Normalize()
	origin, side := CaptureRect(pos, cfg.PreviewSize)

	var display geometry.RectInt
	if s.opts.Floating {
		display, err = s.platform.DisplayAt(pos)
		if err != nil {
			s.stats.CaptureSkips++
			s.fail(err)
			return false
		}
	}

	grid, err := s.platform.CaptureRegion(origin, side, side)
	if err != nil {
		s.stats.CaptureSkips++
		s.fail(err)
		return false
	}
	if !grid.Valid() || grid.Size != side {
		s.stats.CaptureSkips++
		s.fail(errors.New("capture returned a grid of the wrong size"))
		return false
	}
	s.recovered()

	color := AverageCenter(grid, cfg.AveragingWindow)

	tip, tipChanged := s.placeTip(pos, display)

	// A resized preview is published even when the cursor and color hold.
	if s.published && pos == s.position && color == s.color &&
		grid.Size == s.gridSize && !tipChanged {
		return false
	}

	if tipChanged {
		s.platform.SetWindowPosition(tip)
		s.stats.Moves++
	}

	s.state.Publish(app.Sample{
		Position: pos,
		Color:    color,
		Grid:     grid,
		Tip:      tip,
		HasTip:   s.opts.Floating,
	})
	s.stats.Publishes++

	s.published = true
	s.position = pos
	s.color = color
	s.gridSize = grid.Size
	if s.opts.Floating {
		s.tip = tip
		s.hasTip = true
	}
	return true
}

// placeTip computes the damped tip position. The first placement snaps to
// the target.
func (s *Sampler) placeTip(pos geometry.PointInt, display geometry.RectInt) (geometry.PointInt, bool) {
	if !s.opts.Floating {
		return geometry.PointInt{}, false
	}

	target := s.layout.Target(pos, display)
	if !s.hasTip {
		return target, true
	}

	next := Damp(s.tip, target, s.layout.Damping)
	return next, next != s.tip
}

// fail records a transient failure, warning once per failureWarnInterval
// while the failure persists.
func (s *Sampler) fail(err error) {
	now := s.now()
	if s.failingSince.IsZero() {
		s.failingSince = now
	}

	entry := s.log.WithError(err)
	if now.Sub(s.failingSince) >= failureWarnInterval && now.Sub(s.lastWarn) >= failureWarnInterval {
		s.lastWarn = now
		entry.WithField("failing_for", now.Sub(s.failingSince).Round(time.Millisecond)).
			Warn("Sampling keeps failing")
		return
	}

	switch {
	case errors.Is(err, platform.ErrCursorUnavailable):
		entry.Debug("Cursor unavailable, skipping")
	case errors.Is(err, platform.ErrCaptureUnavailable):
		entry.Debug("Capture unavailable, skipping")
	default:
		entry.Debug("Sampling failed, skipping")
	}
}

func (s *Sampler) recovered() {
	if !s.failingSince.IsZero() {
		s.log.WithField("failed_for", s.now().Sub(s.failingSince).Round(time.Millisecond)).
			Debug("Sampling recovered")
	}
	s.failingSince = time.Time{}
	s.lastWarn = time.Time{}
}
