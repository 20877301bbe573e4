// Package app holds the shared picker state exchanged between the sampler
// and the UI.
package app

import (
	"sync"

	"colorose/internal/config"
	"colorose/pkg/colorutil"
	"colorose/pkg/geometry"
)

// Sample is one published result of the sampler.
type Sample struct {
	Position geometry.PointInt
	Color    colorutil.Color
	Grid     colorutil.PixelGrid

	// Tip is the floating window position; only meaningful when HasTip is set.
	Tip    geometry.PointInt
	HasTip bool
}

// Snapshot is a consistent copy of the state taken under one lock.
type Snapshot struct {
	Sample
	Config    config.SampleConfig
	WheelMode string

	// Version counts publishes; it changes whenever Sample does.
	Version uint64
}

// State holds the latest sample and the user-adjustable settings.
// A single mutex guards every field.
type State struct {
	mu sync.Mutex

	sample    Sample
	cfg       config.SampleConfig
	wheelMode string
	writes    uint64

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventConfigChanged EventType = iota
	EventWheelModeChanged
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates the shared state from the startup configuration.
func NewState(cfg config.Config) *State {
	mode := cfg.WheelMode
	if mode != config.WheelHSL {
		mode = config.WheelHSV
	}
	return &State{
		cfg:       cfg.SampleConfig.Normalize(),
		wheelMode: mode,
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type. Listeners run
// on the caller's goroutine without the lock held.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.Lock()
	listeners := s.listeners[event]
	s.mu.Unlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Publish replaces the current sample. The state takes ownership of
// sample.Grid; the caller must not modify it afterwards.
func (s *State) Publish(sample Sample) {
	s.mu.Lock()
	s.sample = sample
	s.writes++
	s.mu.Unlock()
}

// Writes returns the number of publishes so far.
func (s *State) Writes() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// Snapshot returns a copy of the whole state. The grid is cloned so the
// caller may keep it across frames.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Sample:    s.sample,
		Config:    s.cfg,
		WheelMode: s.wheelMode,
		Version:   s.writes,
	}
	snap.Grid = s.sample.Grid.Clone()
	return snap
}

// SampleConfig returns the current sample settings.
func (s *State) SampleConfig() config.SampleConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// SetSampleConfig normalizes and stores new sample settings.
func (s *State) SetSampleConfig(cfg config.SampleConfig) {
	cfg = cfg.Normalize()

	s.mu.Lock()
	changed := cfg != s.cfg
	s.cfg = cfg
	s.mu.Unlock()

	if changed {
		s.Emit(EventConfigChanged, cfg)
	}
}

// StepPreviewSize grows or shrinks the preview by delta, keeping it odd and
// in range. The averaging window shrinks with it when necessary.
func (s *State) StepPreviewSize(delta int) config.SampleConfig {
	return s.stepConfig(func(cfg config.SampleConfig) (config.SampleConfig, bool) {
		cfg.PreviewSize += delta
		return cfg, cfg.PreviewSize >= 1 && cfg.PreviewSize <= config.MaxPreviewSize
	})
}

// StepAveragingWindow grows or shrinks the averaging window by delta,
// bounded by 1 and the preview size.
func (s *State) StepAveragingWindow(delta int) config.SampleConfig {
	return s.stepConfig(func(cfg config.SampleConfig) (config.SampleConfig, bool) {
		cfg.AveragingWindow += delta
		return cfg, cfg.AveragingWindow >= 1 && cfg.AveragingWindow <= cfg.PreviewSize
	})
}

// stepConfig applies step to the current settings in one critical section.
// Rejected steps leave the settings untouched.
func (s *State) stepConfig(step func(config.SampleConfig) (config.SampleConfig, bool)) config.SampleConfig {
	s.mu.Lock()
	cfg, ok := step(s.cfg)
	if !ok {
		cur := s.cfg
		s.mu.Unlock()
		return cur
	}
	cfg = cfg.Normalize()
	changed := cfg != s.cfg
	s.cfg = cfg
	s.mu.Unlock()

	if changed {
		s.Emit(EventConfigChanged, cfg)
	}
	return cfg
}

// WheelMode returns the current wheel mode (config.WheelHSV or config.WheelHSL).
func (s *State) WheelMode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wheelMode
}

// ToggleWheelMode switches between HSV and HSL and returns the new mode.
func (s *State) ToggleWheelMode() string {
	s.mu.Lock()
	if s.wheelMode == config.WheelHSV {
		s.wheelMode = config.WheelHSL
	} else {
		s.wheelMode = config.WheelHSV
	}
	mode := s.wheelMode
	s.mu.Unlock()

	s.Emit(EventWheelModeChanged, mode)
	return mode
}
