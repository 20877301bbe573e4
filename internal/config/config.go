// Package config holds the picker's startup configuration and the
// user-adjustable sample settings.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

const envPrefix = "COLOROSE_"

// Limits for the user-adjustable sizes.
const (
	MaxPreviewSize         = 25
	DefaultPreviewSize     = 21
	DefaultAveragingWindow = 1
)

// Wheel modes.
const (
	WheelHSV = "hsv"
	WheelHSL = "hsl"
)

// SampleConfig is the part of the configuration the UI may change while
// the sampler is running.
type SampleConfig struct {
	PreviewSize     int `mapstructure:"preview_size"`
	AveragingWindow int `mapstructure:"averaging_window"`
}

// Normalize coerces both sizes to odd values >= 1, caps the preview size,
// and keeps the averaging window no larger than the preview size.
func (c SampleConfig) Normalize() SampleConfig {
	c.PreviewSize = oddAtLeastOne(c.PreviewSize)
	if c.PreviewSize > MaxPreviewSize {
		c.PreviewSize = MaxPreviewSize
	}
	c.AveragingWindow = oddAtLeastOne(c.AveragingWindow)
	if c.AveragingWindow > c.PreviewSize {
		c.AveragingWindow = c.PreviewSize
	}
	return c
}

// oddAtLeastOne rounds even values down to the next odd value.
func oddAtLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}

// TipConfig controls where the floating tip sits relative to the cursor.
// NearX/NearY apply when the cursor is within EdgeMargin of the right or
// bottom display edge, FarX/FarY otherwise.
type TipConfig struct {
	EdgeMargin int     `mapstructure:"edge_margin"`
	NearX      int     `mapstructure:"near_x"`
	FarX       int     `mapstructure:"far_x"`
	NearY      int     `mapstructure:"near_y"`
	FarY       int     `mapstructure:"far_y"`
	Damping    float64 `mapstructure:"damping"`
}

// Config is the full startup configuration.
type Config struct {
	SampleConfig    `mapstructure:",squash"`
	PollInterval    time.Duration `mapstructure:"poll_interval"`
	RepaintInterval time.Duration `mapstructure:"repaint_interval"`
	Floating        bool          `mapstructure:"floating"`
	WheelMode       string        `mapstructure:"wheel_mode"`
	IconPath        string        `mapstructure:"icon"`
	Backdrop        bool          `mapstructure:"backdrop"`
	Tip             TipConfig     `mapstructure:"tip"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SampleConfig: SampleConfig{
			PreviewSize:     DefaultPreviewSize,
			AveragingWindow: DefaultAveragingWindow,
		},
		PollInterval:    16 * time.Millisecond,
		RepaintInterval: 34 * time.Millisecond,
		Floating:        true,
		WheelMode:       WheelHSV,
		IconPath:        "resources/app-icon.png",
		Backdrop:        true,
		Tip:             DefaultTip(),
	}
}

// DefaultTip returns the tip layout tuned for the default panel size.
func DefaultTip() TipConfig {
	return TipConfig{
		EdgeMargin: 250,
		NearX:      -250,
		FarX:       60,
		NearY:      -140,
		FarY:       30,
		Damping:    0.7,
	}
}

// Load returns the defaults overridden by COLOROSE_* environment variables.
func Load() (Config, error) {
	return FromEnv(os.Environ())
}

// FromEnv applies KEY=VALUE overrides to the defaults. COLOROSE_TIP_* keys
// configure the tip layout; other COLOROSE_* keys map to top-level fields.
func FromEnv(environ []string) (Config, error) {
	cfg := Default()

	values := map[string]interface{}{}
	tip := map[string]interface{}{}
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, envPrefix) {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(key, envPrefix))
		if rest, isTip := strings.CutPrefix(name, "tip_"); isTip {
			tip[rest] = value
			continue
		}
		values[name] = value
	}
	if len(tip) > 0 {
		values["tip"] = tip
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           &cfg,
	})
	if err != nil {
		return cfg, err
	}
	if err := decoder.Decode(values); err != nil {
		return Default(), fmt.Errorf("invalid environment configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate normalizes sizes and rejects values the sampler cannot run with.
func (c *Config) Validate() error {
	c.SampleConfig = c.SampleConfig.Normalize()

	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}
	if c.RepaintInterval <= 0 {
		return fmt.Errorf("repaint interval must be positive, got %s", c.RepaintInterval)
	}
	if c.Tip.Damping < 0 || c.Tip.Damping >= 1 {
		return fmt.Errorf("tip damping must be in [0,1), got %g", c.Tip.Damping)
	}
	if c.Tip.EdgeMargin < 0 {
		return fmt.Errorf("tip edge margin must not be negative, got %d", c.Tip.EdgeMargin)
	}

	switch strings.ToLower(c.WheelMode) {
	case WheelHSV, "":
		c.WheelMode = WheelHSV
	case WheelHSL:
		c.WheelMode = WheelHSL
	default:
		return fmt.Errorf("unknown wheel mode %q", c.WheelMode)
	}
	return nil
}
