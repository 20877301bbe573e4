// Command colorprobe runs the sampler without a window and prints every
// published sample.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"colorose/internal/app"
	"colorose/internal/config"
	"colorose/internal/logging"
	"colorose/internal/platform"
	"colorose/internal/sampler"
	"colorose/internal/version"
)

func main() {
	count := flag.Int("count", 0, "Stop after this many published samples (0 = run forever)")
	interval := flag.Duration("interval", 16*time.Millisecond, "Polling interval")
	size := flag.Int("size", config.DefaultPreviewSize, "Preview size (odd, 1-25)")
	window := flag.Int("window", config.DefaultAveragingWindow, "Averaging window (odd, at most -size)")
	hsl := flag.Bool("hsl", false, "Print HSL instead of HSV")
	displays := flag.Bool("displays", false, "List displays and exit")
	flag.Parse()

	log := logging.NewLogger("main")

	if err := platform.EnableDPIAwareness(); err != nil {
		log.WithError(err).Fatal("Failed to declare DPI awareness")
	}

	if *displays {
		for i, d := range platform.Displays() {
			fmt.Printf("display %d: %dx%d at (%d,%d)\n", i, d.Width, d.Height, d.X, d.Y)
		}
		return
	}

	cfg := config.Default()
	cfg.SampleConfig = config.SampleConfig{PreviewSize: *size, AveragingWindow: *window}
	cfg.PollInterval = *interval
	cfg.Floating = false
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid options: %v\n", err)
		os.Exit(1)
	}

	state := app.NewState(cfg)
	s := sampler.New(platform.NewScreen(), state, sampler.Options{
		Interval: cfg.PollInterval,
		Floating: false,
		Tip:      cfg.Tip,
	})

	sc := state.SampleConfig()
	fmt.Printf("%s\n", version.String())
	fmt.Printf("Preview %d, averaging %d, polling every %s\n\n", sc.PreviewSize, sc.AveragingWindow, cfg.PollInterval)
	fmt.Printf("%-16s %-22s %-8s %s\n", "POSITION", "RGB", "HEX", "COMPONENTS")

	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	printed := 0
	for range ticker.C {
		if !s.Step() {
			continue
		}

		snap := state.Snapshot()
		components := snap.Color.HSV().String()
		if *hsl {
			components = snap.Color.HSL().String()
		}
		fmt.Printf("%-16s %-22s %-8s %s\n", snap.Position, snap.Color, snap.Color.Hex(), components)

		printed++
		if *count > 0 && printed >= *count {
			break
		}
	}

	st := s.Stats()
	fmt.Printf("\n%d iterations, %d published, %d cursor skips, %d capture skips\n",
		st.Iterations, st.Publishes, st.CursorSkips, st.CaptureSkips)
}
