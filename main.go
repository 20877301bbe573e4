// Package main provides the entry point for the Colorose color picker.
package main

import (
	"context"

	"colorose/internal/app"
	"colorose/internal/config"
	"colorose/internal/logging"
	"colorose/internal/platform"
	"colorose/internal/sampler"
	"colorose/internal/version"
	"colorose/ui/mainwindow"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/sirupsen/logrus"
)

const appID = "io.github.colorose"

func main() {
	log := logging.NewLogger("main")
	log.Infof("Starting %s", version.String())

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Warn("Invalid configuration, using defaults")
	}

	if err := platform.EnableDPIAwareness(); err != nil {
		log.WithError(err).Fatal("Failed to declare DPI awareness")
	}

	state := app.NewState(cfg)
	screen := platform.NewScreen()

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(&app.ColoroseTheme{})

	win := mainwindow.New(fyneApp, state, screen, cfg)

	s := sampler.New(screen, state, sampler.Options{
		Interval: cfg.PollInterval,
		Floating: win.Floating(),
		Tip:      cfg.Tip,
	})

	log.WithFields(logrus.Fields{
		"preview_size":     cfg.PreviewSize,
		"averaging_window": cfg.AveragingWindow,
		"wheel_mode":       cfg.WheelMode,
	}).Info("Sampling")

	// The sampler lives as long as the process.
	go s.Run(context.Background())

	win.ShowAndRun()
}
