package headless

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/hakatashi/rhythm-medley/internal/app"
	"github.com/hakatashi/rhythm-medley/internal/assets"
	"github.com/hakatashi/rhythm-medley/internal/clock"
	"github.com/hakatashi/rhythm-medley/internal/config"
	"github.com/hakatashi/rhythm-medley/internal/logging"
)

// ScriptLength is the number of generated taps; the script loops after the
// last one.
const ScriptLength = 64

// RunScene builds the app on the discard backend with generated textures and
// a seeded, looping tap script, then runs it per cfg.Headless. Cancelling ctx
// or a quit request ends the run without an error.
func RunScene(ctx context.Context, cfg *config.Config, log zerolog.Logger) (uint64, error) {
	r := Renderer{}
	set, err := assets.Load(r, nil, cfg.Assets, logging.Component(log, "assets"))
	if err != nil {
		return 0, err
	}

	clk := clock.NewManual(time.Now())
	taps := RandomTaps(cfg.Headless.Seed, ScriptLength, cfg.Headless.TapEvery, cfg.Window.Width, cfg.Window.Height)
	input := NewScriptedInput(clk, taps)
	input.Loop = ScriptLength * cfg.Headless.TapEvery

	game, err := app.New(app.Options{
		Renderer: r,
		Input:    input,
		Assets:   set,
		Clock:    clk,
		TTL:      cfg.Marker.TTL,
		HUD:      cfg.HUD,
		Logger:   logging.Component(log, "app"),
	})
	if err != nil {
		return 0, err
	}
	defer game.Close()

	n, err := Run(ctx, game, Config{
		Hz:     cfg.Headless.Hz,
		Ticks:  cfg.Headless.Ticks,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Clock:  clk,
		Draw:   true,
	})
	log.Info().Uint64("ticks", n).Int("live", len(game.Markers())).Msg("Headless run finished")
	if errors.Is(err, context.Canceled) || errors.Is(err, app.ErrQuit) {
		return n, nil
	}
	return n, err
}
