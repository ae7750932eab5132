package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"

	"github.com/rs/zerolog"

	"github.com/hakatashi/rhythm-medley/internal/app"
	"github.com/hakatashi/rhythm-medley/internal/assets"
	"github.com/hakatashi/rhythm-medley/internal/config"
	"github.com/hakatashi/rhythm-medley/internal/headless"
	"github.com/hakatashi/rhythm-medley/internal/logging"
	ebitenrender "github.com/hakatashi/rhythm-medley/internal/render/ebiten"
)

func main() {
	var (
		configPath  string
		runHeadless bool
		ticks       uint64
		logLevel    string
	)
	flag.StringVar(&configPath, "config", config.DefaultFile, "Path to the JSON config file.")
	flag.BoolVar(&runHeadless, "headless", false, "Run without a window, tapping at random positions.")
	flag.Uint64Var(&ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = use config).")
	flag.StringVar(&logLevel, "log", "", "Override the configured log level.")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		l := logging.Setup("info", os.Stderr)
		l.Fatal().Err(err).Str("path", configPath).Msg("Failed to load config")
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if ticks > 0 {
		cfg.Headless.Ticks = ticks
	}

	log := logging.Setup(cfg.LogLevel, os.Stderr)
	log.Info().Str("config", configPath).Bool("headless", runHeadless).Msg("Starting")

	if runHeadless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		_, err := headless.RunScene(ctx, cfg, log)
		stop()
		if err != nil {
			log.Fatal().Err(err).Msg("Headless run failed")
		}
		return
	}

	if err := runWindow(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("Game exited with error")
	}
}

func runWindow(cfg *config.Config, log zerolog.Logger) error {
	renderer, err := ebitenrender.NewRenderer()
	if err != nil {
		return err
	}
	input := ebitenrender.NewInputManager()
	loader := ebitenrender.NewResourceLoader()
	engine := ebitenrender.NewEngine()

	set, err := assets.Load(renderer, loader, cfg.Assets, logging.Component(log, "assets"))
	if err != nil {
		return err
	}

	game, err := app.New(app.Options{
		Renderer: renderer,
		Input:    input,
		Assets:   set,
		Engine:   engine,
		TTL:      cfg.Marker.TTL,
		HUD:      cfg.HUD,
		Logger:   logging.Component(log, "app"),
	})
	if err != nil {
		return err
	}

	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(cfg.Window.Resizable)
	engine.SetTPS(cfg.TPS)
	if cfg.Window.Fullscreen {
		engine.SetFullscreen(true)
	}

	defer game.Close()
	if err := engine.RunGame(game); err != nil && !errors.Is(err, app.ErrQuit) {
		return err
	}
	log.Info().Uint64("frames", game.Frame()).Msg("Bye")
	return nil
}
