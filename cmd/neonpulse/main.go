// Command neonpulse runs the graphical client. The same source builds for
// desktop and, with GOOS=js GOARCH=wasm, for the browser.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/urfave/cli/v3"

	"github.com/plus3/neonpulse/config"
	"github.com/plus3/neonpulse/game"
	"github.com/plus3/neonpulse/logging"
	"github.com/plus3/neonpulse/mirror"
)

var logger = logging.New("main")

func main() {
	cmd := &cli.Command{
		Name:  "neonpulse",
		Usage: "neon falling-block arcade",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "YAML settings file", Sources: cli.EnvVars("NEONPULSE_CONFIG")},
			&cli.Uint64Flag{Name: "seed", Usage: "fix the piece sequence"},
			&cli.BoolFlag{Name: "mute", Usage: "disable audio"},
			&cli.StringFlag{Name: "mirror", Usage: "serve spectators on this address"},
			&cli.BoolFlag{Name: "debug", Usage: "enable the debug overlay (F3) and verbose logs"},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(cmd *cli.Command) (config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return cfg, err
	}
	if cmd.IsSet("seed") {
		cfg.Seed = cmd.Uint64("seed")
	}
	if cmd.Bool("mute") {
		cfg.Audio.Enabled = false
	}
	if cmd.IsSet("mirror") {
		cfg.Mirror.Addr = cmd.String("mirror")
	}
	if cmd.Bool("debug") {
		cfg.Debug = true
	}
	return cfg, nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logging.SetDebug(cfg.Debug)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var hub *mirror.Hub
	if cfg.Mirror.Addr != "" {
		hub = mirror.NewHub()
		go func() {
			if err := mirror.ListenAndServe(ctx, cfg.Mirror.Addr, hub); err != nil {
				logger.Printf("mirror server: %v", err)
			}
		}()
		logger.Printf("spectators can connect to %s", cfg.Mirror.Addr)
	}

	g, err := game.New(game.Options{Config: cfg, Hub: hub, Debug: cfg.Debug})
	if err != nil {
		return err
	}
	defer g.Close()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Window.Fullscreen)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
