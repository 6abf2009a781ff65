// Command neonpulse-term plays in the terminal. Logs go to a file in the
// temp directory so they do not tear the screen.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/plus3/neonpulse/audio"
	"github.com/plus3/neonpulse/config"
	"github.com/plus3/neonpulse/logging"
	"github.com/plus3/neonpulse/mirror"
	"github.com/plus3/neonpulse/term"
)

var logger = logging.New("main")

func main() {
	cmd := &cli.Command{
		Name:  "neonpulse-term",
		Usage: "neon falling-block arcade for the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "YAML settings file", Sources: cli.EnvVars("NEONPULSE_CONFIG")},
			&cli.Uint64Flag{Name: "seed", Usage: "fix the piece sequence"},
			&cli.BoolFlag{Name: "mute", Usage: "disable audio"},
			&cli.StringFlag{Name: "mirror", Usage: "serve spectators on this address"},
			&cli.BoolFlag{Name: "debug", Usage: "verbose logs"},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	closer, path, err := logging.ToFile("neonpulse-term.log")
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}
	if cmd.IsSet("seed") {
		cfg.Seed = cmd.Uint64("seed")
	}
	if cmd.IsSet("mirror") {
		cfg.Mirror.Addr = cmd.String("mirror")
	}
	logging.SetDebug(cfg.Debug || cmd.Bool("debug"))
	log.Printf("logging to %s", path)

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
	}

	var soundtrack *audio.Soundtrack
	if cfg.Audio.Enabled && !cmd.Bool("mute") {
		soundtrack = audio.NewSoundtrack(audio.SynthConfig{
			DroneHz: cfg.Audio.DroneHz,
			PulseHz: cfg.Audio.PulseHz,
			Volume:  cfg.Audio.Volume,
		})
	}

	model, err := term.NewModel(term.Options{Config: cfg, Hub: hub, Soundtrack: soundtrack})
	if err != nil {
		return err
	}
	defer model.Close()

	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("running terminal client: %w", err)
	}
	return nil
}
