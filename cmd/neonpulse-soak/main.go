// Command neonpulse-soak plays the game headless with a random bot for a
// fixed wall-clock duration and prints a report of what happened.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/plus3/neonpulse/ecs"
	"github.com/plus3/neonpulse/engine"
	"github.com/plus3/neonpulse/logging"
	"github.com/plus3/neonpulse/mirror"
	"github.com/plus3/neonpulse/play"
)

var logger = logging.New("soak")

func main() {
	cmd := &cli.Command{
		Name:  "neonpulse-soak",
		Usage: "run the engine headless under a random bot",
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "duration", Value: 10 * time.Second, Usage: "wall-clock time to run for"},
			&cli.DurationFlag{Name: "step", Value: time.Second / 60, Usage: "simulated time per frame"},
			&cli.DurationFlag{Name: "bot-interval", Value: 50 * time.Millisecond, Usage: "simulated time between bot commands"},
			&cli.Uint64Flag{Name: "seed", Value: 1, Usage: "seed for the piece sequence and the bot"},
			&cli.StringFlag{Name: "mirror", Usage: "serve spectators on this address while running"},
			&cli.BoolFlag{Name: "gc-pause-metrics", Usage: "include GC pause totals in the report"},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	duration := cmd.Duration("duration")
	step := cmd.Duration("step")
	if step <= 0 {
		return fmt.Errorf("step must be positive, got %s", step)
	}
	seed := cmd.Uint64("seed")

	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	scheduler := ecs.NewScheduler(storage)
	ecs.NewSingleton(storage, play.NewBot(seed, cmd.Duration("bot-interval")))
	scheduler.Register(&play.BotSystem{})
	play.Register(storage, scheduler, engine.New(engine.WithSeed(seed)))

	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	if addr := cmd.String("mirror"); addr != "" {
		hub := mirror.NewHub()
		play.RegisterMirror(storage, scheduler, hub)
		go func() {
			if err := mirror.ListenAndServe(ctx, addr, hub); err != nil {
				logger.Printf("mirror server: %v", err)
			}
		}()
		logger.Printf("spectators can connect to %s", addr)
	}

	report := &Report{
		Duration:       duration,
		Step:           step,
		Seed:           seed,
		GCPauseMetrics: cmd.Bool("gc-pause-metrics"),
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Printf("running for %s", duration)
	start := time.Now()
Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			frameStart := time.Now()
			scheduler.Once(step)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(frameStart))
			report.Frames++
		}
	}

	report.TotalTime = time.Since(start)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Session = *ecs.NewSingleton[play.Session](storage).Get()
	report.Systems = scheduler.GetStats().Systems

	fmt.Println()
	return report.Generate(os.Stdout)
}
