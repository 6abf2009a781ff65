package play

import (
	"math/rand/v2"
	"time"

	"github.com/plus3/neonpulse/ecs"
	"github.com/plus3/neonpulse/engine"
	"github.com/plus3/neonpulse/input"
)

// Bot plays by pushing a random gameplay command every Interval and
// resetting after game over.
type Bot struct {
	Rand     *rand.Rand
	Interval time.Duration
	elapsed  time.Duration
}

func NewBot(seed uint64, interval time.Duration) Bot {
	return Bot{Rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), Interval: interval}
}

// moves is weighted towards sideways movement so pieces spread out.
var moves = [...]input.Command{
	input.MoveLeft, input.MoveLeft, input.MoveRight, input.MoveRight,
	input.Rotate, input.Rotate, input.SoftDown, input.HardDrop, input.Hold,
}

type BotSystem struct {
	Bot     ecs.Singleton[Bot]
	Session ecs.Singleton[Session]
	Queue   ecs.Singleton[Queue]
}

func (s *BotSystem) Execute(frame *ecs.UpdateFrame) {
	bot, session, queue := s.Bot.Get(), s.Session.Get(), s.Queue.Get()
	bot.elapsed += frame.DeltaTime
	if bot.elapsed < bot.Interval {
		return
	}
	bot.elapsed = 0

	switch {
	case !session.Started:
		queue.Push(input.Reset)
	case session.Engine.Phase() == engine.GameOver:
		queue.Push(input.Reset)
	default:
		queue.Push(moves[bot.Rand.IntN(len(moves))])
	}
}
