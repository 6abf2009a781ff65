package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/speaker"
	ebitenaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/plus3/neonpulse/logging"
)

var logger = logging.New("audio")

// Soundtrack ties the synth to its analyzer. A silent soundtrack has no
// synth and reports a zero spectrum.
type Soundtrack struct {
	Synth    *Synth
	Tap      *Tap
	Analyzer *Analyzer

	player  *ebitenaudio.Player
	started bool
}

func NewSoundtrack(cfg SynthConfig) *Soundtrack {
	synth := NewSynth(cfg)
	tap := NewTap(synth, WindowSize*4)
	return &Soundtrack{Synth: synth, Tap: tap, Analyzer: NewAnalyzer(tap)}
}

func Silent() *Soundtrack {
	return &Soundtrack{Analyzer: NewAnalyzer(nil)}
}

func (s *Soundtrack) Started() bool {
	return s.started
}

// StartEbiten plays the soundtrack through ebiten's audio context. Calling
// it again is a no-op.
func (s *Soundtrack) StartEbiten() error {
	if s.started || s.Tap == nil {
		return nil
	}
	ctx := ebitenaudio.CurrentContext()
	if ctx == nil {
		ctx = ebitenaudio.NewContext(int(SampleRate))
	}
	player, err := ctx.NewPlayer(NewPCMReader(s.Tap))
	if err != nil {
		return fmt.Errorf("creating audio player: %w", err)
	}
	player.SetBufferSize(100 * time.Millisecond)
	player.Play()
	s.player = player
	s.started = true
	logger.Printf("soundtrack playing at %d Hz", SampleRate)
	return nil
}

// StartSpeaker plays the soundtrack through the beep speaker.
func (s *Soundtrack) StartSpeaker() error {
	if s.started || s.Tap == nil {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("initialising speaker: %w", err)
	}
	speaker.Play(s.Tap)
	s.started = true
	logger.Printf("speaker playing at %d Hz", SampleRate)
	return nil
}

// Degrade logs err and turns s into a silent soundtrack.
func (s *Soundtrack) Degrade(err error) {
	logger.Printf("audio disabled: %v", err)
	if s.player != nil {
		s.player.Close()
	}
	*s = *Silent()
}

// SetPaused pauses the synth while the game is paused.
func (s *Soundtrack) SetPaused(paused bool) {
	if s.Synth != nil && s.Synth.Paused() != paused {
		s.Synth.SetPaused(paused)
	}
}

// Update refreshes the spectrum and returns it.
func (s *Soundtrack) Update() []uint8 {
	if s.started {
		s.Analyzer.Update()
	}
	return s.Analyzer.Bins()
}

func (s *Soundtrack) Close() error {
	if s.player != nil {
		return s.player.Close()
	}
	if s.started && s.Synth != nil {
		speaker.Clear()
	}
	return nil
}
