package terminal

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// Sounds plays the game's sound effects
type Sounds interface {
	Crash()
	Point()
}

// Silent is Sounds without audio
type Silent struct{}

func (Silent) Crash() {}
func (Silent) Point() {}

const sampleRate = beep.SampleRate(44100)

// Speaker plays sine tones on the default audio device
type Speaker struct{}

// NewSpeaker initializes the audio device. Callers should fall back to Silent
// on error.
func NewSpeaker() (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &Speaker{}, nil
}

func tone(freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return beep.Silence(0)
	}
	return beep.Take(sampleRate.N(d), sine)
}

// Crash plays a falling three note tone
func (s *Speaker) Crash() {
	speaker.Play(beep.Seq(
		tone(440, 120*time.Millisecond),
		tone(220, 120*time.Millisecond),
		tone(110, 240*time.Millisecond),
	))
}

// Point plays a short blip
func (s *Speaker) Point() {
	speaker.Play(tone(880, 40*time.Millisecond))
}

// Close releases the audio device
func (s *Speaker) Close() {
	speaker.Close()
}
