package terminal

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	clickFreq     = 880
	clickDuration = 40 * time.Millisecond
	errorFreq     = 220
	errorDuration = 150 * time.Millisecond
)

// Sounder gives audible feedback for activations.
type Sounder interface {
	Click()
	Error()
}

// Chime plays short sine tones through the system speaker. Until Init
// succeeds every method is a no-op, so a missing audio device never
// affects the UI.
type Chime struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewChime creates an uninitialized chime.
func NewChime() *Chime {
	return &Chime{mixer: &beep.Mixer{}}
}

// Init opens the speaker.
func (c *Chime) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Click plays the activation tone.
func (c *Chime) Click() {
	c.play(clickFreq, clickDuration)
}

// Error plays the failure tone.
func (c *Chime) Error() {
	c.play(errorFreq, errorDuration)
}

func (c *Chime) play(freq float64, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	tone, err := Tone(sampleRate, freq, d)
	if err != nil {
		return
	}
	speaker.Lock()
	c.mixer.Add(tone)
	speaker.Unlock()
}

// Close stops playback and releases the speaker.
func (c *Chime) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	c.initialized = false
}

// Tone returns a sine tone of freq Hz lasting d.
func Tone(rate beep.SampleRate, freq float64, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, err
	}
	return beep.Take(rate.N(d), sine), nil
}
