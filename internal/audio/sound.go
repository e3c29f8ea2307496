package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Cues plays viewer event sounds through the system speaker.
type Cues struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	cooldown    time.Duration
	lastBump    time.Time
	now         func() time.Time
	initialized bool
}

// NewCues creates a silent cue player. Call Initialize to open the speaker.
func NewCues(volume float64) *Cues {
	return &Cues{
		mixer:    &beep.Mixer{},
		volume:   volume,
		cooldown: 250 * time.Millisecond,
		now:      time.Now,
	}
}

// Initialize opens the speaker and starts the mixer.
func (c *Cues) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Cleanup silences all cues.
func (c *Cues) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}

	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	c.initialized = false
}

// Bump plays the wall bump, at most once per cooldown. Holding a key
// against a wall would otherwise retrigger every frame.
func (c *Cues) Bump() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if !c.lastBump.IsZero() && now.Sub(c.lastBump) < c.cooldown {
		return false
	}
	c.lastBump = now

	if c.initialized {
		speaker.Lock()
		c.mixer.Add(BumpSound(sampleRate, c.volume))
		speaker.Unlock()
	}
	return true
}
