package cubesim

import (
	"math/rand/v2"
	"time"

	"github.com/SeamusWaldron/cubesim/internal/anim"
)

// Option configures a Cube.
type Option func(*config)

type config struct {
	speed    anim.Speed
	interval time.Duration
	rng      *rand.Rand
	tickRate time.Duration
}

func defaultConfig() *config {
	return &config{
		speed:    anim.Normal,
		interval: 0,
		tickRate: time.Second / 60,
	}
}

// WithSpeed sets the initial speed reported by Speed.
func WithSpeed(s Speed) Option {
	return func(c *config) {
		c.speed = s
	}
}

// WithInterval sets the initial pause between scripted turns reported by
// Interval.
func WithInterval(d time.Duration) Option {
	return func(c *config) {
		c.interval = d
	}
}

// WithRand sets the random source used by Scramble.
// Seed it for reproducible scrambles.
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		c.rng = r
	}
}

// WithTickRate sets the tick period used by Run and Settle.
// The default is 60 ticks per second.
func WithTickRate(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.tickRate = d
		}
	}
}
