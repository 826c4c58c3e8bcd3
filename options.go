package kabunote

import (
	"time"

	"go.uber.org/zap"
)

// Option configures the Engine.
type Option interface {
	apply(*engineConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*engineConfig)

func (f optionFunc) apply(c *engineConfig) { f(c) }

type engineConfig struct {
	logger *zap.Logger
	now    func() time.Time
}

// WithLogger sets the logger used for pattern compilation warnings and recovered panics.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *engineConfig) {
		if l != nil {
			c.logger = l
		}
	})
}

// WithClock sets the time source used for search freshness scoring.
func WithClock(now func() time.Time) Option {
	return optionFunc(func(c *engineConfig) {
		if now != nil {
			c.now = now
		}
	})
}
