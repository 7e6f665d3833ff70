package poller

import "github.com/okian/duelboard/pkg/logger"

// Option applies a configuration option to the Poller.
type Option func(*Poller)

// WithLogger sets a custom logger for the poller.
func WithLogger(l logger.Logger) Option {
	return func(p *Poller) {
		if l != nil {
			p.logger = l
		}
	}
}
