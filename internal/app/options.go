package app

import (
	"github.com/okian/duelboard/internal/domain/resolve"
	"github.com/okian/duelboard/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFeed injects a submission feed, bypassing the configured client.
func WithFeed(f resolve.Feed) Option {
	return func(s *Service) {
		if f != nil {
			s.feed = f
		}
	}
}

// WithSink injects a leaderboard sink, bypassing the configured spreadsheet.
func WithSink(snk resolve.Sink) Option {
	return func(s *Service) {
		if snk != nil {
			s.sink = snk
		}
	}
}
