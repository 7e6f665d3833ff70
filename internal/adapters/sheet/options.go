package sheet

import "google.golang.org/api/sheets/v4"

// Option applies a configuration option to the Sink.
type Option func(*Sink)

// WithCredentialsFile points the sink at a service-account key file. When
// unset, application default credentials are used.
func WithCredentialsFile(path string) Option {
	return func(s *Sink) {
		s.credentialsFile = path
	}
}

// WithService injects a prebuilt Sheets service, e.g. one aimed at a test
// server.
func WithService(svc *sheets.Service) Option {
	return func(s *Sink) {
		if svc != nil {
			s.svc = svc
		}
	}
}
