package proposer

import "github.com/relab/majority/logging"

type options struct {
	logger logging.Logger
}

// Option configures a Proposer.
type Option func(*options)

// WithLogger sets the logger used by the proposer.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
