package mvi

import (
	"log"
	"time"

	"github.com/idilsaglam/loginmvi/internal/logutil"
)

// Option configures a Container.
type Option func(*options)

type options struct {
	timeout time.Duration
	logger  *log.Logger
}

// WithTimeout bounds every submission. An expired submission resolves as a
// SubmissionError wrapping ErrTimeout. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithLogger sets the logger used for dropped intents and submission
// results.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func defaultOptions() options {
	return options{logger: logutil.GetLogger("[mvi] ")}
}
