package workflow

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Option defines a common functional options type
type Option func(interface{})

// ApplyOpts takes a pointer to the options struct as a set of default options
// and applies the slice of opts as overrides.
func ApplyOpts(opts interface{}, opt ...Option) {
	for _, o := range opt {
		if o == nil {
			continue
		}
		o(opts)
	}
}

// WithLogger provides an optional logger for: Watcher, Client, Poller
func WithLogger(l hclog.Logger) Option {
	return func(o interface{}) {
		switch v := o.(type) {
		case *watcherOptions:
			v.withLogger = l
		case *clientOptions:
			v.withLogger = l
		case *pollerOptions:
			v.withLogger = l
		}
	}
}

// WithHTTPClient provides an optional http client for: Client. When none is
// given a cleanhttp pooled client is constructed.
func WithHTTPClient(c *http.Client) Option {
	return func(o interface{}) {
		if v, ok := o.(*clientOptions); ok {
			v.withClient = c
		}
	}
}

// WithInterval overrides the Poller's polling interval.
func WithInterval(d time.Duration) Option {
	return func(o interface{}) {
		if v, ok := o.(*pollerOptions); ok {
			v.withInterval = d
		}
	}
}
