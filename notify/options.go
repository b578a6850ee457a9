package notify

import (
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

// WithLogger provides an optional logger for: Gateway
func WithLogger(l hclog.Logger) Option {
	return func(o interface{}) {
		if v, ok := o.(*gatewayOptions); ok {
			v.withLogger = l
		}
	}
}

// WithDismissAfter overrides how long a shown notification stays up before
// the Gateway auto-dismisses it. Notifications sent with RequireInteraction
// are never auto-dismissed.
func WithDismissAfter(d time.Duration) Option {
	return func(o interface{}) {
		if v, ok := o.(*gatewayOptions); ok {
			v.withDismissAfter = d
		}
	}
}
