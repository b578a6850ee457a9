package oauth

import (
	"net/http"

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

// WithLogger provides an optional logger for: SessionExchanger
func WithLogger(l hclog.Logger) Option {
	return func(o interface{}) {
		if v, ok := o.(*exchangerOptions); ok {
			v.withLogger = l
		}
	}
}

// WithHTTPClient provides an optional http client for: SessionExchanger.
// When none is given a cleanhttp pooled client is constructed.
func WithHTTPClient(c *http.Client) Option {
	return func(o interface{}) {
		if v, ok := o.(*exchangerOptions); ok {
			v.withClient = c
		}
	}
}

// WithBackendCA provides an optional CA cert PEM used when the
// SessionExchanger talks to the backend session endpoint.
func WithBackendCA(pem string) Option {
	return func(o interface{}) {
		if v, ok := o.(*exchangerOptions); ok {
			v.withBackendCA = pem
		}
	}
}
