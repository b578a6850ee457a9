// Copyright (c) Revstack, Inc.
// SPDX-License-Identifier: MPL-2.0

package callback

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hashicorp/go-hclog"
	"github.com/revstack/session/oauth"
)

// Completion creates the OAuth completion callback handler. It reads the
// provider redirect, extracts the token pair, exchanges it via the injected
// oauth.Exchanger, and hands the outcome to the injected response funcs.
//
// Providers that follow the fragment convention deliver tokens in the URL
// hash, which never reaches the server; for those the handler serves a small
// relay page on GET which reposts the fragment parameters in the request
// body. FormValue prioritizes body values over the query string, so a
// reposted fragment pair always wins over a conflicting query pair.
//
// The handler makes at most one Exchange call per request, and the provider
// "error" parameter short-circuits everything else.
//
// Supported options:
//
//	WithLogger
//	WithoutFragmentRelay
func Completion(ctx context.Context, e oauth.Exchanger, sFn SuccessResponseFunc, eFn ErrorResponseFunc, opt ...Option) (http.HandlerFunc, error) {
	const op = "callback.Completion"
	if e == nil {
		return nil, fmt.Errorf("%s: exchanger is nil: %w", op, oauth.ErrNilParameter)
	}
	if sFn == nil {
		return nil, fmt.Errorf("%s: success response func is nil: %w", op, oauth.ErrNilParameter)
	}
	if eFn == nil {
		return nil, fmt.Errorf("%s: error response func is nil: %w", op, oauth.ErrNilParameter)
	}
	opts := getCompletionOpts(opt...)
	logger := opts.withLogger

	return func(w http.ResponseWriter, req *http.Request) {
		// get parameters from either the body or query parameters.
		// FormValue prioritizes body values, if found
		if code := req.FormValue("error"); code != "" {
			reqError := &oauth.ProviderError{
				Code:        code,
				Description: req.FormValue("error_description"),
				Uri:         req.FormValue("error_uri"),
			}
			logger.Debug("provider reported an error on redirect", "code", code)
			eFn(reqError, nil, w, req)
			return
		}

		pair := oauth.TokenPair{
			AccessToken:  oauth.AccessToken(req.FormValue("access_token")),
			RefreshToken: oauth.RefreshToken(req.FormValue("refresh_token")),
		}
		if !pair.Valid() {
			if req.Method == http.MethodGet && !opts.withoutFragmentRelay {
				// tokens may still be sitting in the hash fragment the
				// server never saw
				writeRelayPage(w)
				return
			}
			responseErr := fmt.Errorf("%s: no complete token pair in request: %w", op, oauth.ErrMissingTokens)
			eFn(nil, responseErr, w, req)
			return
		}

		if err := e.Exchange(ctx, pair); err != nil {
			responseErr := fmt.Errorf("%s: unable to exchange tokens: %w", op, err)
			eFn(nil, responseErr, w, req)
			return
		}

		sFn(sanitizeReturnTo(req.FormValue("return_to")), w, req)
	}, nil
}

// completionOptions is the set of available options for Completion
type completionOptions struct {
	withLogger           hclog.Logger
	withoutFragmentRelay bool
}

// completionDefaults is a handy way to get the defaults at runtime and
// during unit tests.
func completionDefaults() completionOptions {
	return completionOptions{
		withLogger: hclog.NewNullLogger(),
	}
}

// getCompletionOpts gets the completion defaults and applies the opt
// overrides passed in
func getCompletionOpts(opt ...Option) completionOptions {
	opts := completionDefaults()
	oauth.ApplyOpts(&opts, opt...)
	return opts
}

// Option defines the callback package's functional options type. It shares
// oauth.ApplyOpts semantics.
type Option = oauth.Option

// WithLogger provides an optional logger for: Completion
func WithLogger(l hclog.Logger) Option {
	return func(o interface{}) {
		if v, ok := o.(*completionOptions); ok {
			v.withLogger = l
		}
	}
}

// WithoutFragmentRelay disables serving the fragment relay page on GET
// requests without tokens; such requests fail with oauth.ErrMissingTokens
// instead. Useful when every provider in play uses the query-string
// convention.
func WithoutFragmentRelay() Option {
	return func(o interface{}) {
		if v, ok := o.(*completionOptions); ok {
			v.withoutFragmentRelay = true
		}
	}
}
