// Copyright (c) Revstack, Inc.
// SPDX-License-Identifier: MPL-2.0

package callback

import (
	"net/http"

	"github.com/revstack/session/oauth"
)

// SuccessResponseFunc is used by Completion to create a http response when
// the token exchange succeeds.
//
// The returnTo parameter is the sanitized post-success navigation target
// (default "/"). The function should use the http.ResponseWriter to send back
// whatever content (headers, html, JSON, etc) it wishes to the client that
// originated the flow.
type SuccessResponseFunc func(returnTo string, w http.ResponseWriter, req *http.Request)

// ErrorResponseFunc is used by Completion to create a http response when the
// completion run fails.
//
// The function receives the provider-reported error, when the provider
// signalled one on the redirect, and/or the error raised while processing the
// request (a missing token pair or a failed exchange). The function should
// use the http.ResponseWriter to send back whatever content it wishes to the
// client that originated the flow.
type ErrorResponseFunc func(perr *oauth.ProviderError, e error, w http.ResponseWriter, req *http.Request)
