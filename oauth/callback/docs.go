// Copyright (c) Revstack, Inc.
// SPDX-License-Identifier: MPL-2.0

/*
callback is a package that provides the completion side of the OAuth token
handoff (in the form of an http.HandlerFunc): it reads the provider-issued
token pair out of an incoming redirect (hash fragment first, query string as
a fallback), exchanges the pair via an injected oauth.Exchanger, and hands the
outcome to injected success/error response funcs.
*/
package callback
