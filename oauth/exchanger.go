// Copyright (c) Revstack, Inc.
// SPDX-License-Identifier: MPL-2.0

package oauth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Exchanger defines the contract for the external auth collaborator which
// converts provider-issued tokens into an authenticated application session.
// Implementations must be concurrently safe, since an Exchanger will likely
// be shared by concurrent http.Handlers.
type Exchanger interface {
	// Exchange the provider-issued pair for an application session. A
	// returned error's message is surfaced verbatim to the user as the
	// failure reason, so implementations should keep it presentable.
	Exchange(ctx context.Context, pair TokenPair) error
}

// SessionExchanger implements the Exchanger interface against the backend
// session endpoint: it posts the token pair and treats any non-2xx response
// as a failed exchange.
type SessionExchanger struct {
	endpoint string
	client   *http.Client
	logger   hclog.Logger
}

// ensure that SessionExchanger implements the Exchanger interface
var _ Exchanger = (*SessionExchanger)(nil)

// NewSessionExchanger creates a SessionExchanger for the given session
// endpoint URL.
// Supported options:
//
//	WithLogger
//	WithHTTPClient
//	WithBackendCA
func NewSessionExchanger(endpoint string, opt ...Option) (*SessionExchanger, error) {
	const op = "oauth.NewSessionExchanger"
	if endpoint == "" {
		return nil, fmt.Errorf("%s: endpoint is empty: %w", op, ErrInvalidParameter)
	}
	opts := getExchangerOpts(opt...)
	client := opts.withClient
	if client == nil {
		c, err := NewHTTPClient(opts.withBackendCA)
		if err != nil {
			return nil, fmt.Errorf("%s: unable to create http client: %w", op, err)
		}
		client = c
	}
	return &SessionExchanger{
		endpoint: endpoint,
		client:   client,
		logger:   opts.withLogger,
	}, nil
}

// Exchange posts the pair to the session endpoint. The response body of a
// failed exchange becomes the error message, so the backend's own reason is
// what the user ultimately sees.
func (e *SessionExchanger) Exchange(ctx context.Context, pair TokenPair) error {
	const op = "SessionExchanger.Exchange"
	if !pair.Valid() {
		return fmt.Errorf("%s: token pair is incomplete: %w", op, ErrMissingTokens)
	}

	// the redacting MarshalJSON on the token types is deliberately bypassed
	// here; this is the one place the raw values leave the process.
	body, err := json.Marshal(map[string]string{
		"access_token":  string(pair.AccessToken),
		"refresh_token": string(pair.RefreshToken),
	})
	if err != nil {
		return fmt.Errorf("%s: unable to encode token pair: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: unable to create request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: unable to reach session endpoint: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := readReason(resp.Body)
		if msg == "" {
			msg = resp.Status
		}
		e.logger.Warn("token exchange rejected", "status", resp.StatusCode)
		return fmt.Errorf("%s: %s: %w", op, msg, ErrExchangeFailed)
	}
	return nil
}

// readReason pulls a presentable failure reason out of an error response
// body: either the "error" field of a JSON object or the raw text.
func readReason(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(raw))
}

// exchangerOptions is the set of available options for SessionExchanger
// functions
type exchangerOptions struct {
	withLogger    hclog.Logger
	withClient    *http.Client
	withBackendCA string
}

// exchangerDefaults is a handy way to get the defaults at runtime and during
// unit tests.
func exchangerDefaults() exchangerOptions {
	return exchangerOptions{
		withLogger: hclog.NewNullLogger(),
	}
}

// getExchangerOpts gets the exchanger defaults and applies the opt overrides
// passed in
func getExchangerOpts(opt ...Option) exchangerOptions {
	opts := exchangerDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}
