// Copyright (c) Revstack, Inc.
// SPDX-License-Identifier: MPL-2.0

package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/oauth2"
)

// Client reads workflow status from the backend pipeline service. Requests
// are authenticated with the supplied oauth2.TokenSource, so the same source
// that serves the rest of the app's backend calls can be reused here.
type Client struct {
	baseURL *url.URL
	client  *http.Client
	source  oauth2.TokenSource
	logger  hclog.Logger
}

// NewClient validates the configuration and creates a Client. All
// configuration problems are reported together.
// Supported options:
//
//	WithLogger
//	WithHTTPClient
func NewClient(baseURL string, source oauth2.TokenSource, opt ...Option) (*Client, error) {
	const op = "workflow.NewClient"
	opts := getClientOpts(opt...)

	var retErr *multierror.Error
	var u *url.URL
	switch {
	case baseURL == "":
		retErr = multierror.Append(retErr, fmt.Errorf("%s: base url is empty: %w", op, ErrInvalidParameter))
	default:
		var err error
		u, err = url.Parse(baseURL)
		if err != nil {
			retErr = multierror.Append(retErr, fmt.Errorf("%s: error parsing url %q: %w", op, baseURL, err))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			retErr = multierror.Append(retErr, fmt.Errorf("%s: invalid scheme in url %q: %w", op, baseURL, ErrInvalidParameter))
		}
	}
	if source == nil {
		retErr = multierror.Append(retErr, fmt.Errorf("%s: token source is nil: %w", op, ErrNilParameter))
	}
	if err := retErr.ErrorOrNil(); err != nil {
		return nil, err
	}

	client := opts.withClient
	if client == nil {
		client = cleanhttp.DefaultPooledClient()
	}
	return &Client{
		baseURL: u,
		client:  client,
		source:  source,
		logger:  opts.withLogger,
	}, nil
}

// Status fetches the current status of one workflow.
func (c *Client) Status(ctx context.Context, workflowID string) (Status, error) {
	const op = "Client.Status"
	if workflowID == "" {
		return "", fmt.Errorf("%s: workflow id is empty: %w", op, ErrInvalidParameter)
	}

	u := c.baseURL.JoinPath("api", "v1", "workflows", workflowID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("%s: unable to create request: %w", op, err)
	}
	token, err := c.source.Token()
	if err != nil {
		return "", fmt.Errorf("%s: unable to get token: %w", op, err)
	}
	token.SetAuthHeader(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: unable to reach pipeline service: %w", op, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("%s: workflow %q: %w", op, workflowID, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("%s: status %d for workflow %q: %w", op, resp.StatusCode, workflowID, ErrBadResponse)
	}

	var body struct {
		ID     string `json:"id"`
		Status Status `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%s: unable to decode response: %w", op, err)
	}
	if body.Status == "" {
		return "", fmt.Errorf("%s: response has no status: %w", op, ErrBadResponse)
	}
	return body.Status, nil
}

// clientOptions is the set of available options for Client functions
type clientOptions struct {
	withLogger hclog.Logger
	withClient *http.Client
}

// clientDefaults is a handy way to get the defaults at runtime and during
// unit tests.
func clientDefaults() clientOptions {
	return clientOptions{
		withLogger: hclog.NewNullLogger(),
	}
}

// getClientOpts gets the client defaults and applies the opt overrides
// passed in
func getClientOpts(opt ...Option) clientOptions {
	opts := clientDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}
