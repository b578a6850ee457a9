// Copyright (c) Revstack, Inc.
// SPDX-License-Identifier: MPL-2.0

package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"
)

// DefaultPollInterval is the pause between two status reads of the same
// workflow.
const DefaultPollInterval = 5 * time.Second

// StatusReader defines the contract the Poller needs from the pipeline
// service. Client implements it.
type StatusReader interface {
	// Status fetches the current status of one workflow.
	Status(ctx context.Context, workflowID string) (Status, error)
}

// ensure that Client implements the StatusReader interface
var _ StatusReader = (*Client)(nil)

// Poller drives a Watcher from the backend: each subscribed workflow is
// polled on a fixed interval and every observed status is handed to the
// watcher. A workflow's subscription ends once a terminal status was
// observed; read errors are logged and retried on the next tick.
type Poller struct {
	reader   StatusReader
	watcher  *Watcher
	interval time.Duration
	logger   hclog.Logger
}

// NewPoller creates a Poller feeding the given watcher from the given
// reader.
// Supported options:
//
//	WithLogger
//	WithInterval
func NewPoller(r StatusReader, w *Watcher, opt ...Option) (*Poller, error) {
	const op = "workflow.NewPoller"
	if r == nil {
		return nil, fmt.Errorf("%s: status reader is nil: %w", op, ErrNilParameter)
	}
	if w == nil {
		return nil, fmt.Errorf("%s: watcher is nil: %w", op, ErrNilParameter)
	}
	opts := getPollerOpts(opt...)
	if opts.withInterval <= 0 {
		return nil, fmt.Errorf("%s: interval not greater than zero: %w", op, ErrInvalidParameter)
	}
	return &Poller{
		reader:   r,
		watcher:  w,
		interval: opts.withInterval,
		logger:   opts.withLogger,
	}, nil
}

// Run polls every given workflow until its subscription ends or ctx is
// cancelled, then returns. Cancellation is a clean stop, not an error.
func (p *Poller) Run(ctx context.Context, workflowIDs ...string) error {
	const op = "Poller.Run"
	if len(workflowIDs) == 0 {
		return fmt.Errorf("%s: no workflow ids: %w", op, ErrInvalidParameter)
	}
	g, ctx := errgroup.WithContext(ctx)
	for _, id := range workflowIDs {
		id := id
		g.Go(func() error {
			return p.watch(ctx, id)
		})
	}
	return g.Wait()
}

func (p *Poller) watch(ctx context.Context, workflowID string) error {
	const op = "Poller.watch"
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		status, err := p.reader.Status(ctx, workflowID)
		switch {
		case err != nil && ctx.Err() != nil:
			return nil
		case err != nil:
			p.logger.Warn("unable to poll workflow status", "workflow", workflowID, "error", err)
		default:
			if _, err := p.watcher.Observe(ctx, workflowID, status); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			if status.IsTerminal() {
				p.watcher.Reset(workflowID)
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// pollerOptions is the set of available options for Poller functions
type pollerOptions struct {
	withLogger   hclog.Logger
	withInterval time.Duration
}

// pollerDefaults is a handy way to get the defaults at runtime and during
// unit tests.
func pollerDefaults() pollerOptions {
	return pollerOptions{
		withLogger:   hclog.NewNullLogger(),
		withInterval: DefaultPollInterval,
	}
}

// getPollerOpts gets the poller defaults and applies the opt overrides
// passed in
func getPollerOpts(opt ...Option) pollerOptions {
	opts := pollerDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}
