// Copyright (c) Revstack, Inc.
// SPDX-License-Identifier: MPL-2.0

package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/revstack/session/notify"
)

// Watcher turns observed workflow statuses into user notifications. For each
// workflow it remembers the last status it notified about and emits at most
// one notification per distinct (workflow, terminal status) pair.
// Notifications are a supplementary channel: when the gateway reports the
// capability unsupported or not granted the observation is dropped with a
// diagnostic log and the watcher carries on.
type Watcher struct {
	gateway *notify.Gateway
	logger  hclog.Logger

	mu           sync.Mutex
	lastNotified map[string]Status
}

// NewWatcher creates a Watcher over the given gateway. The gateway is owned
// by the caller; it is not released when the watcher goes away.
// Supported options:
//
//	WithLogger
func NewWatcher(g *notify.Gateway, opt ...Option) (*Watcher, error) {
	const op = "workflow.NewWatcher"
	if g == nil {
		return nil, fmt.Errorf("%s: gateway is nil: %w", op, ErrNilParameter)
	}
	opts := getWatcherOpts(opt...)
	return &Watcher{
		gateway:      g,
		logger:       opts.withLogger,
		lastNotified: map[string]Status{},
	}, nil
}

// Observe applies the transition rule for one (workflow, status)
// observation and reports whether a notification was emitted:
//
//   - a repeat of the last notified status is a no-op
//   - a non-terminal status is a no-op
//   - a drop by the gateway (unsupported, not granted) is a no-op; the
//     observation is not remembered and there is no deferred emission
//   - otherwise the status-specific notification is emitted and the status
//     becomes the workflow's last notified status
func (w *Watcher) Observe(ctx context.Context, workflowID string, status Status) (bool, error) {
	const op = "Watcher.Observe"
	if workflowID == "" {
		return false, fmt.Errorf("%s: workflow id is empty: %w", op, ErrInvalidParameter)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if status == w.lastNotified[workflowID] {
		return false, nil
	}
	if !status.IsTerminal() {
		return false, nil
	}

	if _, err := w.gateway.Send(ctx, notificationFor(workflowID, status)); err != nil {
		if errors.Is(err, notify.ErrUnsupported) || errors.Is(err, notify.ErrPermissionDenied) {
			w.logger.Debug("dropping workflow notification", "workflow", workflowID, "status", status)
			return false, nil
		}
		return false, fmt.Errorf("%s: unable to send notification: %w", op, err)
	}

	w.lastNotified[workflowID] = status
	return true, nil
}

// Reset discards the tracker for workflowID; the next terminal observation
// for it will notify again.
func (w *Watcher) Reset(workflowID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.lastNotified, workflowID)
}

// notificationFor builds the status-specific notification. The tag is the
// (workflow, status) dedup key, so a device which replaces by tag collapses
// any double delivery of the same transition.
func notificationFor(workflowID string, status Status) notify.Notification {
	n := notify.Notification{
		Icon:  "/icons/notification.png",
		Badge: "/icons/badge.png",
		Tag:   fmt.Sprintf("%s:%s", workflowID, status),
	}
	switch status {
	case StatusCompleted:
		n.Title = "Review complete"
		n.Body = fmt.Sprintf("Workflow %s finished. Your draft manuscript is ready.", workflowID)
	case StatusFailed:
		n.Title = "Review failed"
		n.Body = fmt.Sprintf("Workflow %s stopped with an error. Open the app for details.", workflowID)
	case StatusNeedsReview:
		n.Title = "Input needed"
		n.Body = fmt.Sprintf("Workflow %s is waiting on your screening decisions.", workflowID)
		n.RequireInteraction = true
	}
	return n
}

// watcherOptions is the set of available options for Watcher functions
type watcherOptions struct {
	withLogger hclog.Logger
}

// watcherDefaults is a handy way to get the defaults at runtime and during
// unit tests.
func watcherDefaults() watcherOptions {
	return watcherOptions{
		withLogger: hclog.NewNullLogger(),
	}
}

// getWatcherOpts gets the watcher defaults and applies the opt overrides
// passed in
func getWatcherOpts(opt ...Option) watcherOptions {
	opts := watcherDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}
