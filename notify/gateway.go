// Copyright (c) Revstack, Inc.
// SPDX-License-Identifier: MPL-2.0

package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-uuid"
)

// DefaultDismissAfter is how long a shown notification stays up before the
// Gateway auto-dismisses it.
const DefaultDismissAfter = 5000 * time.Millisecond

// Gateway applies the permission and auto-dismiss policy on top of an
// injected Device. Construct one per subscribing owner and call Done() when
// the owner goes away so pending auto-dismiss timers are released.
type Gateway struct {
	device Device
	logger hclog.Logger

	dismissAfter time.Duration

	// backgroundCtx bounds the lifetime of auto-dismiss timers.
	backgroundCtx       context.Context
	backgroundCtxCancel context.CancelFunc
}

// NewGateway creates a Gateway over the given Device.
// Supported options:
//
//	WithLogger
//	WithDismissAfter
func NewGateway(d Device, opt ...Option) (*Gateway, error) {
	const op = "notify.NewGateway"
	if d == nil {
		return nil, fmt.Errorf("%s: device is nil: %w", op, ErrNilParameter)
	}
	opts := getGatewayOpts(opt...)
	ctx, cancel := context.WithCancel(context.Background())
	return &Gateway{
		device:              d,
		logger:              opts.withLogger,
		dismissAfter:        opts.withDismissAfter,
		backgroundCtx:       ctx,
		backgroundCtxCancel: cancel,
	}, nil
}

// Done releases the gateway's resources; any pending auto-dismiss timers are
// dropped without closing their notifications.
func (g *Gateway) Done() {
	g.backgroundCtxCancel()
}

// Supported reports whether the underlying device has a notification
// capability at all.
func (g *Gateway) Supported() bool {
	return g.device.Permission() != PermissionUnsupported
}

// Permission reports the device's current permission state.
func (g *Gateway) Permission() Permission {
	return g.device.Permission()
}

// RequestPermission is idempotent: granted returns true and denied or
// unsupported return false, all without prompting; only the default state
// reaches the device's prompt.
func (g *Gateway) RequestPermission(ctx context.Context) (bool, error) {
	const op = "Gateway.RequestPermission"
	switch p := g.device.Permission(); p {
	case PermissionGranted:
		return true, nil
	case PermissionDenied, PermissionUnsupported:
		return false, nil
	}
	p, err := g.device.RequestPermission(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: unable to request permission: %w", op, err)
	}
	return p == PermissionGranted, nil
}

// Send shows the notification when the capability is present and granted;
// otherwise it drops the notification with a warning and reports why. The
// device's Show is never invoked on a drop. Unless RequireInteraction is
// set, the shown notification is auto-dismissed after the configured pause;
// the timer is tied to the gateway's lifetime.
func (g *Gateway) Send(ctx context.Context, n Notification) (Delivery, error) {
	const op = "Gateway.Send"
	switch p := g.device.Permission(); p {
	case PermissionUnsupported:
		g.logger.Warn("notifications are not supported here; dropping", "title", n.Title)
		return nil, fmt.Errorf("%s: %w", op, ErrUnsupported)
	case PermissionGranted:
	default:
		g.logger.Warn("notification permission not granted; dropping", "permission", p, "title", n.Title)
		return nil, fmt.Errorf("%s: permission is %q: %w", op, p, ErrPermissionDenied)
	}
	if n.Title == "" {
		return nil, fmt.Errorf("%s: title is empty: %w", op, ErrInvalidParameter)
	}
	if n.Tag == "" {
		tag, err := uuid.GenerateUUID()
		if err != nil {
			return nil, fmt.Errorf("%s: unable to generate a tag: %w", op, ErrIdGeneratorFailed)
		}
		n.Tag = tag
	}

	d, err := g.device.Show(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("%s: unable to show notification: %w", op, err)
	}

	if !n.RequireInteraction {
		bgCtx := g.backgroundCtx
		timer := time.AfterFunc(g.dismissAfter, func() {
			if bgCtx.Err() != nil {
				return
			}
			d.Close()
		})
		context.AfterFunc(bgCtx, func() {
			timer.Stop()
		})
	}
	return d, nil
}

// gatewayOptions is the set of available options for Gateway functions
type gatewayOptions struct {
	withLogger       hclog.Logger
	withDismissAfter time.Duration
}

// gatewayDefaults is a handy way to get the defaults at runtime and during
// unit tests.
func gatewayDefaults() gatewayOptions {
	return gatewayOptions{
		withLogger:       hclog.NewNullLogger(),
		withDismissAfter: DefaultDismissAfter,
	}
}

// getGatewayOpts gets the gateway defaults and applies the opt overrides
// passed in
func getGatewayOpts(opt ...Option) gatewayOptions {
	opts := gatewayDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}
