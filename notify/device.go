package notify

import (
	"context"
)

// Notification is the content handed to a Device. Tag is the device-level
// replacement key; when empty the Gateway generates one.
type Notification struct {
	Title              string
	Body               string
	Icon               string
	Badge              string
	Tag                string
	RequireInteraction bool
}

// Device abstracts the host's notification capability so the Gateway and any
// watcher built on it are testable without a real browser or desktop
// environment. Implementations are owned by a single Gateway and need not be
// concurrently safe beyond that.
type Device interface {
	// Permission reports the current permission state.
	Permission() Permission

	// RequestPermission prompts the user and reports the resulting state.
	// Callers should gate on Permission() first; the Gateway does.
	RequestPermission(ctx context.Context) (Permission, error)

	// Show renders the notification and returns a handle for it.
	// Activating a shown notification focuses the host surface and
	// dismisses it before any OnClick hook runs.
	Show(ctx context.Context, n Notification) (Delivery, error)
}

// Delivery is the handle for a shown notification.
type Delivery interface {
	// Close dismisses the notification. Close is idempotent.
	Close()

	// OnClick registers fn to run when the user activates the
	// notification.
	OnClick(fn func())
}
