package callback

import (
	"context"
	"fmt"
	"time"

	"github.com/revstack/session/oauth"
)

// DefaultSuccessPause is how long the success view is displayed before the
// deferred navigation to the return_to target fires.
const DefaultSuccessPause = 1500 * time.Millisecond

// Schedule arranges for navigate(target) to run once pause has elapsed. The
// pending navigation is tied to ctx: if ctx ends first, the navigation never
// fires. The returned cancel func stops a pending navigation and releases
// the ctx watcher; calling it after the navigation has fired is a no-op. At
// most one navigation ever fires per Schedule call.
func Schedule(ctx context.Context, pause time.Duration, target string, navigate func(target string)) (func(), error) {
	const op = "callback.Schedule"
	if ctx == nil {
		return nil, fmt.Errorf("%s: context is nil: %w", op, oauth.ErrNilParameter)
	}
	if navigate == nil {
		return nil, fmt.Errorf("%s: navigate func is nil: %w", op, oauth.ErrNilParameter)
	}
	if pause <= 0 {
		return nil, fmt.Errorf("%s: pause not greater than zero: %w", op, oauth.ErrInvalidParameter)
	}

	timer := time.AfterFunc(pause, func() {
		if ctx.Err() != nil {
			return
		}
		navigate(target)
	})
	stop := context.AfterFunc(ctx, func() {
		timer.Stop()
	})
	return func() {
		timer.Stop()
		stop()
	}, nil
}
