package notify

import (
	"context"
	"sync"
)

// TestDevice is a scriptable Device for tests: its permission state can be
// set at any time, every Show is recorded, and prompts resolve to a
// configurable answer. It is concurrently safe.
type TestDevice struct {
	mu sync.Mutex

	permission   Permission
	promptAnswer Permission

	promptCalls int
	shown       []Notification
	deliveries  []*TestDelivery
}

// ensure that TestDevice implements the Device interface
var _ Device = (*TestDevice)(nil)

// NewTestDevice makes a TestDevice starting in the given permission state.
// Prompts resolve to PermissionGranted unless SetPromptAnswer overrides
// that.
func NewTestDevice(p Permission) *TestDevice {
	return &TestDevice{
		permission:   p,
		promptAnswer: PermissionGranted,
	}
}

// SetPermission sets the current permission state.
func (d *TestDevice) SetPermission(p Permission) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.permission = p
}

// SetPromptAnswer sets the state a RequestPermission prompt resolves to.
func (d *TestDevice) SetPromptAnswer(p Permission) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.promptAnswer = p
}

// Permission implements the Device.Permission() interface function
func (d *TestDevice) Permission() Permission {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.permission
}

// RequestPermission implements the Device.RequestPermission() interface
// function; it records the prompt and resolves to the configured answer.
func (d *TestDevice) RequestPermission(ctx context.Context) (Permission, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.promptCalls++
	d.permission = d.promptAnswer
	return d.permission, nil
}

// Show implements the Device.Show() interface function; it records the
// notification.
func (d *TestDevice) Show(ctx context.Context, n Notification) (Delivery, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shown = append(d.shown, n)
	delivery := &TestDelivery{}
	d.deliveries = append(d.deliveries, delivery)
	return delivery, nil
}

// PromptCalls reports how many times the device was prompted.
func (d *TestDevice) PromptCalls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.promptCalls
}

// Shown returns a copy of every notification shown so far.
func (d *TestDevice) Shown() []Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	cp := make([]Notification, len(d.shown))
	copy(cp, d.shown)
	return cp
}

// Deliveries returns the handles for every shown notification.
func (d *TestDevice) Deliveries() []*TestDelivery {
	d.mu.Lock()
	defer d.mu.Unlock()
	cp := make([]*TestDelivery, len(d.deliveries))
	copy(cp, d.deliveries)
	return cp
}

// TestDelivery records Close and Click activity for one shown notification.
type TestDelivery struct {
	mu      sync.Mutex
	closed  bool
	onClick func()
}

// Close implements the Delivery.Close() interface function
func (d *TestDelivery) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
}

// OnClick implements the Delivery.OnClick() interface function
func (d *TestDelivery) OnClick(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onClick = fn
}

// Click simulates the user activating the notification: the handle is
// dismissed first, then the registered hook runs.
func (d *TestDelivery) Click() {
	d.mu.Lock()
	d.closed = true
	fn := d.onClick
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Closed reports whether the notification was dismissed.
func (d *TestDelivery) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}
