package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// LogDevice is a Device which renders notifications to an hclog.Logger. It
// reports itself as always granted, which makes it a handy server-side
// stand-in for a real notification surface.
type LogDevice struct {
	logger hclog.Logger
}

// ensure that LogDevice implements the Device interface
var _ Device = (*LogDevice)(nil)

// NewLogDevice makes a LogDevice over the given logger.
func NewLogDevice(logger hclog.Logger) (*LogDevice, error) {
	if logger == nil {
		return nil, fmt.Errorf("notify.NewLogDevice: logger is nil: %w", ErrNilParameter)
	}
	return &LogDevice{logger: logger}, nil
}

// Permission implements the Device.Permission() interface function
func (d *LogDevice) Permission() Permission { return PermissionGranted }

// RequestPermission implements the Device.RequestPermission() interface
// function
func (d *LogDevice) RequestPermission(ctx context.Context) (Permission, error) {
	return PermissionGranted, nil
}

// Show implements the Device.Show() interface function
func (d *LogDevice) Show(ctx context.Context, n Notification) (Delivery, error) {
	d.logger.Info("notification", "title", n.Title, "body", n.Body, "tag", n.Tag)
	return &logDelivery{logger: d.logger, tag: n.Tag}, nil
}

type logDelivery struct {
	logger hclog.Logger
	tag    string
	once   sync.Once
}

func (d *logDelivery) Close() {
	d.once.Do(func() {
		d.logger.Debug("notification dismissed", "tag", d.tag)
	})
}

func (d *logDelivery) OnClick(fn func()) {
	// nothing to click on a log line
}
