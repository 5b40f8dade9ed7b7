// Package notify delivers best-effort push notifications. Failures are the
// caller's to log, never to propagate: a committed state transition is not
// rolled back because a push did not land.
package notify

import "context"

// Notifier defines the interface for sending a push notification to a device.
type Notifier interface {
	Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error
}

// NoOpNotifier is a notifier that does nothing.
type NoOpNotifier struct{}

// Send does nothing.
func (n *NoOpNotifier) Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
	return nil
}
