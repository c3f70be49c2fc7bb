package notifier

import "context"

// NoOpNotifier discards notices. It is used when notifications are disabled
// to avoid nil checks in the code.
type NoOpNotifier struct{}

// NewNoOpNotifier creates a new NoOpNotifier instance.
func NewNoOpNotifier() *NoOpNotifier {
	return &NoOpNotifier{}
}

// Notify does nothing and returns nil.
func (n *NoOpNotifier) Notify(context.Context, string) error {
	return nil
}
