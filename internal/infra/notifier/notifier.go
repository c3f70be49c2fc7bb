// Package notifier delivers short user-facing notices: progress messages and
// the display form of failures.
//
// The console notifier is the primary sink. Discord and Slack webhooks can be
// added to mirror notices to a chat channel; Multi fans a notice out to
// several sinks.
package notifier

import "context"

// Notifier sends a single notice.
type Notifier interface {
	// Notify delivers message once. Implementations apply their own rate
	// limiting and never retry a failed delivery.
	Notify(ctx context.Context, message string) error
}
