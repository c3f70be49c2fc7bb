// Package summarize implements the summarize use case: read a note, ask the
// configured completion provider for a summary, and write the note back with
// the summary inserted.
//
// Failures are reported as *apperror.Error values carrying a stable code and
// a message in the user's language. The same value is shown to the user
// through the Notifier, logged with its debug rendering and counted in
// metrics.
package summarize
