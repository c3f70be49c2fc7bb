// Command clip-summarize summarizes markdown notes with a completion API and
// writes the summary back into the note.
//
// Usage:
//
//	clip-summarize summarize notes/article.md
//	clip-summarize watch
//	clip-summarize settings show
//	clip-summarize settings set summary_position frontmatter
package main

import (
	"errors"
	"fmt"
	"os"

	"clip-summarize/internal/apperror"
)

// Build-time variables, set with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// application errors were already shown through the notifier
		var appErr *apperror.Error
		if !errors.As(err, &appErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
