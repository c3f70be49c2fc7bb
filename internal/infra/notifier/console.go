package notifier

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// ConsoleNotifier writes each notice as one line to a writer, usually stderr.
type ConsoleNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsoleNotifier creates a ConsoleNotifier writing to w.
func NewConsoleNotifier(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{w: w}
}

// Notify writes message followed by a newline.
func (c *ConsoleNotifier) Notify(_ context.Context, message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := fmt.Fprintln(c.w, message); err != nil {
		return fmt.Errorf("write notice: %w", err)
	}
	return nil
}
