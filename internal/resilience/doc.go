// Package resilience provides fault tolerance for calls to completion APIs.
//
// Requests are never retried. A circuit breaker wraps each provider so that a
// failing endpoint is rejected quickly instead of being hammered on every new note:
//
//	cb := circuitbreaker.New(circuitbreaker.OpenAIAPIConfig())
//	summary, err := cb.Call(func() (string, error) {
//	    return callCompletionAPI(ctx)
//	})
//	if circuitbreaker.IsRejected(err) {
//	    // provider is cooling down
//	}
package resilience
