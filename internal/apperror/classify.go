package apperror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"syscall"

	"github.com/anthropics/anthropic-sdk-go"
	openai "github.com/sashabaranov/go-openai"

	"clip-summarize/internal/i18n"
)

// Network error codes recognized by the classifier. They follow the POSIX
// errno names so failures from any transport map onto the same rules.
const (
	NetCodeNotFound    = "ENOTFOUND"
	NetCodeConnRefused = "ECONNREFUSED"
	NetCodeConnReset   = "ECONNRESET"
	NetCodeTimedOut    = "ETIMEDOUT"
	NetCodeConnAborted = "ECONNABORTED"
)

// Failure is a best-effort view of a failed completion call. Every field is
// optional; the zero value is a valid (if uninformative) failure.
type Failure struct {
	// Status is the HTTP status code, 0 when no response was received.
	Status int

	// Code is a POSIX-style network error code such as ECONNREFUSED.
	Code string

	// Message is the most specific human-readable message available,
	// preferring the API's own error message over the transport string.
	Message string

	// Text is the full string form of the failure.
	Text string
}

// Inspect extracts a Failure from err by looking through its wrap chain for
// API errors from the supported SDKs and for well-known network conditions.
func Inspect(err error) Failure {
	if err == nil {
		return Failure{}
	}

	f := Failure{
		Message: err.Error(),
		Text:    err.Error(),
	}

	var oaiAPIErr *openai.APIError
	var oaiReqErr *openai.RequestError
	var antErr *anthropic.Error
	switch {
	case errors.As(err, &oaiAPIErr):
		f.Status = oaiAPIErr.HTTPStatusCode
		if oaiAPIErr.Message != "" {
			f.Message = oaiAPIErr.Message
		}
	case errors.As(err, &oaiReqErr):
		f.Status = oaiReqErr.HTTPStatusCode
	case errors.As(err, &antErr):
		f.Status = antErr.StatusCode
		if msg := anthropicMessage(antErr.RawJSON()); msg != "" {
			f.Message = msg
		}
	}

	f.Code = networkCode(err)
	return f
}

// anthropicMessage pulls error.message out of an Anthropic error body.
func anthropicMessage(raw string) string {
	if raw == "" {
		return ""
	}
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		return ""
	}
	return body.Error.Message
}

// networkCode maps transport-level failures to POSIX-style codes.
func networkCode(err error) string {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return NetCodeTimedOut
		}
		return NetCodeNotFound
	}

	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return NetCodeConnRefused
	case errors.Is(err, syscall.ECONNRESET):
		return NetCodeConnReset
	case errors.Is(err, syscall.ECONNABORTED):
		return NetCodeConnAborted
	case errors.Is(err, syscall.ETIMEDOUT),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, os.ErrDeadlineExceeded):
		return NetCodeTimedOut
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NetCodeTimedOut
	}

	return ""
}

// ClassifyError is Classify(Inspect(err), lang).
func ClassifyError(err error, lang i18n.Language) (Code, string) {
	return Classify(Inspect(err), lang)
}

// Classify maps a failure to a stable code and a localized detail string.
// Rules are evaluated in order and the first match wins; in particular a
// connection failure takes precedence over any HTTP status it may carry.
// The returned details are never empty.
func Classify(f Failure, lang i18n.Language) (Code, string) {
	d := i18n.T(lang).ErrorDetails
	message := strings.ToLower(f.Message)
	text := strings.ToLower(f.Text)

	switch {
	case strings.Contains(message, "connection") ||
		strings.Contains(text, "connection") ||
		f.Code == NetCodeConnReset ||
		f.Code == NetCodeConnRefused ||
		f.Code == NetCodeNotFound:
		switch f.Code {
		case NetCodeNotFound:
			return APIConnectionError, d.DNSError
		case NetCodeConnRefused:
			return APIConnectionError, d.ConnectionRefused
		case NetCodeConnReset:
			return APIConnectionError, d.ConnectionReset
		default:
			return APIConnectionError, orDefault(f.Message, d.FailedToConnect)
		}

	case f.Status == 401:
		return APIAuthenticationError, d.InvalidAPIKey

	case f.Status == 429:
		return APIRateLimit, d.RateLimitWait

	case f.Status == 400:
		return APIInvalidRequest, orDefault(f.Message, d.CheckRequestParams)

	case f.Status == 500 || f.Status == 502 || f.Status == 503:
		return APIRequestFailed, fmt.Sprintf("%s (%d)", d.ServerError, f.Status)

	case f.Code == NetCodeTimedOut || f.Code == NetCodeConnAborted:
		return APITimeout, d.RequestTimedOut

	case strings.Contains(message, "network") || strings.Contains(text, "network") ||
		strings.Contains(message, "fetch") || strings.Contains(text, "fetch"):
		return APINetworkError, orDefault(f.Message, d.NetworkError)

	default:
		return APIRequestFailed, orDefault(f.Message, orDefault(f.Text, i18n.T(lang).Errors.UnknownError))
	}
}

func orDefault(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
