package apperror

import (
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"clip-summarize/internal/i18n"
)

// Error is a localized, user-facing failure. It is built once at the failure
// site and not modified afterwards.
type Error struct {
	Code     Code
	Message  string
	Details  string
	Cause    error
	Language i18n.Language
}

// stackTracer is implemented by errors carrying a github.com/pkg/errors stack.
type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// New builds an Error for code in lang. cause and details are optional.
// A stack trace is attached to cause when it does not already carry one, so
// DebugInfo can point at the failure site.
func New(code Code, lang i18n.Language, cause error, details string) *Error {
	if !i18n.IsSupported(lang) {
		lang = i18n.DefaultLanguage
	}

	if cause != nil {
		var st stackTracer
		if !errors.As(cause, &st) {
			cause = pkgerrors.WithStack(cause)
		}
	}

	return &Error{
		Code:     code,
		Message:  code.Message(lang),
		Details:  details,
		Cause:    cause,
		Language: lang,
	}
}

// Error implements the error interface with the display rendering.
func (e *Error) Error() string {
	return e.DisplayMessage()
}

// Unwrap exposes the original cause to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// DisplayMessage renders the single-line notice shown to users:
// "[E207] message (details)".
func (e *Error) DisplayMessage() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Details != "" {
		msg += fmt.Sprintf(" (%s)", e.Details)
	}
	return msg
}

// DebugInfo renders a verbose multi-line description for logs. It is never
// shown to end users.
func (e *Error) DebugInfo() string {
	lines := []string{
		"Error Code: " + string(e.Code),
		"Message: " + e.Message,
	}
	if e.Details != "" {
		lines = append(lines, "Details: "+e.Details)
	}
	if e.Cause != nil {
		lines = append(lines, "Original Error: "+e.Cause.Error())

		var st stackTracer
		if errors.As(e.Cause, &st) {
			lines = append(lines, "Stack:"+strings.TrimRight(fmt.Sprintf("%+v", st.StackTrace()), "\n"))
		}
	}
	return strings.Join(lines, "\n")
}

// From returns the *Error in err's chain, or wraps err as UnknownError.
// It returns nil for a nil err.
func From(err error, lang i18n.Language) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return New(UnknownError, lang, err, err.Error())
}

// HasCode reports whether err's chain contains an *Error with the given code.
func HasCode(err error, code Code) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Code == code
}
