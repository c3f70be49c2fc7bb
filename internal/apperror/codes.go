// Package apperror defines the stable error taxonomy shown to users, the
// localized error value built from it, and the classifier that maps transport
// and completion-API failures onto that taxonomy.
package apperror

import "clip-summarize/internal/i18n"

// Code is a stable, user-visible error identifier.
// Codes are grouped into bands by their numeric part:
//
//	E001-E099  configuration
//	E101-E199  file operations
//	E201-E299  API communication
//	E301-E399  content processing
//	E900-E999  other
type Code string

const (
	APIKeyNotSet         Code = "E001"
	ClientNotInitialized Code = "E002"

	FileReadError         Code = "E101"
	FileWriteError        Code = "E102"
	NoActiveFile          Code = "E103"
	FileAlreadySummarized Code = "E104"

	APIRequestFailed       Code = "E201"
	APIResponseEmpty       Code = "E202"
	APIRateLimit           Code = "E203"
	APIInvalidRequest      Code = "E204"
	APIAuthenticationError Code = "E205"
	APITimeout             Code = "E206"
	APIConnectionError     Code = "E207"
	APINetworkError        Code = "E208"

	ContentEmpty            Code = "E301"
	ContentTooLong          Code = "E302"
	SummaryGenerationFailed Code = "E303"

	UnknownError Code = "E999"
)

// Category is the band a code belongs to.
type Category string

const (
	CategoryConfiguration Category = "configuration"
	CategoryFile          Category = "file"
	CategoryAPI           Category = "api"
	CategoryContent       Category = "content"
	CategoryOther         Category = "other"
)

// Codes lists every defined code in band order.
var Codes = []Code{
	APIKeyNotSet, ClientNotInitialized,
	FileReadError, FileWriteError, NoActiveFile, FileAlreadySummarized,
	APIRequestFailed, APIResponseEmpty, APIRateLimit, APIInvalidRequest,
	APIAuthenticationError, APITimeout, APIConnectionError, APINetworkError,
	ContentEmpty, ContentTooLong, SummaryGenerationFailed,
	UnknownError,
}

// Category returns the band of c.
func (c Code) Category() Category {
	if len(c) != 4 || c[0] != 'E' {
		return CategoryOther
	}
	switch c[1] {
	case '0':
		return CategoryConfiguration
	case '1':
		return CategoryFile
	case '2':
		return CategoryAPI
	case '3':
		return CategoryContent
	default:
		return CategoryOther
	}
}

// Message returns the localized headline for c. Unknown codes use the
// unknown-error message.
func (c Code) Message(lang i18n.Language) string {
	m := i18n.T(lang).Errors
	switch c {
	case APIKeyNotSet:
		return m.APIKeyNotSet
	case ClientNotInitialized:
		return m.ClientNotInitialized
	case FileReadError:
		return m.FileReadError
	case FileWriteError:
		return m.FileWriteError
	case NoActiveFile:
		return m.NoActiveFile
	case FileAlreadySummarized:
		return m.FileAlreadySummarized
	case APIRequestFailed:
		return m.APIRequestFailed
	case APIResponseEmpty:
		return m.APIResponseEmpty
	case APIRateLimit:
		return m.APIRateLimit
	case APIInvalidRequest:
		return m.APIInvalidRequest
	case APIAuthenticationError:
		return m.APIAuthenticationError
	case APITimeout:
		return m.APITimeout
	case APIConnectionError:
		return m.APIConnectionError
	case APINetworkError:
		return m.APINetworkError
	case ContentEmpty:
		return m.ContentEmpty
	case ContentTooLong:
		return m.ContentTooLong
	case SummaryGenerationFailed:
		return m.SummaryGenerationFailed
	default:
		return m.UnknownError
	}
}
