package entity

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// maxURLLength defines the maximum allowed length for URLs.
const maxURLLength = 2048

// ValidateURL validates the format of an endpoint URL such as an API base URL
// or a notification webhook. It checks that the URL is well-formed, uses the
// HTTP/HTTPS scheme, and has a host.
// Returns a ValidationError if the URL is invalid or empty.
func ValidateURL(field, rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: field, Message: "URL is required"}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: field, Message: fmt.Sprintf("parse URL: %v", err)}
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: field, Message: "URL must use http or https scheme"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: field, Message: "URL must have a valid host"}
	}

	return nil
}

// ValidateWatchFolder checks that a watch folder is a vault-relative path.
// The empty string means "watch the whole vault".
func ValidateWatchFolder(folder string) error {
	if folder == "" {
		return nil
	}

	if strings.HasPrefix(folder, "/") || strings.Contains(folder, "\\") {
		return &ValidationError{Field: "watch_folder", Message: "must be a vault-relative path using '/' separators"}
	}

	cleaned := path.Clean(folder)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return &ValidationError{Field: "watch_folder", Message: "must not point outside the vault"}
	}

	return nil
}
