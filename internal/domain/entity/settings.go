package entity

import (
	"fmt"
	"strconv"
	"strings"

	"clip-summarize/internal/i18n"
)

// Settings is the persisted user configuration of the summarizer.
type Settings struct {
	APIKey          string        `yaml:"api_key"`
	Model           string        `yaml:"model"`
	AutoSummarize   bool          `yaml:"auto_summarize"`
	WatchFolder     string        `yaml:"watch_folder"`
	SummaryPosition InsertionMode `yaml:"summary_position"`
	SummaryLength   SummaryLength `yaml:"summary_length"`
	Language        i18n.Language `yaml:"language"`
	Provider        Provider      `yaml:"provider"`
}

// DefaultSettings returns the settings used when nothing has been stored yet.
func DefaultSettings() Settings {
	return Settings{
		APIKey:          "",
		Model:           DefaultOpenAIModel,
		AutoSummarize:   true,
		WatchFolder:     "",
		SummaryPosition: InsertTop,
		SummaryLength:   LengthMedium,
		Language:        i18n.DefaultLanguage,
		Provider:        ProviderOpenAI,
	}
}

// Validate checks every enumerated field. The API key is not required here;
// a missing key is reported when a summary is requested.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.Model) == "" {
		return &ValidationError{Field: "model", Message: "model is required"}
	}

	if !s.SummaryPosition.Valid() {
		return &ValidationError{
			Field:   "summary_position",
			Message: fmt.Sprintf("must be one of %v, got %q", InsertionModes, s.SummaryPosition),
		}
	}

	if !s.SummaryLength.Valid() {
		return &ValidationError{
			Field:   "summary_length",
			Message: fmt.Sprintf("must be one of %v, got %q", SummaryLengths, s.SummaryLength),
		}
	}

	if !i18n.IsSupported(s.Language) {
		return &ValidationError{
			Field:   "language",
			Message: fmt.Sprintf("unsupported language %q", s.Language),
		}
	}

	if !s.Provider.Valid() {
		return &ValidationError{
			Field:   "provider",
			Message: fmt.Sprintf("must be one of %v, got %q", Providers, s.Provider),
		}
	}

	if err := ValidateWatchFolder(s.WatchFolder); err != nil {
		return err
	}

	return nil
}

// HasAPIKey reports whether credentials are configured for the selected provider.
func (s Settings) HasAPIKey() bool {
	return !s.Provider.RequiresAPIKey() || strings.TrimSpace(s.APIKey) != ""
}

// MaskedAPIKey returns the API key with all but the last four characters hidden.
func (s Settings) MaskedAPIKey() string {
	key := strings.TrimSpace(s.APIKey)
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

// SettingKeys lists the keys accepted by Set and Get, in display order.
var SettingKeys = []string{
	"api_key",
	"model",
	"auto_summarize",
	"watch_folder",
	"summary_position",
	"summary_length",
	"language",
	"provider",
}

// Set parses value into the field named by key and validates the result.
// s is left unchanged when an error is returned.
func (s *Settings) Set(key, value string) error {
	next := *s
	value = strings.TrimSpace(value)

	switch key {
	case "api_key":
		next.APIKey = value
	case "model":
		next.Model = value
	case "auto_summarize":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return &ValidationError{Field: key, Message: fmt.Sprintf("must be true or false, got %q", value)}
		}
		next.AutoSummarize = b
	case "watch_folder":
		next.WatchFolder = strings.TrimSuffix(value, "/")
	case "summary_position":
		next.SummaryPosition = InsertionMode(value)
	case "summary_length":
		next.SummaryLength = SummaryLength(value)
	case "language":
		// accept locale tags such as "ja-JP" or "pt_BR.UTF-8"
		next.Language = i18n.Language(value)
		if !i18n.IsSupported(next.Language) {
			if resolved, ok := i18n.Resolve(value); ok {
				next.Language = resolved
			}
		}
	case "provider":
		next.Provider = Provider(value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*s = next
	return nil
}

// Get returns the display value of key. The API key is masked.
func (s Settings) Get(key string) (string, error) {
	switch key {
	case "api_key":
		return s.MaskedAPIKey(), nil
	case "model":
		return s.Model, nil
	case "auto_summarize":
		return strconv.FormatBool(s.AutoSummarize), nil
	case "watch_folder":
		return s.WatchFolder, nil
	case "summary_position":
		return string(s.SummaryPosition), nil
	case "summary_length":
		return string(s.SummaryLength), nil
	case "language":
		return string(s.Language), nil
	case "provider":
		return string(s.Provider), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}
}
