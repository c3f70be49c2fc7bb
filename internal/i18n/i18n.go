// Package i18n provides the localized message catalog used for notices, error
// messages, error details, settings labels and summarization prompts.
//
// Catalogs are embedded YAML files (one per language) decoded once on first use
// and treated as read-only afterwards. Unsupported languages fall back to English.
package i18n

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Language is a supported display language code (ISO 639-1).
type Language string

// DefaultLanguage is used whenever a requested language has no catalog.
const DefaultLanguage Language = "en"

// Messages is the full set of localized strings for one language.
type Messages struct {
	Settings     SettingsMessages `yaml:"settings"`
	Notices      NoticeMessages   `yaml:"notices"`
	Errors       ErrorMessages    `yaml:"errors"`
	ErrorDetails DetailMessages   `yaml:"error_details"`
	Prompts      PromptMessages   `yaml:"prompts"`
}

// SettingsMessages holds labels and descriptions for user settings.
type SettingsMessages struct {
	APIKeyName                 string `yaml:"api_key_name"`
	APIKeyDesc                 string `yaml:"api_key_desc"`
	ModelName                  string `yaml:"model_name"`
	ModelDesc                  string `yaml:"model_desc"`
	AutoSummarizeName          string `yaml:"auto_summarize_name"`
	AutoSummarizeDesc          string `yaml:"auto_summarize_desc"`
	WatchFolderName            string `yaml:"watch_folder_name"`
	WatchFolderDesc            string `yaml:"watch_folder_desc"`
	SummaryPositionName        string `yaml:"summary_position_name"`
	SummaryPositionDesc        string `yaml:"summary_position_desc"`
	SummaryPositionTop         string `yaml:"summary_position_top"`
	SummaryPositionBottom      string `yaml:"summary_position_bottom"`
	SummaryPositionFrontmatter string `yaml:"summary_position_frontmatter"`
	SummaryLengthName          string `yaml:"summary_length_name"`
	SummaryLengthDesc          string `yaml:"summary_length_desc"`
	SummaryLengthShort         string `yaml:"summary_length_short"`
	SummaryLengthMedium        string `yaml:"summary_length_medium"`
	SummaryLengthLong          string `yaml:"summary_length_long"`
	LanguageName               string `yaml:"language_name"`
	LanguageDesc               string `yaml:"language_desc"`
	ProviderName               string `yaml:"provider_name"`
	ProviderDesc               string `yaml:"provider_desc"`
}

// NoticeMessages holds progress notices shown to the user.
type NoticeMessages struct {
	GeneratingSummary string `yaml:"generating_summary"`
	SummaryGenerated  string `yaml:"summary_generated"`
}

// ErrorMessages holds one headline message per error code.
type ErrorMessages struct {
	APIKeyNotSet            string `yaml:"api_key_not_set"`
	ClientNotInitialized    string `yaml:"openai_client_not_initialized"`
	FileReadError           string `yaml:"file_read_error"`
	FileWriteError          string `yaml:"file_write_error"`
	NoActiveFile            string `yaml:"no_active_file"`
	FileAlreadySummarized   string `yaml:"file_already_summarized"`
	APIRequestFailed        string `yaml:"api_request_failed"`
	APIResponseEmpty        string `yaml:"api_response_empty"`
	APIRateLimit            string `yaml:"api_rate_limit"`
	APIInvalidRequest       string `yaml:"api_invalid_request"`
	APIAuthenticationError  string `yaml:"api_authentication_error"`
	APITimeout              string `yaml:"api_timeout"`
	APIConnectionError      string `yaml:"api_connection_error"`
	APINetworkError         string `yaml:"api_network_error"`
	ContentEmpty            string `yaml:"content_empty"`
	ContentTooLong          string `yaml:"content_too_long"`
	SummaryGenerationFailed string `yaml:"summary_generation_failed"`
	UnknownError            string `yaml:"unknown_error"`
}

// DetailMessages holds the supplementary detail templates used by the error classifier.
type DetailMessages struct {
	DNSError           string `yaml:"dns_error"`
	ConnectionRefused  string `yaml:"connection_refused"`
	ConnectionReset    string `yaml:"connection_reset"`
	FailedToConnect    string `yaml:"failed_to_connect"`
	InvalidAPIKey      string `yaml:"invalid_api_key"`
	RateLimitWait      string `yaml:"rate_limit_wait"`
	CheckRequestParams string `yaml:"check_request_params"`
	ServerError        string `yaml:"openai_server_error"`
	RequestTimedOut    string `yaml:"request_timed_out"`
	NetworkError       string `yaml:"network_error"`
}

// PromptMessages holds the completion prompt templates.
// UserPrompt contains the {length} and {content} placeholders.
type PromptMessages struct {
	SummaryLengthShort  string `yaml:"summary_length_short"`
	SummaryLengthMedium string `yaml:"summary_length_medium"`
	SummaryLengthLong   string `yaml:"summary_length_long"`
	UserPrompt          string `yaml:"user_prompt"`
	SystemPrompt        string `yaml:"system_prompt"`
}

//go:embed locales/*.yaml
var localeFS embed.FS

var (
	catalog     map[Language]*Messages
	supported   []Language
	matcher     language.Matcher
	catalogOnce sync.Once
	catalogErr  error
)

func load() {
	catalogOnce.Do(func() {
		entries, err := localeFS.ReadDir("locales")
		if err != nil {
			catalogErr = fmt.Errorf("read embedded locales: %w", err)
			return
		}

		catalog = make(map[Language]*Messages, len(entries))
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || path.Ext(name) != ".yaml" {
				continue
			}

			data, err := localeFS.ReadFile(path.Join("locales", name))
			if err != nil {
				catalogErr = fmt.Errorf("read locale %s: %w", name, err)
				return
			}

			var m Messages
			if err := yaml.Unmarshal(data, &m); err != nil {
				catalogErr = fmt.Errorf("parse locale %s: %w", name, err)
				return
			}
			catalog[Language(strings.TrimSuffix(name, ".yaml"))] = &m
		}

		if _, ok := catalog[DefaultLanguage]; !ok {
			catalogErr = fmt.Errorf("default locale %q missing", DefaultLanguage)
			return
		}

		supported = make([]Language, 0, len(catalog))
		for lang := range catalog {
			supported = append(supported, lang)
		}
		sort.Slice(supported, func(i, j int) bool {
			// default first so the matcher prefers it on ties
			if supported[i] == DefaultLanguage || supported[j] == DefaultLanguage {
				return supported[i] == DefaultLanguage
			}
			return supported[i] < supported[j]
		})

		tags := make([]language.Tag, 0, len(supported))
		for _, lang := range supported {
			tags = append(tags, language.Make(string(lang)))
		}
		matcher = language.NewMatcher(tags)
	})
}

// mustLoad panics if the embedded catalogs cannot be decoded.
func mustLoad() {
	load()
	if catalogErr != nil {
		panic(catalogErr)
	}
}

// T returns the messages for lang, falling back to English.
func T(lang Language) *Messages {
	mustLoad()
	if m, ok := catalog[lang]; ok {
		return m
	}
	return catalog[DefaultLanguage]
}

// IsSupported reports whether a catalog exists for lang.
func IsSupported(lang Language) bool {
	mustLoad()
	_, ok := catalog[lang]
	return ok
}

// Supported lists all languages with a catalog, English first.
func Supported() []Language {
	mustLoad()
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// Resolve maps a locale tag such as "ja-JP", "pt_BR.UTF-8" or "zh-Hans" to the
// closest supported language. ok is false when nothing matched, in which case
// DefaultLanguage is returned. "C" and "POSIX" count as no match.
func Resolve(tag string) (lang Language, ok bool) {
	mustLoad()

	tag = strings.TrimSpace(tag)
	if i := strings.IndexAny(tag, ".@"); i >= 0 {
		tag = tag[:i]
	}
	tag = strings.ReplaceAll(tag, "_", "-")
	if tag == "" || strings.EqualFold(tag, "C") || strings.EqualFold(tag, "POSIX") {
		return DefaultLanguage, false
	}

	_, index, confidence := matcher.Match(language.Make(tag))
	if confidence == language.No {
		return DefaultLanguage, false
	}
	return supported[index], true
}
