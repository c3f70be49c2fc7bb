// Package entity defines the core domain types of the summarizer: documents,
// user settings and the enumerations that drive summary placement and length.
package entity

// Document is a note read from the vault. Its text is treated as immutable;
// operations that modify a note produce a new text value.
type Document struct {
	Path string
	Text string
}

// InsertionMode selects where a generated summary is placed in a document.
type InsertionMode string

const (
	// InsertTop prepends a summary section before the original text.
	InsertTop InsertionMode = "top"

	// InsertBottom appends a summary section after the original text.
	InsertBottom InsertionMode = "bottom"

	// InsertFrontmatter stores the summary as a "summary" key in the YAML frontmatter.
	InsertFrontmatter InsertionMode = "frontmatter"
)

// InsertionModes lists all valid insertion modes.
var InsertionModes = []InsertionMode{InsertTop, InsertBottom, InsertFrontmatter}

// Valid reports whether m is a known insertion mode.
func (m InsertionMode) Valid() bool {
	for _, v := range InsertionModes {
		if m == v {
			return true
		}
	}
	return false
}

// SummaryLength selects how long the generated summary should be.
type SummaryLength string

const (
	// LengthShort asks for 3-5 lines.
	LengthShort SummaryLength = "short"

	// LengthMedium asks for one paragraph of 5-8 lines.
	LengthMedium SummaryLength = "medium"

	// LengthLong asks for 2-3 paragraphs.
	LengthLong SummaryLength = "long"
)

// SummaryLengths lists all valid summary lengths.
var SummaryLengths = []SummaryLength{LengthShort, LengthMedium, LengthLong}

// Valid reports whether l is a known summary length.
func (l SummaryLength) Valid() bool {
	for _, v := range SummaryLengths {
		if l == v {
			return true
		}
	}
	return false
}

// Provider identifies the completion API used for summarization.
type Provider string

const (
	// ProviderOpenAI uses the OpenAI chat completions API.
	ProviderOpenAI Provider = "openai"

	// ProviderAnthropic uses the Anthropic messages API.
	ProviderAnthropic Provider = "anthropic"

	// ProviderNoop returns a truncated copy of the input without calling any API.
	ProviderNoop Provider = "noop"
)

// Providers lists all valid providers.
var Providers = []Provider{ProviderOpenAI, ProviderAnthropic, ProviderNoop}

// Valid reports whether p is a known provider.
func (p Provider) Valid() bool {
	for _, v := range Providers {
		if p == v {
			return true
		}
	}
	return false
}

// RequiresAPIKey reports whether the provider needs credentials.
func (p Provider) RequiresAPIKey() bool {
	return p != ProviderNoop
}

const (
	// DefaultOpenAIModel is the model used by ProviderOpenAI unless configured otherwise.
	DefaultOpenAIModel = "gpt-4-turbo-preview"

	// DefaultAnthropicModel is the model used by ProviderAnthropic unless configured otherwise.
	DefaultAnthropicModel = "claude-sonnet-4-5-20250929"
)

// DefaultModel returns the model a provider uses when none is configured.
// ProviderNoop has no model and returns "noop".
func (p Provider) DefaultModel() string {
	switch p {
	case ProviderAnthropic:
		return DefaultAnthropicModel
	case ProviderNoop:
		return "noop"
	default:
		return DefaultOpenAIModel
	}
}

// ModelFor returns model unless it is empty or another provider's default
// model, in which case p's default model is returned.
func (p Provider) ModelFor(model string) string {
	if model == "" {
		return p.DefaultModel()
	}
	for _, other := range Providers {
		if other != p && model == other.DefaultModel() {
			return p.DefaultModel()
		}
	}
	return model
}
