package summarizer

import (
	"strings"

	"clip-summarize/internal/domain/entity"
	"clip-summarize/internal/i18n"
)

// Prompt is the message pair sent to a completion API.
type Prompt struct {
	System string
	User   string
}

// BuildPrompt renders the localized prompt for text. The {length} placeholder
// receives the phrase for length and {content} receives text verbatim.
// Unknown lengths use the medium phrase.
func BuildPrompt(lang i18n.Language, length entity.SummaryLength, text string) Prompt {
	p := i18n.T(lang).Prompts

	phrase := p.SummaryLengthMedium
	switch length {
	case entity.LengthShort:
		phrase = p.SummaryLengthShort
	case entity.LengthLong:
		phrase = p.SummaryLengthLong
	}

	r := strings.NewReplacer("{length}", phrase, "{content}", text)
	return Prompt{
		System: p.SystemPrompt,
		User:   r.Replace(p.UserPrompt),
	}
}
