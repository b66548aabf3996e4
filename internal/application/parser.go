package application

import (
	"regexp"

	"transbot/internal/domain"
	"transbot/internal/domain/entities"
)

var (
	translateGrammar = regexp.MustCompile(`(?s)\A(?:bot\s+)?(?:2|⇒|to|tr)\s*(\w{2})\s+(.*)\z`)
	// Used only to recover what the user typed when the grammar fails.
	translateLoose = regexp.MustCompile(`(?s)\A(?:bot\s+)?(?:2|⇒|to|tr)\s*(\w*)\s*(.*)\z`)
)

// ParseTranslateRequest parses "[bot] <2|⇒|to|tr>[ ]<xx> <text>".
// On failure it returns domain.ErrInvalidInput together with whatever
// language and text could be extracted, for display in the rejection.
func ParseTranslateRequest(text string) (entities.TranslateRequest, error) {
	if m := translateGrammar.FindStringSubmatch(text); m != nil && m[2] != "" {
		return entities.TranslateRequest{TargetLang: m[1], SourceText: m[2]}, nil
	}
	var partial entities.TranslateRequest
	if m := translateLoose.FindStringSubmatch(text); m != nil {
		partial = entities.TranslateRequest{TargetLang: m[1], SourceText: m[2]}
	}
	return partial, domain.ErrInvalidInput
}
