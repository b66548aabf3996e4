package application

import (
	"regexp"
	"strings"

	"transbot/internal/domain"
)

// translatePrefix recognises the start of a translate command; the full
// grammar is checked by ParseTranslateRequest.
var translatePrefix = regexp.MustCompile(`\A(?:bot\s+)?(?:2|⇒|to|tr)\s*\w{2}\s+`)

// Match is the result of classifying one message.
type Match struct {
	Intent domain.Intent
	// Text is the message with the bot mention tokens removed (MentionAck only).
	Text string
}

type rule struct {
	intent domain.Intent
	match  func(text string) (Match, bool)
}

// Matcher classifies messages with an ordered list of rules. The first rule
// that matches wins; later rules are not evaluated.
type Matcher struct {
	rules []rule
}

// NewMatcher builds the rule list for the bot whose user ID is botID.
func NewMatcher(botID string) *Matcher {
	mention := regexp.MustCompile(`<@!?` + regexp.QuoteMeta(botID) + `>+`)

	return &Matcher{rules: []rule{
		{intent: domain.IntentGreet, match: exact("hi", "bot hi")},
		{intent: domain.IntentMentionAck, match: func(text string) (Match, bool) {
			if botID == "" || !mention.MatchString(text) {
				return Match{}, false
			}
			rest := strings.Join(strings.Fields(mention.ReplaceAllString(text, " ")), " ")
			return Match{Text: rest}, true
		}},
		{intent: domain.IntentHelp, match: exact("bot help", "help")},
		{intent: domain.IntentTranslate, match: func(text string) (Match, bool) {
			return Match{}, translatePrefix.MatchString(text)
		}},
		{intent: domain.IntentUnknownCommand, match: func(text string) (Match, bool) {
			return Match{}, strings.HasPrefix(text, "bot")
		}},
	}}
}

// Match returns the intent of text; IntentIgnore when no rule applies.
func (m *Matcher) Match(text string) Match {
	for _, r := range m.rules {
		if res, ok := r.match(text); ok {
			res.Intent = r.intent
			return res
		}
	}
	return Match{Intent: domain.IntentIgnore}
}

func exact(candidates ...string) func(string) (Match, bool) {
	return func(text string) (Match, bool) {
		for _, c := range candidates {
			if text == c {
				return Match{}, true
			}
		}
		return Match{}, false
	}
}
