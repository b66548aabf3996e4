package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslator_RendersTemplates(t *testing.T) {
	tr := NewTranslator("en", nil)

	got := tr.T("en", "greet", map[string]any{"User": "U42", "Help": "HELP"})
	assert.Equal(t, "Hello <@U42>. Qué tal?\nHELP", got)

	got = tr.T("", "translate_success", map[string]any{
		"Src":        ":flag_gb:",
		"Dst":        ":flag_fr:",
		"Original":   "hello world",
		"Translated": "bonjour le monde",
		"Link":       "https://example.test/",
	})
	assert.Equal(t, ":flag_gb:  hello world  ⇒  :flag_fr:  **bonjour le monde**\n<https://example.test/>", got)
}

func TestTranslator_HelpListsCommands(t *testing.T) {
	help := NewTranslator("en", nil).T("en", "help", nil)

	for _, want := range []string{"`bot hi`", "`2es`", "`⇒ru`", "`to en`", "`bot help`"} {
		assert.Contains(t, help, want)
	}
}

func TestTranslator_FallsBack(t *testing.T) {
	tr := NewTranslator("en", nil)

	assert.Equal(t, "It's nice to talk to you directly.", tr.T("fr", "greet_direct", nil))
	assert.Equal(t, "no_such_key", tr.T("en", "no_such_key", nil))
	assert.Empty(t, tr.T("en", "", nil))
}

func TestNewTranslator_InvalidLocale(t *testing.T) {
	tr := NewTranslator("not a locale", nil)
	assert.Equal(t, "en", tr.defaultLanguage.String())
}
