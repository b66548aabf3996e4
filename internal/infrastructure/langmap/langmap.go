// Package langmap maps language codes to the country codes used for flag
// markers.
package langmap

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"transbot/internal/ports/output"
)

//go:embed languages.toml
var defaultAsset []byte

var _ output.LanguageLookup = (*Table)(nil)

type asset struct {
	Derive    []string          `toml:"derive"`
	Countries map[string]string `toml:"countries"`
}

// Table is an immutable language -> country map.
type Table struct {
	countries map[string]string
}

// New copies countries into a Table. Keys and values are lower-cased.
func New(countries map[string]string) *Table {
	t := &Table{countries: make(map[string]string, len(countries))}
	for lang, country := range countries {
		t.countries[strings.ToLower(lang)] = strings.ToLower(country)
	}
	return t
}

// Load builds the table from the embedded asset.
func Load() (*Table, error) {
	return Parse(defaultAsset)
}

// Parse builds a table from a TOML asset.
func Parse(data []byte) (*Table, error) {
	var a asset
	if err := toml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("langmap: decode asset: %w", err)
	}

	countries := make(map[string]string, len(a.Derive)+len(a.Countries))
	for _, code := range a.Derive {
		country, err := likelyCountry(code)
		if err != nil {
			return nil, err
		}
		countries[code] = country
	}
	for lang, country := range a.Countries {
		countries[lang] = country
	}
	return New(countries), nil
}

func likelyCountry(code string) (string, error) {
	base, err := language.ParseBase(code)
	if err != nil {
		return "", fmt.Errorf("langmap: invalid language %q: %w", code, err)
	}
	tag, err := language.Compose(base)
	if err != nil {
		return "", fmt.Errorf("langmap: compose %q: %w", code, err)
	}
	region, conf := tag.Region()
	if conf == language.No || region.String() == "ZZ" {
		return "", fmt.Errorf("langmap: no likely region for %q", code)
	}
	return strings.ToLower(region.String()), nil
}

// Country returns the country key for code, or code itself when unknown.
func (t *Table) Country(code string) string {
	if country, ok := t.countries[strings.ToLower(code)]; ok {
		return country
	}
	return code
}

// Len reports the number of known languages.
func (t *Table) Len() int {
	return len(t.countries)
}
