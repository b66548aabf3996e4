package output

import (
	"context"

	"transbot/internal/domain/entities"
)

// TranslationService calls the external translation provider.
// A non-nil result may still carry no usable text; err is reserved for
// transport and decoding failures.
type TranslationService interface {
	Translate(ctx context.Context, text, targetLang string) (*entities.TranslationResult, error)
}

// TranslationCache memoizes provider results. Get returns nil, nil on miss.
type TranslationCache interface {
	Get(ctx context.Context, targetLang, text string) (*entities.TranslationResult, error)
	Put(ctx context.Context, targetLang, text string, result *entities.TranslationResult) error
}

// LanguageLookup maps a 2-letter language code to a country key.
// Unknown codes come back unchanged.
type LanguageLookup interface {
	Country(code string) string
}

// TranslationCachePurger removes expired cache entries.
type TranslationCachePurger interface {
	Purge(ctx context.Context) (int64, error)
}
