package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"transbot/internal/domain/entities"
	"transbot/internal/ports/output"
)

var _ output.TranslationCache = (*TranslationCacheRepository)(nil)

const (
	selectCachedTranslation = `
SELECT payload FROM translation_cache
WHERE target_lang = $1 AND source_text = $2 AND updated_at > $3`

	upsertCachedTranslation = `
INSERT INTO translation_cache (target_lang, source_text, payload)
VALUES ($1, $2, $3)
ON CONFLICT (target_lang, source_text)
DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`

	deleteExpiredTranslations = `DELETE FROM translation_cache WHERE updated_at <= $1`
)

// TranslationCacheRepository stores provider results in PostgreSQL.
// Rows older than ttl are ignored by Get and removed by Purge.
type TranslationCacheRepository struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

func NewTranslationCacheRepository(pool *pgxpool.Pool, ttl time.Duration) *TranslationCacheRepository {
	return &TranslationCacheRepository{pool: pool, ttl: ttl}
}

func (r *TranslationCacheRepository) Get(ctx context.Context, targetLang, text string) (*entities.TranslationResult, error) {
	var payload []byte
	err := r.pool.QueryRow(ctx, selectCachedTranslation, targetLang, text, r.cutoff()).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached translation: %w", err)
	}

	var result entities.TranslationResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("decode cached translation: %w", err)
	}
	return &result, nil
}

func (r *TranslationCacheRepository) Put(ctx context.Context, targetLang, text string, result *entities.TranslationResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode cached translation: %w", err)
	}
	if _, err := r.pool.Exec(ctx, upsertCachedTranslation, targetLang, text, payload); err != nil {
		return fmt.Errorf("put cached translation: %w", err)
	}
	return nil
}

// Purge deletes expired rows and returns how many were removed.
func (r *TranslationCacheRepository) Purge(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, deleteExpiredTranslations, r.cutoff())
	if err != nil {
		return 0, fmt.Errorf("purge cached translations: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *TranslationCacheRepository) cutoff() time.Time {
	return time.Now().Add(-r.ttl)
}
