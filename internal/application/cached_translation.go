package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"transbot/internal/domain/entities"
	"transbot/internal/ports/output"
)

var _ output.TranslationService = (*CachedTranslationService)(nil)

// CachedTranslationService answers from the cache when it can and stores
// usable provider results. Cache errors are logged and never fail a call.
type CachedTranslationService struct {
	next     output.TranslationService
	cache    output.TranslationCache
	recorder output.Recorder
	logger   *logrus.Logger
}

func NewCachedTranslationService(next output.TranslationService, cache output.TranslationCache, recorder output.Recorder, logger *logrus.Logger) *CachedTranslationService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &CachedTranslationService{next: next, cache: cache, recorder: recorder, logger: logger}
}

func (s *CachedTranslationService) Translate(ctx context.Context, text, targetLang string) (*entities.TranslationResult, error) {
	log := s.logger.WithField("target_lang", targetLang)

	cached, err := s.cache.Get(ctx, targetLang, text)
	if err != nil {
		log.WithError(err).Warn("Translation cache lookup failed")
	}
	s.recorder.CacheLookup(cached != nil)
	if cached != nil {
		log.Debug("Translation cache hit")
		return cached, nil
	}

	result, err := s.next.Translate(ctx, text, targetLang)
	if err != nil {
		return result, err
	}
	if _, ok := result.NormalizedText(); ok && result.Code == 200 {
		if err := s.cache.Put(ctx, targetLang, text, result); err != nil {
			log.WithError(err).Warn("Translation cache store failed")
		}
	}
	return result, nil
}
