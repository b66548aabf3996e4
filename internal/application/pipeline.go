package application

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"transbot/internal/domain"
	"transbot/internal/domain/entities"
	"transbot/internal/ports/output"
)

const (
	DefaultTranslateTimeout = 10 * time.Second
	DefaultFlagFormat       = ":flag_%s:"
	DefaultReferenceURL     = "https://translate.yandex.ru/"
)

// PipelineOptions tunes the translation pipeline. Zero values take defaults.
type PipelineOptions struct {
	Timeout      time.Duration
	FlagFormat   string // fmt verb receives the country key
	ReferenceURL string
}

// Pipeline turns a translate command into a display or a rejection payload.
type Pipeline struct {
	service   output.TranslationService
	languages output.LanguageLookup
	recorder  output.Recorder
	logger    *logrus.Logger
	opts      PipelineOptions
}

func NewPipeline(
	service output.TranslationService,
	languages output.LanguageLookup,
	recorder output.Recorder,
	logger *logrus.Logger,
	opts PipelineOptions,
) *Pipeline {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTranslateTimeout
	}
	if opts.FlagFormat == "" {
		opts.FlagFormat = DefaultFlagFormat
	}
	if opts.ReferenceURL == "" {
		opts.ReferenceURL = DefaultReferenceURL
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Pipeline{
		service:   service,
		languages: languages,
		recorder:  recorder,
		logger:    logger,
		opts:      opts,
	}
}

// Translate parses rawText and runs the request. A parse failure never
// reaches the translation service.
func (p *Pipeline) Translate(ctx context.Context, channelID, rawText string) entities.TranslationOutcome {
	req, err := ParseTranslateRequest(rawText)
	if err != nil {
		p.logger.WithFields(logrus.Fields{
			"channel_id": channelID,
			"text":       rawText,
		}).Debug("Unparseable translate command")
		return p.reject(channelID, err, req, nil)
	}
	return p.Run(ctx, channelID, req)
}

// Run calls the translation service for req and builds exactly one payload.
func (p *Pipeline) Run(ctx context.Context, channelID string, req entities.TranslateRequest) (out entities.TranslationOutcome) {
	ctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			p.logger.WithField("panic", r).Error("Translation pipeline panicked")
			out = p.reject(channelID, domain.ErrTranslationFailed, req, nil)
		}
	}()

	start := time.Now()
	result, err := p.service.Translate(ctx, req.SourceText, req.TargetLang)
	elapsed := time.Since(start)

	fields := logrus.Fields{
		"channel_id":  channelID,
		"target_lang": req.TargetLang,
		"duration_ms": elapsed.Milliseconds(),
	}
	if err != nil {
		p.recorder.Translation(false, elapsed)
		p.logger.WithError(err).WithFields(fields).Warn("Translation service call failed")
		return p.reject(channelID, fmt.Errorf("%w: %w", domain.ErrTranslationFailed, err), req, result)
	}

	text, ok := result.NormalizedText()
	if !ok {
		p.recorder.Translation(false, elapsed)
		p.logger.WithFields(fields).WithField("result", result.Dump()).Warn("Translation returned no text")
		return p.reject(channelID, domain.ErrTranslationFailed, req, result)
	}

	srcMarker, dstMarker := req.TargetLang, domain.MarkerUnavailable
	detected := ""
	if src, dst, ok := result.LangPair(); ok && result.Code == 200 {
		srcMarker = fmt.Sprintf(p.opts.FlagFormat, p.languages.Country(src))
		dstMarker = fmt.Sprintf(p.opts.FlagFormat, p.languages.Country(dst))
		detected = src
	}

	p.recorder.Translation(true, elapsed)
	p.logger.WithFields(fields).Debugf("Translated “%s” to “%s”", req.SourceText, text)

	return entities.TranslationOutcome{Display: &entities.DisplayPayload{
		SrcMarker:      srcMarker,
		DstMarker:      dstMarker,
		OriginalText:   req.SourceText,
		TranslatedText: text,
		ReferenceLink:  ReferenceLink(p.opts.ReferenceURL, req.SourceText, req.TargetLang, detected),
	}}
}

func (p *Pipeline) reject(channelID string, err error, req entities.TranslateRequest, result *entities.TranslationResult) entities.TranslationOutcome {
	msg := domain.ErrTranslationFailed.Error()
	if errors.Is(err, domain.ErrInvalidInput) {
		msg = domain.ErrInvalidInput.Error()
	}
	return entities.TranslationOutcome{Rejection: &entities.RejectionPayload{
		ChannelID:    channelID,
		ErrorMessage: msg,
		TargetLang:   req.TargetLang,
		SourceText:   req.SourceText,
		RawResult:    result,
	}}
}

// ReferenceLink builds the manual translation URL for text. When the source
// language is unknown it guesses "es" for English targets and "en" otherwise.
func ReferenceLink(base, text, targetLang, sourceLang string) string {
	if sourceLang == "" {
		sourceLang = "en"
		if targetLang == "en" {
			sourceLang = "es"
		}
	}
	q := url.Values{}
	q.Set("text", text)
	q.Set("lang", sourceLang+"-"+targetLang)
	return base + "?" + q.Encode()
}
