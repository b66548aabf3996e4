package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"transbot/internal/domain/entities"
	"transbot/internal/ports/output"
)

const rejectColor = "#A02020"

// ErrorReporter renders rejections as cards. It is the last place a failure
// can be shown to the user, so it never returns an error nor panics.
type ErrorReporter struct {
	messenger    output.Messenger
	translator   output.T
	recorder     output.Recorder
	logger       *logrus.Logger
	locale       string
	referenceURL string
}

func NewErrorReporter(
	messenger output.Messenger,
	translator output.T,
	recorder output.Recorder,
	logger *logrus.Logger,
	locale, referenceURL string,
) *ErrorReporter {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if logger == nil {
		logger = logrus.New()
	}
	if referenceURL == "" {
		referenceURL = DefaultReferenceURL
	}
	return &ErrorReporter{
		messenger:    messenger,
		translator:   translator,
		recorder:     recorder,
		logger:       logger,
		locale:       locale,
		referenceURL: referenceURL,
	}
}

// Card builds the rejection card for rej.
func (r *ErrorReporter) Card(rej entities.RejectionPayload) entities.Card {
	summary := r.translator.T(r.locale, "reject_summary", map[string]any{
		"Lang":   rej.TargetLang,
		"Text":   rej.SourceText,
		"Error":  rej.ErrorMessage,
		"Result": rej.RawResult.Dump(),
	})
	return entities.Card{
		Fallback:  summary,
		Pretext:   r.translator.T(r.locale, "reject_pretext", nil),
		Title:     r.translator.T(r.locale, "reject_title", nil),
		TitleLink: ReferenceLink(r.referenceURL, rej.SourceText, rej.TargetLang, ""),
		Text:      summary,
		Color:     rejectColor,
	}
}

// Report sends the rejection card to rej.ChannelID.
func (r *ErrorReporter) Report(ctx context.Context, rej entities.RejectionPayload) {
	log := r.logger.WithFields(logrus.Fields{
		"channel_id":  rej.ChannelID,
		"target_lang": rej.TargetLang,
		"error":       rej.ErrorMessage,
	})
	defer func() {
		if p := recover(); p != nil {
			r.recorder.ReportFailed()
			log.WithField("panic", p).Error("Rejection report panicked")
		}
	}()

	if err := r.messenger.SendCard(ctx, rej.ChannelID, r.Card(rej)); err != nil {
		r.recorder.ReportFailed()
		log.WithError(err).Error("Failed to send rejection card")
		return
	}
	log.Debugf("Failed “%s” to “%s”", rej.SourceText, rej.TargetLang)
}
