package application

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"transbot/internal/domain"
	"transbot/internal/domain/entities"
	"transbot/internal/ports/input"
	"transbot/internal/ports/output"
)

var _ input.MessageUseCase = (*Dispatcher)(nil)

// DispatcherOptions holds reply settings. GreetDelay <= 0 disables the
// pause before the greeting.
type DispatcherOptions struct {
	Locale     string
	GreetDelay time.Duration
}

// Dispatcher routes each incoming message to exactly one handler.
type Dispatcher struct {
	matcher    *Matcher
	pipeline   *Pipeline
	reporter   *ErrorReporter
	messenger  output.Messenger
	translator output.T
	recorder   output.Recorder
	logger     *logrus.Logger
	opts       DispatcherOptions
}

func NewDispatcher(
	matcher *Matcher,
	pipeline *Pipeline,
	reporter *ErrorReporter,
	messenger output.Messenger,
	translator output.T,
	recorder output.Recorder,
	logger *logrus.Logger,
	opts DispatcherOptions,
) *Dispatcher {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Dispatcher{
		matcher:    matcher,
		pipeline:   pipeline,
		reporter:   reporter,
		messenger:  messenger,
		translator: translator,
		recorder:   recorder,
		logger:     logger,
		opts:       opts,
	}
}

// HandleMessage classifies msg and runs its handler. Failures are logged;
// a panic in one handler does not escape to the event loop.
func (d *Dispatcher) HandleMessage(ctx context.Context, msg entities.IncomingMessage) {
	m := d.matcher.Match(msg.Text)
	d.recorder.Intent(m.Intent)
	if m.Intent == domain.IntentIgnore {
		return
	}

	log := d.logger.WithFields(logrus.Fields{
		"channel_id": msg.ChannelID,
		"user_id":    msg.UserID,
		"intent":     string(m.Intent),
	})
	defer func() {
		if p := recover(); p != nil {
			log.WithField("panic", p).Error("Message handler panicked")
		}
	}()

	var err error
	switch m.Intent {
	case domain.IntentGreet:
		err = d.greet(ctx, msg)
	case domain.IntentMentionAck:
		log.WithField("text", m.Text).Debug("Bot mentioned")
		err = d.reply(ctx, msg.ChannelID, "mention_ack", map[string]any{"User": msg.UserID})
	case domain.IntentHelp:
		err = d.reply(ctx, msg.ChannelID, "help", nil)
	case domain.IntentTranslate:
		log.Debug("Translation requested")
		err = d.translate(ctx, msg)
	case domain.IntentUnknownCommand:
		err = d.reply(ctx, msg.ChannelID, "unknown_command", map[string]any{
			"User": msg.UserID,
			"Help": d.help(),
		})
	}
	if err != nil {
		log.WithError(err).Error("Failed to reply")
		return
	}
	log.Debug("Message handled")
}

// HandleChannelJoined welcomes the channel when the bot is the one who joined.
func (d *Dispatcher) HandleChannelJoined(ctx context.Context, ev entities.ChannelJoined) {
	log := d.logger.WithField("channel_id", ev.ChannelID)
	if !ev.JoinerIsBot {
		log.Debug("Someone else joined the channel")
		return
	}
	if err := d.reply(ctx, ev.ChannelID, "channel_joined", map[string]any{"Help": d.help()}); err != nil {
		log.WithError(err).Error("Failed to send welcome message")
		return
	}
	log.Debug("Joined channel")
}

func (d *Dispatcher) greet(ctx context.Context, msg entities.IncomingMessage) error {
	d.typing(ctx, msg.ChannelID)
	if d.opts.GreetDelay > 0 {
		timer := time.NewTimer(d.opts.GreetDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	err := d.reply(ctx, msg.ChannelID, "greet", map[string]any{
		"User": msg.UserID,
		"Help": d.help(),
	})
	if err != nil {
		return err
	}
	if msg.Direct {
		return d.reply(ctx, msg.ChannelID, "greet_direct", nil)
	}
	return nil
}

func (d *Dispatcher) translate(ctx context.Context, msg entities.IncomingMessage) error {
	d.typing(ctx, msg.ChannelID)

	outcome := d.pipeline.Translate(ctx, msg.ChannelID, msg.Text)
	if !outcome.Succeeded() {
		d.reporter.Report(ctx, *outcome.Rejection)
		return nil
	}
	return d.reply(ctx, msg.ChannelID, "translate_success", map[string]any{
		"Src":        outcome.Display.SrcMarker,
		"Dst":        outcome.Display.DstMarker,
		"Original":   outcome.Display.OriginalText,
		"Translated": outcome.Display.TranslatedText,
		"Link":       outcome.Display.ReferenceLink,
	})
}

func (d *Dispatcher) reply(ctx context.Context, channelID, key string, data map[string]any) error {
	if err := d.messenger.SendMessage(ctx, channelID, d.translator.T(d.opts.Locale, key, data)); err != nil {
		return fmt.Errorf("send %s: %w", key, err)
	}
	return nil
}

// typing is best effort: a failed indicator does not cancel the reply.
func (d *Dispatcher) typing(ctx context.Context, channelID string) {
	if err := d.messenger.SendTyping(ctx, channelID); err != nil {
		d.logger.WithError(err).WithField("channel_id", channelID).Warn("Failed to send typing indicator")
	}
}

func (d *Dispatcher) help() string {
	return d.translator.T(d.opts.Locale, "help", nil)
}

type nopRecorder struct{}

func (nopRecorder) Intent(domain.Intent) {}

func (nopRecorder) Translation(bool, time.Duration) {}

func (nopRecorder) CacheLookup(bool) {}

func (nopRecorder) ReportFailed() {}
