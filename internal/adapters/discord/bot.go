package discord

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"transbot/internal/config"
	"transbot/internal/ports/input"
	"transbot/internal/ports/output"
)

const eventQueueSize = 256

// UseCaseFactory builds the message use case once the bot's own user ID is
// known (after the gateway handshake).
type UseCaseFactory func(botID string, messenger output.Messenger) input.MessageUseCase

// Bot is the Discord adapter.
type Bot struct {
	session    *discordgo.Session
	config     *config.Config
	newUseCase UseCaseFactory
	queue      *eventQueue
	handler    *Handler
	logger     *logrus.Logger
	ready      atomic.Bool
}

// NewBot creates the Discord session. Handlers are wired in Start.
func NewBot(cfg *config.Config, newUseCase UseCaseFactory, logger *logrus.Logger) (*Bot, error) {
	if logger == nil {
		logger = logrus.New()
	}
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMessages |
		discordgo.IntentDirectMessages |
		discordgo.IntentMessageContent
	// Les handlers ne font qu'empiler dans la file : l'ordre d'arrivée est conservé.
	s.SyncEvents = true

	return &Bot{
		session:    s,
		config:     cfg,
		newUseCase: newUseCase,
		queue:      newEventQueue(eventQueueSize, logger),
		logger:     logger,
	}, nil
}

// Ready reports whether the gateway handshake completed.
func (b *Bot) Ready() bool {
	return b.ready.Load()
}

// Start runs the bot until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	b.session.AddHandler(b.onReady)
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	defer b.session.Close()

	botID := b.session.State.User.ID
	useCase := b.newUseCase(botID, NewMessenger(b.session))
	b.handler = NewHandler(useCase, b.queue, botID, time.Now(), b.logger)

	b.session.AddHandler(b.handler.OnMessageCreate)
	b.session.AddHandler(b.handler.OnGuildCreate)
	b.session.AddHandler(b.handler.OnInteractionCreate)

	for _, cmd := range commands {
		if _, err := b.session.ApplicationCommandCreate(botID, "", cmd); err != nil {
			b.logger.WithError(err).WithField("command", cmd.Name).Warn("⚠️ Failed to register command")
		}
	}

	b.logger.Info("🤖 Bot online, press CTRL+C to quit")
	b.queue.Run(ctx)
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.ready.Store(true)
	b.logger.WithFields(logrus.Fields{
		"bot":    r.User.Username,
		"guilds": len(r.Guilds),
	}).Info("Connected to Discord gateway")
}
