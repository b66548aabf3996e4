package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"transbot/internal/domain/entities"
	"transbot/internal/ports/input"
)

// Handler turns gateway events into use-case calls on the event queue.
type Handler struct {
	useCase   input.MessageUseCase
	queue     *eventQueue
	botID     string
	startedAt time.Time
	logger    *logrus.Logger
}

// NewHandler creates a Handler.
func NewHandler(
	useCase input.MessageUseCase,
	queue *eventQueue,
	botID string,
	startedAt time.Time,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		useCase:   useCase,
		queue:     queue,
		botID:     botID,
		startedAt: startedAt,
		logger:    logger,
	}
}

func (h *Handler) OnMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	msg, ok := incomingMessage(m, h.botID)
	if !ok {
		return
	}
	h.queue.Push(func(ctx context.Context) {
		h.useCase.HandleMessage(ctx, msg)
	})
}

// OnGuildCreate is Discord's closest match to "bot joined a channel":
// it fires for every guild at startup and again when the bot is invited.
func (h *Handler) OnGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	ev, ok := channelJoined(g, h.startedAt)
	if !ok {
		h.logger.WithField("guild_id", g.ID).Debug("Guild has no system channel, skipping welcome")
		return
	}
	h.queue.Push(func(ctx context.Context) {
		h.useCase.HandleChannelJoined(ctx, ev)
	})
}

// incomingMessage drops messages written by bots, including this one, so
// that replies are never read back as commands.
func incomingMessage(m *discordgo.MessageCreate, botID string) (entities.IncomingMessage, bool) {
	if m == nil || m.Message == nil || m.Author == nil {
		return entities.IncomingMessage{}, false
	}
	if m.Author.Bot || m.Author.ID == botID {
		return entities.IncomingMessage{}, false
	}
	return entities.IncomingMessage{
		ChannelID: m.ChannelID,
		UserID:    m.Author.ID,
		Text:      m.Content,
		Direct:    m.GuildID == "",
	}, true
}

func channelJoined(g *discordgo.GuildCreate, startedAt time.Time) (entities.ChannelJoined, bool) {
	if g == nil || g.Guild == nil || g.SystemChannelID == "" {
		return entities.ChannelJoined{}, false
	}
	return entities.ChannelJoined{
		ChannelID:   g.SystemChannelID,
		JoinerIsBot: g.JoinedAt.After(startedAt),
	}, true
}
