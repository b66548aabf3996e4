package discord

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"

	"transbot/internal/domain/entities"
)

const (
	commandTranslate = "translate"
	optionLang       = "lang"
	optionText       = "text"

	commandAck = "🔄 On it."
)

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        commandTranslate,
		Description: "Translate a text",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionLang,
				Description: "Target language code, e.g. es",
				Required:    true,
				MaxLength:   2,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionText,
				Description: "Text to translate",
				Required:    true,
			},
		},
	},
}

// OnInteractionCreate answers /translate. The command is rewritten as the
// equivalent chat message and goes through the same queue, so the reply
// lands in the channel like any other translation.
func (h *Handler) OnInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	msg, ok := commandMessage(i)
	if !ok {
		return
	}
	if err := respondEphemeral(s, i.Interaction, commandAck); err != nil {
		h.logger.WithError(err).WithField("channel_id", msg.ChannelID).Warn("Failed to acknowledge command")
	}
	h.queue.Push(func(ctx context.Context) {
		h.useCase.HandleMessage(ctx, msg)
	})
}

// commandMessage returns "bot to <lang> <text>" for a /translate call. An
// invalid language then gets the usual unknown-command reply.
func commandMessage(i *discordgo.InteractionCreate) (entities.IncomingMessage, bool) {
	if i == nil || i.Interaction == nil || i.Type != discordgo.InteractionApplicationCommand {
		return entities.IncomingMessage{}, false
	}
	data, ok := i.Data.(discordgo.ApplicationCommandInteractionData)
	if !ok || data.Name != commandTranslate {
		return entities.IncomingMessage{}, false
	}

	var lang, text string
	for _, opt := range data.Options {
		v, _ := opt.Value.(string)
		switch opt.Name {
		case optionLang:
			lang = strings.TrimSpace(v)
		case optionText:
			text = v
		}
	}

	user := i.User
	if i.Member != nil && i.Member.User != nil {
		user = i.Member.User
	}
	if user == nil {
		return entities.IncomingMessage{}, false
	}
	return entities.IncomingMessage{
		ChannelID: i.ChannelID,
		UserID:    user.ID,
		Text:      "bot to " + lang + " " + text,
		Direct:    i.GuildID == "",
	}, true
}
