package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"transbot/internal/domain/entities"
	"transbot/internal/ports/output"
	pkgdiscord "transbot/pkg/discord"
)

var _ output.Messenger = (*Messenger)(nil)

// Messenger implements output.Messenger on a discordgo session.
type Messenger struct {
	session *discordgo.Session
}

func NewMessenger(s *discordgo.Session) *Messenger {
	return &Messenger{session: s}
}

func (m *Messenger) SendMessage(ctx context.Context, channelID, text string) error {
	content := pkgdiscord.Truncate(text, pkgdiscord.MaxMessageLength)
	if _, err := m.session.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("channel message send: %w", err)
	}
	return nil
}

func (m *Messenger) SendTyping(ctx context.Context, channelID string) error {
	if err := m.session.ChannelTyping(channelID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("channel typing: %w", err)
	}
	return nil
}

func (m *Messenger) SendCard(ctx context.Context, channelID string, card entities.Card) error {
	_, err := m.session.ChannelMessageSendComplex(channelID, pkgdiscord.CardMessage(card), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("channel message send complex: %w", err)
	}
	return nil
}
