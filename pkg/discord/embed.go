package discord

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"transbot/internal/domain/entities"
)

// Discord API limits, in characters.
const (
	MaxMessageLength    = 2000
	maxEmbedTitle       = 256
	maxEmbedDescription = 4096

	defaultEmbedColor = 0x5865F2
)

// CardMessage renders a card as a message: the pretext becomes the content
// and the rest an embed. Discord has no attachment fallback; the fallback is
// only used when the card has no text.
func CardMessage(card entities.Card) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Content: Truncate(card.Pretext, MaxMessageLength),
		Embeds:  []*discordgo.MessageEmbed{CardEmbed(card)},
	}
}

// CardEmbed converts a card into an embed.
func CardEmbed(card entities.Card) *discordgo.MessageEmbed {
	text := card.Text
	if text == "" {
		text = card.Fallback
	}
	embed := &discordgo.MessageEmbed{
		Title:       Truncate(card.Title, maxEmbedTitle),
		URL:         card.TitleLink,
		Description: Truncate(text, maxEmbedDescription),
		Color:       ParseColor(card.Color),
	}
	if card.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: card.ImageURL}
	}
	return embed
}

// ParseColor parses "#RRGGBB" (the # is optional). Invalid input yields the
// default embed color.
func ParseColor(hex string) int {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return defaultEmbedColor
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return defaultEmbedColor
	}
	return int(v)
}

// Truncate cuts s to at most limit runes, marking the cut with "…".
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
