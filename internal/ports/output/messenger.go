package output

import (
	"context"

	"transbot/internal/domain/entities"
)

// Messenger delivers replies to the chat platform.
type Messenger interface {
	SendMessage(ctx context.Context, channelID, text string) error
	SendTyping(ctx context.Context, channelID string) error
	// SendCard posts a rich reply. It does not go through SendMessage, so a
	// card is never re-read as a command.
	SendCard(ctx context.Context, channelID string, card entities.Card) error
}
