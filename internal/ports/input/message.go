package input

import (
	"context"

	"transbot/internal/domain/entities"
)

type MessageUseCase interface {
	HandleMessage(ctx context.Context, msg entities.IncomingMessage)
	HandleChannelJoined(ctx context.Context, ev entities.ChannelJoined)
}
