package ports

import (
	"MyneBooks/internal/core/domain"
	"context"
)

// ChatRepository defines the persistence operations for Chats.
type ChatRepository interface {
	// Create saves a new chat. Creating an ID that already exists is a no-op.
	Create(ctx context.Context, chat *domain.Chat) error

	// GetByID finds a chat by its Telegram ID. Returns nil, nil when not found.
	GetByID(ctx context.Context, id int64) (*domain.Chat, error)

	// List returns every known chat, oldest first.
	List(ctx context.Context) ([]*domain.Chat, error)

	Delete(ctx context.Context, id int64) error
}
