package postgres

import (
	"MyneBooks/internal/core/domain"
	"MyneBooks/internal/core/ports"
	"context"
	"encoding/base64"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type chatRepository struct {
	db     *DB
	secSvc ports.SecurityPort // Display names are stored encrypted
	log    zerolog.Logger
}

var _ ports.ChatRepository = (*chatRepository)(nil) // Ensure compliance

// NewChatRepository creates a new repository for chat operations.
func NewChatRepository(db *DB, secSvc ports.SecurityPort, baseLogger *zerolog.Logger) ports.ChatRepository {
	return &chatRepository{
		db:     db,
		secSvc: secSvc,
		log:    baseLogger.With().Str("component", "chat_repo").Logger(),
	}
}

// chatAAD binds a ciphertext to its row so it cannot be moved to another chat.
func chatAAD(id int64) []byte {
	return []byte(strconv.FormatInt(id, 10))
}

// Create encrypts the display name and inserts the chat.
// A concurrent first contact for the same ID keeps the first row.
func (r *chatRepository) Create(ctx context.Context, chat *domain.Chat) error {
	if err := chat.Validate(); err != nil {
		return err
	}

	encBytes, err := r.secSvc.Encrypt([]byte(chat.DisplayName), chatAAD(chat.ID))
	if err != nil {
		r.log.Error().Err(err).Int64("chat_id", chat.ID).Msg("Failed to encrypt display name")
		return err
	}
	encName := base64.StdEncoding.EncodeToString(encBytes)

	query := `
		INSERT INTO chats (id, kind, display_name, locale)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`
	_, err = r.db.pool.Exec(ctx, query, chat.ID, chat.Kind, encName, chat.Locale)
	if err != nil {
		r.log.Error().Err(err).Int64("chat_id", chat.ID).Msg("Failed to insert new chat")
	}
	return err
}

const chatQueryCols = `id, kind, display_name, locale, created_at, updated_at`

// scanChat scans a row into a Chat and decrypts the display name.
func (r *chatRepository) scanChat(row pgx.Row) (*domain.Chat, error) {
	var chat domain.Chat
	var encName string

	err := row.Scan(
		&chat.ID,
		&chat.Kind,
		&encName,
		&chat.Locale,
		&chat.CreatedAt,
		&chat.UpdatedAt,
	)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			r.log.Error().Err(err).Msg("Failed to scan chat row")
		}
		return nil, err
	}

	decBytes, err := base64.StdEncoding.DecodeString(encName)
	if err != nil {
		r.log.Error().Err(err).Int64("chat_id", chat.ID).Msg("Failed to base64-decode display name")
		return nil, err
	}
	name, err := r.secSvc.Decrypt(decBytes, chatAAD(chat.ID))
	if err != nil {
		r.log.Error().Err(err).Int64("chat_id", chat.ID).Msg("Failed to decrypt display name")
		return nil, err
	}
	chat.DisplayName = string(name)

	return &chat, nil
}

// GetByID finds and decrypts a chat by its Telegram ID.
func (r *chatRepository) GetByID(ctx context.Context, id int64) (*domain.Chat, error) {
	query := `SELECT ` + chatQueryCols + ` FROM chats WHERE id = $1`

	chat, err := r.scanChat(r.db.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.log.Debug().Int64("chat_id", id).Msg("Chat not found")
			return nil, nil // Return nil, nil for "not found"
		}
		return nil, err
	}
	return chat, nil
}

// List returns every chat, oldest first.
func (r *chatRepository) List(ctx context.Context) ([]*domain.Chat, error) {
	query := `SELECT ` + chatQueryCols + ` FROM chats ORDER BY created_at, id`

	rows, err := r.db.pool.Query(ctx, query)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to list chats")
		return nil, err
	}
	defer rows.Close()

	var chats []*domain.Chat
	for rows.Next() {
		chat, err := r.scanChat(rows)
		if err != nil {
			return nil, err
		}
		chats = append(chats, chat)
	}
	return chats, rows.Err()
}

// Delete removes a chat by ID. Deleting an unknown ID is not an error.
func (r *chatRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.pool.Exec(ctx, `DELETE FROM chats WHERE id = $1`, id)
	if err != nil {
		r.log.Error().Err(err).Int64("chat_id", id).Msg("Failed to delete chat")
		return err
	}
	r.log.Info().Int64("chat_id", id).Int64("rows", tag.RowsAffected()).Msg("Chat deleted")
	return nil
}
