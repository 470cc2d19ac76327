package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/janasethu/civic-api/internal/data/pgxutil"
	"github.com/janasethu/civic-api/internal/domain/model"
)

// ChatRepo provides database operations for area-scoped community chat.
type ChatRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewChatRepo creates a new ChatRepo instance with the given database connection.
func NewChatRepo(db *sql.DB) *ChatRepo {
	return &ChatRepo{
		DB:           db,
		timeProvider: &RealTimeProvider{},
	}
}

// chatColumns lists community_chats columns joined with the author's display
// name. The join picks the nickname when set, falling back to the full name.
const chatColumns = `c.id, c.user_id, COALESCE(NULLIF(p.nickname, ''), p.full_name, '') AS author_name, c.pin_code, c.message, c.created_at`

// Create posts a chat message for userID and returns it with the resolved
// author name.
func (r *ChatRepo) Create(
	ctx context.Context,
	userID string,
	req *model.CreateChatMessageRequest,
) (*model.ChatMessage, error) {
	if req == nil {
		return nil, errors.New("create chat message request is required")
	}
	if userID == "" {
		return nil, errors.New("user id is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	insert := `
		INSERT INTO community_chats (id, user_id, pin_code, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	selectOne := `
		SELECT ` + chatColumns + `
		FROM community_chats c
		LEFT JOIN profiles p ON p.user_id = c.user_id
		WHERE c.id = $1`

	var msg model.ChatMessage
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{
		Fn: func(tx pgx.Tx) error {
			var id string
			err := tx.QueryRow(ctx, insert,
				uuid.NewString(), userID, req.PinCode, req.Message, r.timeProvider.Now(),
			).Scan(&id)
			if err != nil {
				return err
			}

			rows, err := tx.Query(ctx, selectOne, id)
			if err != nil {
				return err
			}
			msg, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ChatMessage])
			return err
		},
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("create chat message: %w", err)
	}

	return &msg, nil
}

// List retrieves messages for one area, newest first.
func (r *ChatRepo) List(ctx context.Context, opts *model.ChatListOptions) ([]*model.ChatMessage, error) {
	if opts == nil || opts.PinCode == "" {
		return nil, errors.New("pin_code is required and cannot be empty")
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + chatColumns + `
		FROM community_chats c
		LEFT JOIN profiles p ON p.user_id = c.user_id
		WHERE c.pin_code = $1
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT $2 OFFSET $3`

	var msgs []*model.ChatMessage
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query, opts.PinCode, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()

		msgs, err = pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[model.ChatMessage])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}

	return msgs, nil
}
