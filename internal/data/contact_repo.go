package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/janasethu/civic-api/internal/data/database"
	"github.com/janasethu/civic-api/internal/data/pgxutil"
	"github.com/janasethu/civic-api/internal/domain/model"
)

// ContactRepo provides database operations for contact form messages.
type ContactRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewContactRepo creates a new ContactRepo instance with the given database connection.
func NewContactRepo(db *sql.DB) *ContactRepo {
	return &ContactRepo{
		DB:           db,
		timeProvider: &RealTimeProvider{},
	}
}

// contactColumns defines the column list for ContactMessage SELECT queries to ensure consistent field mapping.
const contactColumns = `id, name, email, message, created_at`

// Create stores a submitted contact message.
func (r *ContactRepo) Create(
	ctx context.Context,
	req *model.CreateContactMessageRequest,
) (*model.ContactMessage, error) {
	if req == nil {
		return nil, errors.New("create contact message request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO contact_messages (id, name, email, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + contactColumns

	var msg model.ContactMessage
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query,
			uuid.NewString(), strings.TrimSpace(req.Name), strings.ToLower(strings.TrimSpace(req.Email)),
			req.Message, r.timeProvider.Now(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		msg, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ContactMessage])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}

	return &msg, nil
}

// List retrieves contact messages, newest first.
func (r *ContactRepo) List(ctx context.Context, limit, offset int) ([]*model.ContactMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}
	if offset < 0 {
		offset = 0
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions("contact_messages",
		database.WithColumns("id", "name", "email", "message", "created_at"),
		database.WithOrderBy("created_at", "DESC"),
		database.WithLimit(limit),
		database.WithOffset(offset),
	))

	var msgs []*model.ContactMessage
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		msgs, err = pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[model.ContactMessage])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}

	return msgs, nil
}
