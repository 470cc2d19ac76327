package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/janasethu/civic-api/internal/data/database"
	"github.com/janasethu/civic-api/internal/data/pgxutil"
	"github.com/janasethu/civic-api/internal/domain/model"
)

// VerificationRepo provides database operations for identity verification requests.
type VerificationRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewVerificationRepo creates a new VerificationRepo instance with the given database connection.
func NewVerificationRepo(db *sql.DB) *VerificationRepo {
	return &VerificationRepo{
		DB:           db,
		timeProvider: &RealTimeProvider{},
	}
}

// verificationColumns defines the column list for Verification SELECT queries to ensure consistent field mapping.
const verificationColumns = `id, user_id, name, document_type, document_url, status, created_at, reviewed_at`

// getVerificationColumnList returns a slice of verification column names for use with the query builder.
func getVerificationColumnList() []string {
	return []string{"id", "user_id", "name", "document_type", "document_url", "status", "created_at", "reviewed_at"}
}

// Create submits a new verification request for userID.
func (r *VerificationRepo) Create(
	ctx context.Context,
	userID string,
	req *model.CreateVerificationRequest,
) (*model.Verification, error) {
	if req == nil {
		return nil, errors.New("create verification request is required")
	}
	if userID == "" {
		return nil, errors.New("user id is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO verifications (id, user_id, name, document_type, document_url, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + verificationColumns

	var verification model.Verification
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query,
			uuid.NewString(), userID, strings.TrimSpace(req.Name), req.DocumentType,
			req.DocumentURL, model.VerificationStatusPending, r.timeProvider.Now(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		verification, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Verification])
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("create verification: %w", err)
	}

	return &verification, nil
}

// GetByID retrieves a verification request by its ID.
func (r *VerificationRepo) GetByID(ctx context.Context, id string) (*model.Verification, error) {
	query := `SELECT ` + verificationColumns + ` FROM verifications WHERE id = $1`

	var verification model.Verification
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query, id)
		if err != nil {
			return err
		}
		defer rows.Close()

		verification, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Verification])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVerificationNotFound
		}
		return nil, fmt.Errorf("get verification by id: %w", err)
	}

	return &verification, nil
}

// Review records an approve/reject decision and stamps reviewed_at.
func (r *VerificationRepo) Review(
	ctx context.Context,
	id string,
	req *model.ReviewVerificationRequest,
) (*model.Verification, error) {
	if req == nil {
		return nil, errors.New("review verification request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := `
		UPDATE verifications
		SET status = $1, reviewed_at = $2
		WHERE id = $3
		RETURNING ` + verificationColumns

	var verification model.Verification
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query, req.Status, r.timeProvider.Now(), id)
		if err != nil {
			return err
		}
		defer rows.Close()

		verification, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Verification])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVerificationNotFound
		}
		return nil, fmt.Errorf("review verification: %w", err)
	}

	return &verification, nil
}

// List retrieves verification requests matching the given options, newest first.
func (r *VerificationRepo) List(
	ctx context.Context,
	opts *model.VerificationsListOptions,
) ([]*model.Verification, error) {
	if opts == nil {
		opts = &model.VerificationsListOptions{}
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	queryOpts := []database.ListQueryOption{
		database.WithColumns(getVerificationColumnList()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
		database.WithOrderBy("created_at", "DESC"),
	}

	if opts.Status != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("status", database.Equal, *opts.Status),
		))
	}
	if opts.UserID != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("user_id", database.Equal, *opts.UserID),
		))
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions("verifications", queryOpts...))

	var verifications []*model.Verification
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		verifications, err = pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[model.Verification])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list verifications: %w", err)
	}

	return verifications, nil
}
