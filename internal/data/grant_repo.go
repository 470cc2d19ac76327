package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/janasethu/civic-api/internal/data/pgxutil"
	"github.com/janasethu/civic-api/internal/domain/auth"
)

// DefaultGrantTTL is how long an elevation grant stays valid after entry.
const DefaultGrantTTL = 8 * time.Hour

// GrantRepo provides database operations for admin elevation grants.
// It implements ports.GrantStore on the admin_sessions table.
type GrantRepo struct {
	DB           *sql.DB
	ttl          time.Duration
	timeProvider TimeProvider
}

// GrantRepoOptions configures a GrantRepo.
type GrantRepoOptions struct {
	DB *sql.DB
	// TTL overrides the grant lifetime; zero means DefaultGrantTTL.
	TTL time.Duration
}

// NewGrantRepo creates a new GrantRepo instance.
func NewGrantRepo(opts GrantRepoOptions) *GrantRepo {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultGrantTTL
	}
	return &GrantRepo{
		DB:           opts.DB,
		ttl:          ttl,
		timeProvider: &RealTimeProvider{},
	}
}

// grantColumns defines the column list for Grant SELECT queries to ensure consistent field mapping.
const grantColumns = `id, user_id, created_at, expires_at, last_activity`

// Create inserts a grant for userID expiring ttl from now.
func (r *GrantRepo) Create(ctx context.Context, userID string) (auth.Grant, error) {
	if userID == "" {
		return auth.Grant{}, errors.New("user id is required")
	}

	now := r.timeProvider.Now()
	query := `
		INSERT INTO admin_sessions (id, user_id, created_at, expires_at, last_activity)
		VALUES ($1, $2, $3, $4, $3)
		RETURNING ` + grantColumns

	var grant auth.Grant
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query, uuid.NewString(), userID, now, now.Add(r.ttl))
		if err != nil {
			return err
		}
		defer rows.Close()

		grant, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[auth.Grant])
		return err
	})
	if err != nil {
		return auth.Grant{}, fmt.Errorf("create elevation grant: %w", err)
	}

	return grant, nil
}

// ActiveGrant returns the latest unexpired grant for userID, or
// ErrGrantNotFound when none exists.
func (r *GrantRepo) ActiveGrant(ctx context.Context, userID string) (auth.Grant, error) {
	query := `
		SELECT ` + grantColumns + `
		FROM admin_sessions
		WHERE user_id = $1 AND expires_at > $2
		ORDER BY expires_at DESC
		LIMIT 1`

	var grant auth.Grant
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query, userID, r.timeProvider.Now())
		if err != nil {
			return err
		}
		defer rows.Close()

		grant, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[auth.Grant])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.Grant{}, ErrGrantNotFound
		}
		return auth.Grant{}, fmt.Errorf("get active grant: %w", err)
	}

	return grant, nil
}

// Touch updates last_activity on the latest unexpired grant for userID.
func (r *GrantRepo) Touch(ctx context.Context, userID string) error {
	now := r.timeProvider.Now()
	query := `
		UPDATE admin_sessions
		SET last_activity = $1
		WHERE user_id = $2 AND expires_at > $1`

	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		_, err := pgxConn.Exec(ctx, query, now, userID)
		return err
	})
	if err != nil {
		return fmt.Errorf("touch grant: %w", err)
	}
	return nil
}

// DeleteForUser removes every grant row for userID, expired or not.
// Exit is two-phase: callers clear the session mirror only after this
// returns without error.
func (r *GrantRepo) DeleteForUser(ctx context.Context, userID string) error {
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		_, err := pgxConn.Exec(ctx, `DELETE FROM admin_sessions WHERE user_id = $1`, userID)
		return err
	})
	if err != nil {
		return fmt.Errorf("delete grants for user: %w", err)
	}
	return nil
}

// DeleteExpired prunes expired grant rows and returns how many were removed.
func (r *GrantRepo) DeleteExpired(ctx context.Context) (int64, error) {
	var removed int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		tag, err := pgxConn.Exec(ctx,
			`DELETE FROM admin_sessions WHERE expires_at <= $1`, r.timeProvider.Now())
		if err != nil {
			return err
		}
		removed = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("delete expired grants: %w", err)
	}
	return removed, nil
}
