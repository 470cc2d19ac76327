package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/janasethu/civic-api/internal/data/pgxutil"
	"github.com/janasethu/civic-api/internal/domain/auth"
	"github.com/janasethu/civic-api/internal/domain/model"
)

// ProfileRepo provides database operations for citizen profiles.
type ProfileRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewProfileRepo creates a new ProfileRepo instance with the given database connection.
func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{
		DB:           db,
		timeProvider: &RealTimeProvider{},
	}
}

// profileColumns defines the column list for Profile SELECT queries to ensure consistent field mapping.
const profileColumns = `user_id, full_name, nickname, email, mobile, address, area, pin_code, role, created_at, updated_at`

// GetByUserID retrieves a profile by its owning user ID.
func (r *ProfileRepo) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`

	var profile model.Profile
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query, userID)
		if err != nil {
			return err
		}
		defer rows.Close()

		profile, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Profile])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile by user id: %w", err)
	}

	return &profile, nil
}

// Ensure retrieves the profile for userID, creating a citizen profile from
// the given identity fields when none exists yet. Existing rows win: the
// identity fields never overwrite a stored profile.
func (r *ProfileRepo) Ensure(ctx context.Context, userID, fullName, email string) (*model.Profile, error) {
	if userID == "" {
		return nil, errors.New("user id is required")
	}

	now := r.timeProvider.Now()
	query := `
		INSERT INTO profiles (user_id, full_name, email, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (user_id) DO NOTHING`

	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		_, err := pgxConn.Exec(ctx, query, userID, fullName, email, auth.RoleCitizen, now)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("ensure profile: %w", err)
	}

	return r.GetByUserID(ctx, userID)
}

// Update applies a partial profile update and returns the updated profile.
func (r *ProfileRepo) Update(
	ctx context.Context,
	userID string,
	req *model.UpdateProfileRequest,
) (*model.Profile, error) {
	if req == nil || !req.HasUpdates() {
		return nil, errors.New("no updates provided")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setClauses := []string{}
	args := []any{}
	argIndex := 1

	appendSet := func(column string, value any) {
		setClauses = append(setClauses, column+" = $"+strconv.Itoa(argIndex))
		args = append(args, value)
		argIndex++
	}

	if req.FullName != nil {
		appendSet("full_name", *req.FullName)
	}
	if req.Nickname != nil {
		appendSet("nickname", *req.Nickname)
	}
	if req.Mobile != nil {
		appendSet("mobile", *req.Mobile)
	}
	if req.Address != nil {
		appendSet("address", *req.Address)
	}
	if req.Area != nil {
		appendSet("area", *req.Area)
	}
	if req.PinCode != nil {
		appendSet("pin_code", *req.PinCode)
	}
	appendSet("updated_at", r.timeProvider.Now())

	query := `UPDATE profiles SET ` + strings.Join(setClauses, ", ") +
		` WHERE user_id = $` + strconv.Itoa(argIndex) +
		` RETURNING ` + profileColumns
	args = append(args, userID)

	var profile model.Profile
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		profile, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Profile])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return &profile, nil
}

// SetRole updates the durable role label on a profile. The label is
// informational for admin routes; route access is derived from elevation.
func (r *ProfileRepo) SetRole(ctx context.Context, userID string, role auth.Role) (*model.Profile, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	query := `
		UPDATE profiles
		SET role = $1, updated_at = $2
		WHERE user_id = $3
		RETURNING ` + profileColumns

	var profile model.Profile
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query, role, r.timeProvider.Now(), userID)
		if err != nil {
			return err
		}
		defer rows.Close()

		profile, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Profile])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("set profile role: %w", err)
	}

	return &profile, nil
}
