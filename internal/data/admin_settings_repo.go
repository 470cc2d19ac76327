package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/janasethu/civic-api/internal/data/cryptoutil"
	"github.com/janasethu/civic-api/internal/data/pgxutil"
)

// adminSettingsID pins the settings table to a single row.
const adminSettingsID = 1

// AdminSettingsRepo provides database operations for instance-wide admin
// settings, currently the elevation PIN hash. It implements
// ports.PinVerifier.
type AdminSettingsRepo struct {
	DB           *sql.DB
	hasher       cryptoutil.Hasher
	decoyHash    string
	timeProvider TimeProvider
}

// AdminSettingsRepoOptions configures an AdminSettingsRepo.
type AdminSettingsRepoOptions struct {
	DB     *sql.DB
	Hasher cryptoutil.Hasher
}

// NewAdminSettingsRepo creates a new AdminSettingsRepo instance.
// A decoy hash is prepared so that verification work is performed even when
// no PIN is configured, keeping the two failure cases indistinguishable.
func NewAdminSettingsRepo(opts AdminSettingsRepoOptions) (*AdminSettingsRepo, error) {
	if opts.DB == nil {
		return nil, errors.New("db is required")
	}
	hasher := opts.Hasher
	if hasher == nil {
		defaultHasher, err := cryptoutil.NewArgon2idHasher(cryptoutil.DefaultArgon2idParams())
		if err != nil {
			return nil, fmt.Errorf("build default hasher: %w", err)
		}
		hasher = defaultHasher
	}

	decoy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("prepare decoy hash: %w", err)
	}

	return &AdminSettingsRepo{
		DB:           opts.DB,
		hasher:       hasher,
		decoyHash:    decoy,
		timeProvider: &RealTimeProvider{},
	}, nil
}

// GetPinHash returns the stored PIN hash, or ErrPinNotConfigured when the
// settings row is absent or the hash is empty.
func (r *AdminSettingsRepo) GetPinHash(ctx context.Context) (string, error) {
	query := `SELECT admin_pin_hash FROM admin_settings WHERE id = $1`

	var hash string
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		return pgxConn.QueryRow(ctx, query, adminSettingsID).Scan(&hash)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrPinNotConfigured
		}
		return "", fmt.Errorf("get admin pin hash: %w", err)
	}
	if hash == "" {
		return "", ErrPinNotConfigured
	}

	return hash, nil
}

// SetPin hashes and stores the PIN, replacing any previous value.
func (r *AdminSettingsRepo) SetPin(ctx context.Context, pin string) error {
	if pin == "" {
		return errors.New("pin is required and cannot be empty")
	}

	hash, err := r.hasher.Hash(pin)
	if err != nil {
		return fmt.Errorf("hash admin pin: %w", err)
	}

	now := r.timeProvider.Now()
	query := `
		INSERT INTO admin_settings (id, admin_pin_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (id) DO UPDATE SET admin_pin_hash = EXCLUDED.admin_pin_hash, updated_at = EXCLUDED.updated_at`

	err = pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		_, execErr := pgxConn.Exec(ctx, query, adminSettingsID, hash, now)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("set admin pin: %w", err)
	}
	return nil
}

// VerifyPin checks the submitted PIN against the stored hash. A wrong PIN
// and a missing PIN configuration both return (false, nil); the decoy hash
// keeps the cost of the two paths the same.
func (r *AdminSettingsRepo) VerifyPin(ctx context.Context, pin string) (bool, error) {
	hash, err := r.GetPinHash(ctx)
	if err != nil {
		if errors.Is(err, ErrPinNotConfigured) {
			// Burn a verification anyway so the caller cannot time the
			// difference between "not configured" and "wrong pin".
			_, _ = r.hasher.Verify(pin, r.decoyHash)
			return false, nil
		}
		return false, err
	}

	ok, err := r.hasher.Verify(pin, hash)
	if err != nil {
		return false, fmt.Errorf("verify admin pin: %w", err)
	}
	return ok, nil
}
