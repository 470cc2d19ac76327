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

// ComplaintRepo provides database operations for citizen complaints.
type ComplaintRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewComplaintRepo creates a new ComplaintRepo instance with the given database connection.
func NewComplaintRepo(db *sql.DB) *ComplaintRepo {
	return &ComplaintRepo{
		DB:           db,
		timeProvider: &RealTimeProvider{},
	}
}

// complaintColumns defines the column list for Complaint SELECT queries to ensure consistent field mapping.
const complaintColumns = `id, user_id, title, description, category, status, location, latitude, longitude, pin_code, image_urls, created_at, updated_at`

// getComplaintColumnList returns a slice of complaint column names for use with the query builder.
func getComplaintColumnList() []string {
	return []string{
		"id", "user_id", "title", "description", "category", "status",
		"location", "latitude", "longitude", "pin_code", "image_urls", "created_at", "updated_at",
	}
}

const (
	sortDirAsc         = "ASC"
	sortDirDesc        = "DESC"
	sortFieldCreatedAt = "created_at"
	sortFieldStatus    = "status"
)

// handleCreateError handles database errors during complaint creation.
func (r *ComplaintRepo) handleCreateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("create complaint: %w", err)
	}

	if pgErr.Code == pgerrcode.ForeignKeyViolation && strings.Contains(pgErr.Detail, "user_id") {
		return ErrUserNotFound
	}

	return fmt.Errorf("create complaint: %w", err)
}

// Create creates a new complaint for userID with the given request parameters.
func (r *ComplaintRepo) Create(
	ctx context.Context,
	userID string,
	req *model.CreateComplaintRequest,
) (*model.Complaint, error) {
	if req == nil {
		return nil, errors.New("create complaint request is required")
	}
	if userID == "" {
		return nil, errors.New("user id is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now()
	imageURLs := req.ImageURLs
	if imageURLs == nil {
		imageURLs = []string{}
	}

	query := `
		INSERT INTO complaints (id, user_id, title, description, category, status, location, latitude, longitude, pin_code, image_urls, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
		RETURNING ` + complaintColumns

	var complaint model.Complaint
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query,
			uuid.NewString(), userID, strings.TrimSpace(req.Title), req.Description, req.Category,
			model.ComplaintStatusPending, req.Location, req.Latitude, req.Longitude,
			req.PinCode, imageURLs, now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		complaint, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Complaint])
		return err
	})
	if err != nil {
		return nil, r.handleCreateError(err)
	}

	return &complaint, nil
}

// GetByID retrieves a complaint by its ID.
func (r *ComplaintRepo) GetByID(ctx context.Context, id string) (*model.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE id = $1`

	var complaint model.Complaint
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query, id)
		if err != nil {
			return err
		}
		defer rows.Close()

		complaint, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Complaint])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrComplaintNotFound
		}
		return nil, fmt.Errorf("get complaint by id: %w", err)
	}

	return &complaint, nil
}

// UpdateStatus transitions a complaint's status and returns the updated row.
func (r *ComplaintRepo) UpdateStatus(
	ctx context.Context,
	id string,
	status model.ComplaintStatus,
) (*model.Complaint, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid complaint status %q", status)
	}

	query := `
		UPDATE complaints
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + complaintColumns

	var complaint model.Complaint
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query, status, r.timeProvider.Now(), id)
		if err != nil {
			return err
		}
		defer rows.Close()

		complaint, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Complaint])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrComplaintNotFound
		}
		return nil, fmt.Errorf("update complaint status: %w", err)
	}

	return &complaint, nil
}

// Delete removes a complaint and reports whether a row was deleted.
func (r *ComplaintRepo) Delete(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		tag, err := pgxConn.Exec(ctx, `DELETE FROM complaints WHERE id = $1`, id)
		if err != nil {
			return err
		}
		deleted = tag.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete complaint: %w", err)
	}
	return deleted, nil
}

// normalizePagination normalizes limit and offset values for pagination.
func (r *ComplaintRepo) normalizePagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}

// validateSortOptions validates and returns safe sort column and direction.
func (r *ComplaintRepo) validateSortOptions(sort, dir string) (string, string) {
	switch sort {
	case sortFieldCreatedAt, sortFieldStatus:
	default:
		sort = sortFieldCreatedAt
	}

	if strings.EqualFold(dir, "asc") {
		dir = sortDirAsc
	} else {
		dir = sortDirDesc
	}

	return sort, dir
}

// List retrieves complaints matching the given options using the query builder.
func (r *ComplaintRepo) List(
	ctx context.Context,
	opts *model.ComplaintsListOptions,
) ([]*model.Complaint, error) {
	if opts == nil {
		opts = &model.ComplaintsListOptions{}
	}

	limit, offset := r.normalizePagination(opts.Limit, opts.Offset)
	sortCol, sortDir := r.validateSortOptions(opts.Sort, opts.Dir)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(getComplaintColumnList()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
		database.WithOrderBy(sortCol, sortDir),
	}

	if opts.Status != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("status", database.Equal, *opts.Status),
		))
	}
	if opts.PinCode != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("pin_code", database.Equal, *opts.PinCode),
		))
	}
	if opts.UserID != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("user_id", database.Equal, *opts.UserID),
		))
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions("complaints", queryOpts...))

	// Add secondary sort key for deterministic ordering
	if strings.Contains(query, "ORDER BY") {
		query = strings.Replace(query,
			fmt.Sprintf(`ORDER BY "%s" %s`, sortCol, sortDir),
			fmt.Sprintf(`ORDER BY "%s" %s, id DESC`, sortCol, sortDir), 1)
	}

	var complaints []*model.Complaint
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		complaints, err = pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[model.Complaint])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}

	return complaints, nil
}

// Count returns the number of complaints matching the filter options.
func (r *ComplaintRepo) Count(ctx context.Context, opts *model.ComplaintsListOptions) (int, error) {
	if opts == nil {
		opts = &model.ComplaintsListOptions{}
	}

	queryOpts := []database.ListQueryOption{database.WithCountOnly()}
	if opts.Status != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("status", database.Equal, *opts.Status),
		))
	}
	if opts.PinCode != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("pin_code", database.Equal, *opts.PinCode),
		))
	}
	if opts.UserID != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("user_id", database.Equal, *opts.UserID),
		))
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions("complaints", queryOpts...))

	var count int
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		return pgxConn.QueryRow(ctx, query, args...).Scan(&count)
	})
	if err != nil {
		return 0, fmt.Errorf("count complaints: %w", err)
	}

	return count, nil
}
