package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/janasethu/civic-api/internal/data/database"
	"github.com/janasethu/civic-api/internal/data/pgxutil"
	"github.com/janasethu/civic-api/internal/domain/model"
)

// AlertRepo provides database operations for municipal alerts.
type AlertRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAlertRepo creates a new AlertRepo instance with the given database connection.
func NewAlertRepo(db *sql.DB) *AlertRepo {
	return &AlertRepo{
		DB:           db,
		timeProvider: &RealTimeProvider{},
	}
}

// alertColumns defines the column list for Alert SELECT queries to ensure consistent field mapping.
const alertColumns = `id, title, description, priority, pin_code, created_at`

// getAlertColumnList returns a slice of alert column names for use with the query builder.
func getAlertColumnList() []string {
	return []string{"id", "title", "description", "priority", "pin_code", "created_at"}
}

// Create creates a new alert with the given request parameters.
func (r *AlertRepo) Create(ctx context.Context, req *model.CreateAlertRequest) (*model.Alert, error) {
	if req == nil {
		return nil, errors.New("create alert request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO alerts (id, title, description, priority, pin_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + alertColumns

	var alert model.Alert
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query,
			uuid.NewString(), strings.TrimSpace(req.Title), req.Description,
			req.Priority, req.PinCode, r.timeProvider.Now(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		alert, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Alert])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create alert: %w", err)
	}

	return &alert, nil
}

// GetByID retrieves an alert by its ID.
func (r *AlertRepo) GetByID(ctx context.Context, id string) (*model.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1`

	var alert model.Alert
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query, id)
		if err != nil {
			return err
		}
		defer rows.Close()

		alert, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Alert])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAlertNotFound
		}
		return nil, fmt.Errorf("get alert by id: %w", err)
	}

	return &alert, nil
}

// Update applies a partial alert update and returns the updated alert.
func (r *AlertRepo) Update(
	ctx context.Context,
	id string,
	req *model.UpdateAlertRequest,
) (*model.Alert, error) {
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

	if req.Title != nil {
		appendSet("title", strings.TrimSpace(*req.Title))
	}
	if req.Description != nil {
		appendSet("description", *req.Description)
	}
	if req.Priority != nil {
		appendSet("priority", *req.Priority)
	}
	if req.PinCode != nil {
		appendSet("pin_code", *req.PinCode)
	}

	query := `UPDATE alerts SET ` + strings.Join(setClauses, ", ") +
		` WHERE id = $` + strconv.Itoa(argIndex) +
		` RETURNING ` + alertColumns
	args = append(args, id)

	var alert model.Alert
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		alert, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Alert])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAlertNotFound
		}
		return nil, fmt.Errorf("update alert: %w", err)
	}

	return &alert, nil
}

// Delete removes an alert and reports whether a row was deleted.
func (r *AlertRepo) Delete(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		tag, err := pgxConn.Exec(ctx, `DELETE FROM alerts WHERE id = $1`, id)
		if err != nil {
			return err
		}
		deleted = tag.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete alert: %w", err)
	}
	return deleted, nil
}

// List retrieves alerts matching the given options, newest first.
func (r *AlertRepo) List(ctx context.Context, opts *model.AlertsListOptions) ([]*model.Alert, error) {
	if opts == nil {
		opts = &model.AlertsListOptions{}
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
		database.WithColumns(getAlertColumnList()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
		database.WithOrderBy("created_at", "DESC"),
	}

	if opts.PinCode != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("pin_code", database.Equal, *opts.PinCode),
		))
	}
	if opts.Priority != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("priority", database.Equal, *opts.Priority),
		))
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions("alerts", queryOpts...))

	var alerts []*model.Alert
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		alerts, err = pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[model.Alert])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}

	return alerts, nil
}
