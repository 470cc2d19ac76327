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

// EventRepo provides database operations for community events.
type EventRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewEventRepo creates a new EventRepo instance with the given database connection.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{
		DB:           db,
		timeProvider: &RealTimeProvider{},
	}
}

// eventColumns defines the column list for Event SELECT queries to ensure consistent field mapping.
const eventColumns = `id, title, description, event_date, location, image_url, pin_code, created_at`

// getEventColumnList returns a slice of event column names for use with the query builder.
func getEventColumnList() []string {
	return []string{
		"id", "title", "description", "event_date", "location", "image_url", "pin_code", "created_at",
	}
}

// Create creates a new event with the given request parameters.
func (r *EventRepo) Create(ctx context.Context, req *model.CreateEventRequest) (*model.Event, error) {
	if req == nil {
		return nil, errors.New("create event request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO events (id, title, description, event_date, location, image_url, pin_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + eventColumns

	var event model.Event
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query,
			uuid.NewString(), strings.TrimSpace(req.Title), req.Description,
			req.EventDate, req.Location, req.ImageURL, req.PinCode, r.timeProvider.Now(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		event, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Event])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	return &event, nil
}

// GetByID retrieves an event by its ID.
func (r *EventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var event model.Event
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query, id)
		if err != nil {
			return err
		}
		defer rows.Close()

		event, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Event])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("get event by id: %w", err)
	}

	return &event, nil
}

// Update applies a partial event update and returns the updated event.
func (r *EventRepo) Update(
	ctx context.Context,
	id string,
	req *model.UpdateEventRequest,
) (*model.Event, error) {
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
	if req.EventDate != nil {
		appendSet("event_date", *req.EventDate)
	}
	if req.Location != nil {
		appendSet("location", *req.Location)
	}
	if req.ImageURL != nil {
		appendSet("image_url", *req.ImageURL)
	}
	if req.PinCode != nil {
		appendSet("pin_code", *req.PinCode)
	}

	query := `UPDATE events SET ` + strings.Join(setClauses, ", ") +
		` WHERE id = $` + strconv.Itoa(argIndex) +
		` RETURNING ` + eventColumns
	args = append(args, id)

	var event model.Event
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		event, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Event])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}

	return &event, nil
}

// Delete removes an event and reports whether a row was deleted.
func (r *EventRepo) Delete(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		tag, err := pgxConn.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
		if err != nil {
			return err
		}
		deleted = tag.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete event: %w", err)
	}
	return deleted, nil
}

// List retrieves events matching the given options, soonest first.
func (r *EventRepo) List(ctx context.Context, opts *model.EventsListOptions) ([]*model.Event, error) {
	if opts == nil {
		opts = &model.EventsListOptions{}
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
		database.WithColumns(getEventColumnList()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
		database.WithOrderBy("event_date", "ASC"),
	}

	if opts.PinCode != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("pin_code", database.Equal, *opts.PinCode),
		))
	}
	if opts.Upcoming {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("event_date", database.GreaterThanOrEqual, r.timeProvider.Now()),
		))
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions("events", queryOpts...))

	var events []*model.Event
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		events, err = pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[model.Event])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	return events, nil
}
