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

// PollRepo provides database operations for polls and votes.
type PollRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewPollRepo creates a new PollRepo instance with the given database connection.
func NewPollRepo(db *sql.DB) *PollRepo {
	return &PollRepo{
		DB:           db,
		timeProvider: &RealTimeProvider{},
	}
}

// pollColumns defines the column list for Poll SELECT queries to ensure consistent field mapping.
const pollColumns = `id, question, options, votes, expires_at, pin_code, created_at`

// getPollColumnList returns a slice of poll column names for use with the query builder.
func getPollColumnList() []string {
	return []string{"id", "question", "options", "votes", "expires_at", "pin_code", "created_at"}
}

// Create creates a new poll with a zeroed tally per option.
func (r *PollRepo) Create(ctx context.Context, req *model.CreatePollRequest) (*model.Poll, error) {
	if req == nil {
		return nil, errors.New("create poll request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	votes := make([]int, len(req.Options))

	query := `
		INSERT INTO polls (id, question, options, votes, expires_at, pin_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + pollColumns

	var poll model.Poll
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query,
			uuid.NewString(), strings.TrimSpace(req.Question), req.Options, votes,
			req.ExpiresAt, req.PinCode, r.timeProvider.Now(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		poll, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Poll])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create poll: %w", err)
	}

	return &poll, nil
}

// GetByID retrieves a poll by its ID.
func (r *PollRepo) GetByID(ctx context.Context, id string) (*model.Poll, error) {
	query := `SELECT ` + pollColumns + ` FROM polls WHERE id = $1`

	var poll model.Poll
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query, id)
		if err != nil {
			return err
		}
		defer rows.Close()

		poll, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Poll])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPollNotFound
		}
		return nil, fmt.Errorf("get poll by id: %w", err)
	}

	return &poll, nil
}

// Vote records userID's vote on a poll and bumps the tally. The vote row
// and the tally update commit together; a second vote by the same user
// fails with ErrAlreadyVoted and leaves the tally untouched.
func (r *PollRepo) Vote(
	ctx context.Context,
	pollID, userID string,
	req *model.VoteRequest,
) (*model.Poll, error) {
	if req == nil {
		return nil, errors.New("vote request is required")
	}
	if userID == "" {
		return nil, errors.New("user id is required")
	}

	now := r.timeProvider.Now()

	var poll model.Poll
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{
		Fn: func(tx pgx.Tx) error {
			rows, err := tx.Query(ctx,
				`SELECT `+pollColumns+` FROM polls WHERE id = $1 FOR UPDATE`, pollID)
			if err != nil {
				return err
			}
			locked, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Poll])
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return ErrPollNotFound
				}
				return err
			}

			if err := req.ValidateFor(locked, now); err != nil {
				return err
			}

			_, err = tx.Exec(ctx,
				`INSERT INTO poll_votes (id, poll_id, user_id, option_index, created_at)
				 VALUES ($1, $2, $3, $4, $5)`,
				uuid.NewString(), pollID, userID, req.OptionIndex, now,
			)
			if err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
					return ErrAlreadyVoted
				}
				return err
			}

			// Postgres arrays are 1-based.
			voteRows, err := tx.Query(ctx,
				`UPDATE polls SET votes[$1] = votes[$1] + 1 WHERE id = $2 RETURNING `+pollColumns,
				req.OptionIndex+1, pollID,
			)
			if err != nil {
				return err
			}
			poll, err = pgx.CollectOneRow(voteRows, pgx.RowToStructByName[model.Poll])
			return err
		},
	})
	if err != nil {
		if errors.Is(err, ErrPollNotFound) || errors.Is(err, ErrAlreadyVoted) {
			return nil, err
		}
		return nil, fmt.Errorf("vote on poll: %w", err)
	}

	return &poll, nil
}

// HasVoted reports whether userID has already voted on the poll.
func (r *PollRepo) HasVoted(ctx context.Context, pollID, userID string) (bool, error) {
	var voted bool
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		return pgxConn.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM poll_votes WHERE poll_id = $1 AND user_id = $2)`,
			pollID, userID,
		).Scan(&voted)
	})
	if err != nil {
		return false, fmt.Errorf("check poll vote: %w", err)
	}
	return voted, nil
}

// Delete removes a poll and its votes, reporting whether a row was deleted.
func (r *PollRepo) Delete(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		tag, err := pgxConn.Exec(ctx, `DELETE FROM polls WHERE id = $1`, id)
		if err != nil {
			return err
		}
		deleted = tag.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete poll: %w", err)
	}
	return deleted, nil
}

// List retrieves polls matching the given options, newest first.
func (r *PollRepo) List(ctx context.Context, opts *model.PollsListOptions) ([]*model.Poll, error) {
	if opts == nil {
		opts = &model.PollsListOptions{}
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
		database.WithColumns(getPollColumnList()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
		database.WithOrderBy("created_at", "DESC"),
	}

	if opts.PinCode != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("pin_code", database.Equal, *opts.PinCode),
		))
	}
	if opts.ActiveOnly {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereRawCond("(expires_at IS NULL OR expires_at > $1)", r.timeProvider.Now()),
		))
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions("polls", queryOpts...))

	var polls []*model.Poll
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, err := pgxConn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		polls, err = pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[model.Poll])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list polls: %w", err)
	}

	return polls, nil
}
