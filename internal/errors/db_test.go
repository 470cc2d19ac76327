package errors

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapDBError_NilError(t *testing.T) {
	if err := MapDBError(nil); err != nil {
		t.Errorf("MapDBError(nil) = %v, want nil", err)
	}
}

func TestMapDBError_ContextErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode ErrorCode
	}{
		{name: "deadline exceeded", err: context.DeadlineExceeded, wantCode: ErrCodeTimeout},
		{name: "canceled", err: context.Canceled, wantCode: ErrCodeCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapDBError(tt.err)
			if GetCode(err) != tt.wantCode {
				t.Errorf("MapDBError() code = %v, want %v", GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestMapDBError_NoRows(t *testing.T) {
	err := MapDBError(pgx.ErrNoRows)
	if !IsNotFound(err) {
		t.Errorf("MapDBError(pgx.ErrNoRows) should be NotFound, got %v", GetCode(err))
	}
}

func TestMapDBError_UniqueViolation(t *testing.T) {
	tests := []struct {
		name      string
		pgErr     *pgconn.PgError
		wantField string
	}{
		{
			name: "field from column name",
			pgErr: &pgconn.PgError{
				Code:       pgerrcode.UniqueViolation,
				ColumnName: "email",
			},
			wantField: "email",
		},
		{
			name: "field from detail message",
			pgErr: &pgconn.PgError{
				Code:   pgerrcode.UniqueViolation,
				Detail: "Key (email)=(a@b.com) already exists.",
			},
			wantField: "email",
		},
		{
			name: "field inferred from constraint",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "users_email_key",
			},
			wantField: "email",
		},
		{
			name: "multi column constraint stays fieldless",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "poll_votes_poll_id_user_id_key",
			},
			wantField: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapDBError(tt.pgErr)
			if !IsConflict(err) {
				t.Fatalf("expected Conflict, got %v", GetCode(err))
			}
			if got := GetField(err); got != tt.wantField {
				t.Errorf("Field = %q, want %q", got, tt.wantField)
			}
		})
	}
}

func TestMapDBError_ForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:   pgerrcode.ForeignKeyViolation,
		Detail: `Key (user_id)=(abc) is not present in table "users".`,
	}

	err := MapDBError(pgErr)
	if !IsForeignKey(err) {
		t.Fatalf("expected ForeignKey, got %v", GetCode(err))
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatal("expected AppError")
	}
	if appErr.Message != "Cannot complete operation because the referenced User does not exist." {
		t.Errorf("unexpected message: %q", appErr.Message)
	}
}

func TestMapDBError_CheckViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       pgerrcode.CheckViolation,
		ColumnName: "status",
	}

	err := MapDBError(pgErr)
	if !IsValidation(err) {
		t.Fatalf("expected Validation, got %v", GetCode(err))
	}
	if GetField(err) != "status" {
		t.Errorf("Field = %q, want status", GetField(err))
	}
}

func TestMapDBError_NotNullViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       pgerrcode.NotNullViolation,
		ColumnName: "title",
	}

	err := MapDBError(pgErr)
	if !IsValidation(err) {
		t.Fatalf("expected Validation, got %v", GetCode(err))
	}
	if GetField(err) != "title" {
		t.Errorf("Field = %q, want title", GetField(err))
	}
}

func TestMapDBError_UnrecognizedPgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgerrcode.SerializationFailure}

	err := MapDBError(pgErr)
	if !IsInternal(err) {
		t.Errorf("expected Internal for unhandled pg code, got %v", GetCode(err))
	}
}

func TestMapDBError_PassthroughNonDBError(t *testing.T) {
	plain := errors.New("not a db error")
	if err := MapDBError(plain); !errors.Is(err, plain) {
		t.Errorf("expected original error back, got %v", err)
	}
}

func TestMapTableToDomain(t *testing.T) {
	tests := []struct {
		table string
		want  string
	}{
		{table: "users", want: "User"},
		{table: "admin_sessions", want: "Admin Session"},
		{table: "community_chats", want: "Chat Message"},
		{table: "unknown_table", want: "Unknown Table"},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			if got := mapTableToDomain(tt.table); got != tt.want {
				t.Errorf("mapTableToDomain(%q) = %q, want %q", tt.table, got, tt.want)
			}
		})
	}
}
