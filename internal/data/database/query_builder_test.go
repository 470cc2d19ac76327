package database

import (
	"strings"
	"testing"
)

func TestBuildListQuery_BasicSelect(t *testing.T) {
	opts := NewListQueryOptions("complaints")
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "complaints"`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestBuildListQuery_WithColumns(t *testing.T) {
	opts := NewListQueryOptions("complaints",
		WithColumns("id", "title", "status"),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT "id", "title", "status" FROM "complaints"`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestBuildListQuery_WithQualifiedColumns(t *testing.T) {
	opts := NewListQueryOptions("community_chats",
		WithColumns("community_chats.id", "community_chats.message", "profiles.full_name"),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT "community_chats"."id", "community_chats"."message", "profiles"."full_name" FROM "community_chats"`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestBuildListQuery_CountOnly(t *testing.T) {
	opts := NewListQueryOptions("complaints",
		WithCountOnly(),
		WithCondition(WhereCond("status", Equal, "pending")),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT COUNT(*) FROM "complaints" WHERE "status" = $1`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 1 || args[0] != "pending" {
		t.Errorf("Expected args [pending], got %v", args)
	}
}

func TestBuildListQuery_WhereEqual(t *testing.T) {
	opts := NewListQueryOptions("complaints",
		WithCondition(WhereCond("status", Equal, "resolved")),
		WithCondition(WhereCond("upvotes", GreaterThan, 10)),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "complaints" WHERE "status" = $1 AND "upvotes" > $2`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 2 || args[0] != "resolved" || args[1] != 10 {
		t.Errorf("Expected args [resolved, 10], got %v", args)
	}
}

func TestBuildListQuery_WhereLike(t *testing.T) {
	opts := NewListQueryOptions("events",
		WithCondition(WhereCond("title", ILike, "%cleanup%")),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "events" WHERE "title" ILIKE $1`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 1 || args[0] != "%cleanup%" {
		t.Errorf("Expected args [%%cleanup%%], got %v", args)
	}
}

func TestBuildListQuery_WhereIn_StringSlice(t *testing.T) {
	opts := NewListQueryOptions("complaints",
		WithCondition(WhereCond("status", In, []string{"pending", "in_progress"})),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "complaints" WHERE "status" IN ($1, $2)`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 2 || args[0] != "pending" || args[1] != "in_progress" {
		t.Errorf("Expected args [pending, in_progress], got %v", args)
	}
}

func TestBuildListQuery_WhereIn_EmptySliceDropped(t *testing.T) {
	opts := NewListQueryOptions("complaints",
		WithCondition(WhereCond("status", In, []string{})),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "complaints"`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestBuildListQuery_WhereCustom_NoParam(t *testing.T) {
	opts := NewListQueryOptions("polls",
		WithCondition(WhereRawCond("expires_at IS NULL")),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "polls" WHERE expires_at IS NULL`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestBuildListQuery_WhereCustom_Renumbered(t *testing.T) {
	opts := NewListQueryOptions("events",
		WithCondition(WhereCond("pin_code", Equal, "560001")),
		WithCondition(WhereRawCond("starts_at >= $1", "2025-06-01")),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "events" WHERE "pin_code" = $1 AND starts_at >= $2`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 2 || args[0] != "560001" || args[1] != "2025-06-01" {
		t.Errorf("Expected args [560001, 2025-06-01], got %v", args)
	}
}

func TestBuildListQuery_OrderBy(t *testing.T) {
	opts := NewListQueryOptions("alerts",
		WithOrderBy("created_at", "DESC"),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "alerts" ORDER BY "created_at" DESC`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestBuildListQuery_OrderBy_QualifiedColumn(t *testing.T) {
	opts := NewListQueryOptions("community_chats",
		WithOrderBy("community_chats.created_at", "ASC"),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "community_chats" ORDER BY "community_chats"."created_at" ASC`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestBuildListQuery_LimitOffset(t *testing.T) {
	opts := NewListQueryOptions("complaints",
		WithLimit(10),
		WithOffset(20),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "complaints" LIMIT $1 OFFSET $2`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 2 || args[0] != 10 || args[1] != 20 {
		t.Errorf("Expected args [10, 20], got %v", args)
	}
}

func TestBuildListQuery_ComplexQuery(t *testing.T) {
	opts := NewListQueryOptions("complaints",
		WithColumns("id", "title", "status"),
		WithCondition(WhereCond("pin_code", Equal, "560001")),
		WithCondition(WhereCond("status", In, []string{"pending", "in_progress"})),
		WithCondition(WhereRawCond("created_at > $1", "2025-01-01")),
		WithOrderBy("created_at", "DESC"),
		WithLimit(50),
		WithOffset(0),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT "id", "title", "status" FROM "complaints" WHERE "pin_code" = $1 AND "status" IN ($2, $3) AND created_at > $4 ORDER BY "created_at" DESC LIMIT $5 OFFSET $6`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 6 {
		t.Errorf("Expected 6 args, got %d: %v", len(args), args)
	}
}

func TestBuildListQuery_SQLInjectionPrevention(t *testing.T) {
	// Attempt SQL injection via table name
	opts := NewListQueryOptions("complaints; DROP TABLE complaints;--")
	query, _ := BuildListQuery(opts)

	// The entire malicious string becomes a quoted identifier
	expected := `SELECT * FROM "complaints; DROP TABLE complaints;--"`
	if query != expected {
		t.Errorf("Expected %q, got %q", expected, query)
	}
	if !strings.Contains(query, `"complaints; DROP TABLE complaints;--"`) {
		t.Errorf("Table name not properly quoted: %q", query)
	}
}
