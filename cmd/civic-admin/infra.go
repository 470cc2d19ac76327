package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/janasethu/civic-api/internal/bootstrap"
)

// infraDeps holds shared infrastructure opened for a single command.
type infraDeps struct {
	DB *sql.DB
}

// withDB opens the database, runs fn under a timeout, and closes everything.
func withDB(ctx *commandContext, timeout time.Duration, fn func(context.Context, *infraDeps) error) error {
	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig:    ctx.Config.Postgres,
		RedisConfig: ctx.Config.Redis,
		Logger:      ctx.Logger,
	})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			ctx.Logger.Error("close database failed", "error", cerr)
		}
	}()

	opCtx, cancel := context.WithTimeout(ctx.Ctx, timeout)
	defer cancel()

	return fn(opCtx, &infraDeps{DB: db})
}
