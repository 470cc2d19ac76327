// Command civic-admin is the operator CLI: migrations, development
// seeding, admin PIN management, and role and elevation maintenance.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/janasethu/civic-api/config"
	"github.com/janasethu/civic-api/internal/bootstrap"
	"github.com/janasethu/civic-api/internal/data"
	"github.com/janasethu/civic-api/internal/devseed"
	domainauth "github.com/janasethu/civic-api/internal/domain/auth"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

const defaultMigrationTimeout = 5 * time.Minute

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmdName)
		printUsage()
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"migrate": {
			name:        "migrate",
			description: "Run database migrations",
			run:         runMigrate,
		},
		"db-seed": {
			name:        "db-seed",
			description: "Run database migrations and seed development data",
			run:         runDBSeed,
		},
		"db-reset": {
			name:        "db-reset",
			description: "Drop the database schema, run migrations, and optionally seed data",
			run:         runDBReset,
		},
		"set-pin": {
			name:        "set-pin",
			description: "Set the admin elevation PIN",
			run:         runSetPin,
		},
		"grant-role": {
			name:        "grant-role",
			description: "Set a user's durable role by email",
			run:         runGrantRole,
		},
		"revoke-elevation": {
			name:        "revoke-elevation",
			description: "Delete a user's active elevation grants by email",
			run:         runRevokeElevation,
		},
		"purge-grants": {
			name:        "purge-grants",
			description: "Delete expired elevation grant rows",
			run:         runPurgeGrants,
		},
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: civic-admin <command> [flags]")
	fmt.Fprintln(os.Stderr, "")

	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stderr, 2, 4, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%s\n", name, cmds[name].description)
	}
	_ = w.Flush()
}

func runMigrate(ctx *commandContext, _ []string) error {
	return withDB(ctx, defaultMigrationTimeout, func(opCtx context.Context, deps *infraDeps) error {
		return bootstrap.RunMigrations(opCtx, deps.DB, ctx.Logger)
	})
}

func runDBSeed(ctx *commandContext, _ []string) error {
	return withDB(ctx, defaultMigrationTimeout, func(opCtx context.Context, deps *infraDeps) error {
		if err := bootstrap.RunMigrations(opCtx, deps.DB, ctx.Logger); err != nil {
			return err
		}
		return devseed.Run(opCtx, deps.DB, ctx.Logger)
	})
}

func runDBReset(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("db-reset", flag.ContinueOnError)
	seed := fs.Bool("seed", false, "seed development data after migrating")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !*yes {
		return errors.New("db-reset destroys all data; re-run with -yes to confirm")
	}

	return withDB(ctx, defaultMigrationTimeout, func(opCtx context.Context, deps *infraDeps) error {
		ctx.Logger.WarnContext(opCtx, "dropping database schema", "database", ctx.Config.Postgres.Name)
		if _, err := deps.DB.ExecContext(opCtx, `DROP SCHEMA public CASCADE; CREATE SCHEMA public`); err != nil {
			return fmt.Errorf("drop schema: %w", err)
		}
		if err := bootstrap.RunMigrations(opCtx, deps.DB, ctx.Logger); err != nil {
			return err
		}
		if *seed {
			return devseed.Run(opCtx, deps.DB, ctx.Logger)
		}
		return nil
	})
}

func runSetPin(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("set-pin", flag.ContinueOnError)
	pin := fs.String("pin", "", "new admin elevation PIN")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*pin) == "" {
		return errors.New("-pin is required")
	}

	return withDB(ctx, time.Minute, func(opCtx context.Context, deps *infraDeps) error {
		settings, err := data.NewAdminSettingsRepo(data.AdminSettingsRepoOptions{DB: deps.DB})
		if err != nil {
			return fmt.Errorf("build admin settings repo: %w", err)
		}
		if err := settings.SetPin(opCtx, *pin); err != nil {
			return fmt.Errorf("set pin: %w", err)
		}
		ctx.Logger.InfoContext(opCtx, "admin pin updated")
		return nil
	})
}

func runGrantRole(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("grant-role", flag.ContinueOnError)
	email := fs.String("email", "", "email of the account to update")
	roleFlag := fs.String("role", string(domainauth.RoleAdmin), "role to assign (citizen or admin)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errors.New("-email is required")
	}

	role := domainauth.Role(strings.ToLower(*roleFlag))
	if role != domainauth.RoleCitizen && role != domainauth.RoleAdmin {
		return fmt.Errorf("invalid role %q (valid roles: citizen, admin)", *roleFlag)
	}

	return withDB(ctx, time.Minute, func(opCtx context.Context, deps *infraDeps) error {
		user, err := data.NewUserRepo(deps.DB).GetByEmail(opCtx, *email)
		if err != nil {
			return fmt.Errorf("look up user %s: %w", *email, err)
		}

		profile, err := data.NewProfileRepo(deps.DB).SetRole(opCtx, user.ID, role)
		if err != nil {
			return fmt.Errorf("set role: %w", err)
		}
		ctx.Logger.InfoContext(opCtx, "role updated", "user_id", profile.UserID, "role", profile.Role)
		return nil
	})
}

func runRevokeElevation(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("revoke-elevation", flag.ContinueOnError)
	email := fs.String("email", "", "email of the account to revoke")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errors.New("-email is required")
	}

	return withDB(ctx, time.Minute, func(opCtx context.Context, deps *infraDeps) error {
		user, err := data.NewUserRepo(deps.DB).GetByEmail(opCtx, *email)
		if err != nil {
			return fmt.Errorf("look up user %s: %w", *email, err)
		}

		grants := data.NewGrantRepo(data.GrantRepoOptions{DB: deps.DB})
		if err := grants.DeleteForUser(opCtx, user.ID); err != nil {
			return fmt.Errorf("delete grants: %w", err)
		}
		ctx.Logger.InfoContext(opCtx, "elevation grants revoked", "user_id", user.ID)
		return nil
	})
}

func runPurgeGrants(ctx *commandContext, _ []string) error {
	return withDB(ctx, time.Minute, func(opCtx context.Context, deps *infraDeps) error {
		grants := data.NewGrantRepo(data.GrantRepoOptions{DB: deps.DB})
		removed, err := grants.DeleteExpired(opCtx)
		if err != nil {
			return fmt.Errorf("purge grants: %w", err)
		}
		ctx.Logger.InfoContext(opCtx, "expired elevation grants purged", "removed", removed)
		return nil
	})
}
