// Package devseed loads development fixtures: a citizen and an admin
// account, the admin elevation PIN, and a handful of civic records so the
// app is usable immediately after `civic-admin db-seed`.
package devseed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/janasethu/civic-api/internal/data"
	"github.com/janasethu/civic-api/internal/data/cryptoutil"
	domainauth "github.com/janasethu/civic-api/internal/domain/auth"
	"github.com/janasethu/civic-api/internal/domain/model"
	"github.com/janasethu/civic-api/internal/service"
)

// Development credentials. Never used outside local environments.
const (
	CitizenEmail = "citizen@example.com"
	AdminEmail   = "admin@example.com"
	Password     = "password123"
	AdminPin     = "246810"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	DB       *sql.DB
	users    *data.UserRepo
	profiles *data.ProfileRepo
	settings *data.AdminSettingsRepo
	events   *service.EventService
	polls    *service.PollService
	alerts   *service.AlertService
	hasher   cryptoutil.Hasher
}

// NewServices constructs all required services for seeding using the provided DB.
func NewServices(db *sql.DB) (Services, error) {
	hasher, err := cryptoutil.NewArgon2idHasher(cryptoutil.DefaultArgon2idParams())
	if err != nil {
		return Services{}, fmt.Errorf("build hasher: %w", err)
	}

	settings, err := data.NewAdminSettingsRepo(data.AdminSettingsRepoOptions{DB: db, Hasher: hasher})
	if err != nil {
		return Services{}, fmt.Errorf("build admin settings repo: %w", err)
	}

	return Services{
		DB:       db,
		users:    data.NewUserRepo(db),
		profiles: data.NewProfileRepo(db),
		settings: settings,
		events:   service.NewEventService(service.EventServiceOptions{Repo: data.NewEventRepo(db)}),
		polls:    service.NewPollService(service.PollServiceOptions{Repo: data.NewPollRepo(db)}),
		alerts:   service.NewAlertService(service.AlertServiceOptions{Repo: data.NewAlertRepo(db)}),
		hasher:   hasher,
	}, nil
}

// Run seeds development data. Accounts are reused when they already exist,
// so running it twice does not fail; civic records are appended each run.
func Run(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	svcs, err := NewServices(db)
	if err != nil {
		return err
	}

	citizenID, err := svcs.ensureUser(ctx, CitizenEmail, "Seed Citizen", domainauth.RoleCitizen)
	if err != nil {
		return fmt.Errorf("seed citizen: %w", err)
	}
	adminID, err := svcs.ensureUser(ctx, AdminEmail, "Seed Admin", domainauth.RoleAdmin)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	if err := svcs.settings.SetPin(ctx, AdminPin); err != nil {
		return fmt.Errorf("seed admin pin: %w", err)
	}

	if err := svcs.seedCivicRecords(ctx); err != nil {
		return err
	}

	logger.InfoContext(ctx, "development data seeded",
		"citizen_id", citizenID,
		"admin_id", adminID,
		"citizen_email", CitizenEmail,
		"admin_email", AdminEmail,
	)
	return nil
}

// ensureUser creates the account and profile, or reuses an existing account
// with the same email. Returns the user ID either way.
func (s Services) ensureUser(ctx context.Context, email, fullName string, role domainauth.Role) (string, error) {
	hash, err := s.hasher.Hash(Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, uuid.NewString(), email, hash)
	if errors.Is(err, data.ErrUserExists) {
		user, err = s.users.GetByEmail(ctx, email)
	}
	if err != nil {
		return "", fmt.Errorf("create user %s: %w", email, err)
	}

	if _, err := s.profiles.Ensure(ctx, user.ID, fullName, email); err != nil {
		return "", fmt.Errorf("ensure profile: %w", err)
	}
	if role == domainauth.RoleAdmin {
		if _, err := s.profiles.SetRole(ctx, user.ID, role); err != nil {
			return "", fmt.Errorf("set role: %w", err)
		}
	}
	return user.ID, nil
}

func (s Services) seedCivicRecords(ctx context.Context) error {
	nextWeek := time.Now().Add(7 * 24 * time.Hour)

	events := []*model.CreateEventRequest{
		{
			Title:       "Ward 12 cleanliness drive",
			Description: "Community cleanup of the lakefront walkway. Gloves and bags provided.",
			EventDate:   nextWeek,
			Location:    "Ulsoor Lake entrance",
			PinCode:     "560008",
		},
		{
			Title:       "Monsoon preparedness town hall",
			Description: "Corporation engineers present the storm water drain work plan.",
			EventDate:   nextWeek.Add(48 * time.Hour),
			Location:    "Ward office meeting hall",
			PinCode:     "560001",
		},
	}
	for _, req := range events {
		if _, err := s.events.Create(ctx, req); err != nil {
			return fmt.Errorf("seed event %q: %w", req.Title, err)
		}
	}

	if _, err := s.polls.Create(ctx, &model.CreatePollRequest{
		Question: "Which road should be resurfaced first?",
		Options:  []string{"Market Road", "Temple Street", "Station Approach"},
		PinCode:  "560001",
	}); err != nil {
		return fmt.Errorf("seed poll: %w", err)
	}

	alerts := []*model.CreateAlertRequest{
		{
			Title:       "Scheduled water supply maintenance",
			Description: "No supply on Thursday 10:00-16:00 in wards 11 and 12.",
			Priority:    model.AlertPriorityMedium,
			PinCode:     "560008",
		},
		{
			Title:       "Tree fallen across Station Approach",
			Description: "Road closed to traffic until the clearance crew finishes.",
			Priority:    model.AlertPriorityHigh,
			PinCode:     "560001",
		},
	}
	for _, req := range alerts {
		if _, err := s.alerts.Create(ctx, req); err != nil {
			return fmt.Errorf("seed alert %q: %w", req.Title, err)
		}
	}

	return nil
}
