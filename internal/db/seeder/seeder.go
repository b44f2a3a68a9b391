package seeder

import (
	"context"
	"errors"

	"liveboard/internal/auth"
	"liveboard/internal/config"
	"liveboard/internal/model"
	"liveboard/internal/repository"

	"go.uber.org/zap"
)

type Seeder struct {
	columns repository.ColumnRepositoryInterface
	users   repository.UserRepositoryInterface
	cfg     *config.Config
	logger  *zap.Logger
}

func NewSeeder(
	columns repository.ColumnRepositoryInterface,
	users repository.UserRepositoryInterface,
	cfg *config.Config,
	logger *zap.Logger,
) *Seeder {
	return &Seeder{
		columns: columns,
		users:   users,
		cfg:     cfg,
		logger:  logger,
	}
}

func (s *Seeder) Seed(ctx context.Context) error {
	s.logger.Info("Running database seeders...")

	if err := s.seedColumns(ctx); err != nil {
		return err
	}
	if err := s.seedAdmin(ctx); err != nil {
		return err
	}

	s.logger.Info("Database seeders completed successfully")
	return nil
}

func (s *Seeder) seedColumns(ctx context.Context) error {
	count, err := s.columns.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Info("Columns already exist, skipping seed")
		return nil
	}

	for i, title := range s.cfg.SeedColumns {
		if err := s.columns.Create(ctx, &model.Column{Title: title, OrderIndex: i}); err != nil {
			return err
		}
	}

	s.logger.Info("Seeded columns", zap.Int("count", len(s.cfg.SeedColumns)))
	return nil
}

// seedAdmin creates the admin account named by ADMIN_EMAIL once.
// Roles are never changed through the API, so this is the only way to get an admin.
func (s *Seeder) seedAdmin(ctx context.Context) error {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		return nil
	}

	existing, err := s.users.FindByEmail(ctx, s.cfg.AdminEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.Role != model.RoleAdmin {
			s.logger.Warn("Admin email belongs to a regular user, leaving it unchanged",
				zap.String("email", s.cfg.AdminEmail))
		}
		return nil
	}

	hash, err := auth.HashPassword(s.cfg.AdminPassword, s.cfg.BcryptCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		Email:        s.cfg.AdminEmail,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil
		}
		return err
	}

	s.logger.Info("Seeded admin user", zap.String("email", admin.Email))
	return nil
}
