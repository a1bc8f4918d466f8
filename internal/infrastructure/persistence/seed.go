package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/agencydesk/backend/internal/domain/identity"
	"github.com/agencydesk/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Seed data written on first boot. Every write uses FirstOrCreate, so
// running the seeder repeatedly is safe and never duplicates rows.
var (
	seedUnits          = []string{"PCs", "Unit", "NOs"}
	seedPaymentMethods = []string{"Cash", "Card", "GPay", "Credit"}
)

// Seeder provisions the initial admin account and lookup data
type Seeder struct {
	db     *gorm.DB
	cfg    *config.SeedConfig
	logger *zap.Logger
}

// NewSeeder creates a new Seeder
func NewSeeder(db *gorm.DB, cfg *config.SeedConfig, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{db: db, cfg: cfg, logger: logger}
}

// Run seeds the admin user, measurement units and payment methods
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedAdmin(ctx); err != nil {
		return fmt.Errorf("seeding admin user: %w", err)
	}
	if err := s.seedUnits(ctx); err != nil {
		return fmt.Errorf("seeding units: %w", err)
	}
	if err := s.seedPaymentMethods(ctx); err != nil {
		return fmt.Errorf("seeding payment methods: %w", err)
	}
	return nil
}

// seedAdmin creates the admin account if no user exists with the configured
// email. The password is hashed by the domain constructor; an existing row
// is left untouched.
func (s *Seeder) seedAdmin(ctx context.Context) error {
	email := strings.ToLower(s.cfg.AdminEmail)

	var count int64
	if err := s.db.WithContext(ctx).
		Model(&identity.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin, err := identity.NewUser(s.cfg.AdminName, "", email, s.cfg.AdminPassword)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(admin).Error; err != nil {
		return err
	}

	s.logger.Info("seeded admin user", zap.String("email", email))
	return nil
}

func (s *Seeder) seedUnits(ctx context.Context) error {
	repo := NewGormUnitRepository(s.db)
	for _, name := range seedUnits {
		if err := repo.EnsureExists(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedPaymentMethods(ctx context.Context) error {
	repo := NewGormPaymentOptionRepository(s.db)
	for _, name := range seedPaymentMethods {
		if err := repo.EnsureExists(ctx, name); err != nil {
			return err
		}
	}
	return nil
}
