package config

import (
	"errors"
	"log"

	"washlab-backend/internal/adapters/persistence/models"
	"washlab-backend/internal/core/domain"
	"washlab-backend/internal/pkg/password"

	"gorm.io/gorm"
)

// SeedSuperAdmin creates the initial super-admin account when the users table
// has none. The account comes pre-verified so the first operator can log in
// without a mail server.
func SeedSuperAdmin(db *gorm.DB, cfg *Config) error {
	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		log.Println("⚠️ Seed admin not configured, skipping")
		return nil
	}

	var existing models.User
	err := db.Where("role = ?", string(domain.RoleSuperAdmin)).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := password.Hash(cfg.Seed.AdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		FirstName:  "System",
		LastName:   "Admin",
		Email:      cfg.Seed.AdminEmail,
		Password:   hashed,
		Role:       string(domain.RoleSuperAdmin),
		IsVerified: true,
	}

	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Super admin seeded: %s", admin.Email)
	return nil
}
