// SPDX-License-Identifier: GPL-3.0-only

package db

import (
	"errors"

	"presspass-server/commons"
	"presspass-server/crypto"
	"presspass-server/models"

	"gorm.io/gorm"
)

var verticalNames = map[models.VerticalSlug]string{
	models.VerticalPower:  "Power",
	models.VerticalTax:    "Tax",
	models.VerticalHealth: "Health",
	models.VerticalEnergy: "Energy",
	models.VerticalLabor:  "Labor",
}

// SeedDB makes sure the fixed vertical catalog exists and bootstraps a
// default admin account on an empty database. Runs with --migrate-db.
func SeedDB(conn *gorm.DB) error {
	for _, slug := range models.VerticalSlugs {
		vertical := models.Vertical{Slug: slug, Name: verticalNames[slug]}
		err := conn.Where("slug = ?", slug).First(&models.Vertical{}).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := conn.Create(&vertical).Error; err != nil {
				return err
			}
			commons.Logger.Infof("Seeded vertical %s", slug)
		} else if err != nil {
			return err
		}
	}

	var adminCount int64
	if err := conn.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount).Error; err != nil {
		return err
	}
	if adminCount > 0 {
		return nil
	}

	password := commons.GetEnv("DEFAULT_ADMIN_PASSWORD", "Admin123!change-me")
	hash, err := crypto.NewCrypto().HashPassword(password)
	if err != nil {
		return err
	}
	admin := models.User{
		Username: commons.GetEnv("DEFAULT_ADMIN_USERNAME", "admin"),
		Email:    commons.GetEnv("DEFAULT_ADMIN_EMAIL", "admin@presspass.local"),
		Password: hash,
		Role:     models.RoleAdmin,
		IsStaff:  true,
	}
	if err := conn.Create(&admin).Error; err != nil {
		return err
	}
	commons.Logger.Infof("Seeded default admin account %s", admin.Username)
	return nil
}
