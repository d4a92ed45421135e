// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"gorm.io/gorm"
)

type VerticalSlug string

// The set of content verticals is fixed; plans bundle them and news
// articles are categorized by them.
const (
	VerticalPower  VerticalSlug = "poder"
	VerticalTax    VerticalSlug = "tributos"
	VerticalHealth VerticalSlug = "saude"
	VerticalEnergy VerticalSlug = "energia"
	VerticalLabor  VerticalSlug = "trabalhista"
)

var VerticalSlugs = []VerticalSlug{
	VerticalPower,
	VerticalTax,
	VerticalHealth,
	VerticalEnergy,
	VerticalLabor,
}

func (s VerticalSlug) Valid() bool {
	for _, known := range VerticalSlugs {
		if s == known {
			return true
		}
	}
	return false
}

type Vertical struct {
	ID          uint         `gorm:"primaryKey"`
	Slug        VerticalSlug `gorm:"size:15;not null;uniqueIndex"`
	Name        string       `gorm:"size:100;not null"`
	Description string       `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func init() {
	AllModels = append(AllModels, &Vertical{})
}
