// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"gorm.io/gorm"
)

type PlanType string

const (
	InfoPlan PlanType = "info"
	ProPlan  PlanType = "pro"
)

func (p PlanType) Valid() bool {
	return p == InfoPlan || p == ProPlan
}

type Plan struct {
	ID          uint     `gorm:"primaryKey"`
	Name        string   `gorm:"size:100;not null"`
	Slug        string   `gorm:"size:100;not null;uniqueIndex"`
	Description string   `gorm:"type:text"`
	PlanType    PlanType `gorm:"size:10;not null;default:'info'"`
	// Monthly price in BRL.
	Price     float64    `gorm:"not null;default:0"`
	Verticals []Vertical `gorm:"many2many:plan_verticals;"`
	IsActive  bool       `gorm:"not null;default:true"`

	HasTrial  bool `gorm:"not null;default:false"`
	TrialDays uint `gorm:"not null;default:0"`

	DiscountPercent    float64 `gorm:"not null;default:0"`
	DiscountValidUntil *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// CurrentPrice returns the price with the promotional discount applied,
// but only while the discount window is still open.
func (p *Plan) CurrentPrice(now time.Time) float64 {
	if p.DiscountPercent > 0 && p.DiscountValidUntil != nil && p.DiscountValidUntil.After(now) {
		return p.Price - (p.Price * p.DiscountPercent / 100)
	}
	return p.Price
}

// IncludesVertical reports whether the plan bundles the given vertical.
// Verticals must have been preloaded.
func (p *Plan) IncludesVertical(slug VerticalSlug) bool {
	for _, v := range p.Verticals {
		if v.Slug == slug {
			return true
		}
	}
	return false
}

func init() {
	AllModels = append(AllModels, &Plan{})
}
