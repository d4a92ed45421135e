// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"gorm.io/gorm"
)

type NewsStatus string

const (
	DraftNews     NewsStatus = "draft"
	PublishedNews NewsStatus = "published"
)

type News struct {
	ID       uint   `gorm:"primaryKey"`
	Title    string `gorm:"size:200;not null"`
	Subtitle string `gorm:"size:300"`
	Content  string `gorm:"type:text;not null"`

	// Category is a vertical slug; pro content is gated by the
	// subscription-to-vertical mapping.
	Category     VerticalSlug `gorm:"size:15;not null;default:'poder'"`
	IsProContent bool         `gorm:"not null;default:false"`
	Status       NewsStatus   `gorm:"size:10;not null;default:'draft'"`

	PublicationDate *time.Time `gorm:"default:null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	AuthorID uint `gorm:"not null;index"`
	Author   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (n *News) IsPublished() bool {
	return n.Status == PublishedNews
}

// Publish moves the article to the published state and stamps the
// publication date. Publishing again re-stamps the date (last call wins).
func (n *News) Publish(now time.Time) {
	n.Status = PublishedNews
	n.PublicationDate = &now
}

func init() {
	AllModels = append(AllModels, &News{})
}
