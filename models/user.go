// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"presspass-server/crypto"

	"gorm.io/gorm"
)

var AllModels []any

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleReader Role = "reader"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleReader:
		return true
	}
	return false
}

type User struct {
	ID        uint   `gorm:"primaryKey"`
	PublicID  string `gorm:"size:64;uniqueIndex"`
	Username  string `gorm:"size:150;not null;uniqueIndex"`
	Email     string `gorm:"size:255;not null;uniqueIndex"`
	Password  string `gorm:"not null"`
	FirstName string `gorm:"size:150"`
	LastName  string `gorm:"size:150"`
	Role      Role   `gorm:"size:10;not null;default:'reader'"`
	IsStaff   bool   `gorm:"not null;default:false"`
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.PublicID == "" {
		u.PublicID, err = crypto.GenerateRandomString("usr_", 16, "hex")
		if err != nil {
			return err
		}
	}
	return
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsEditor() bool {
	return u.Role == RoleEditor
}

func (u *User) IsReader() bool {
	return u.Role == RoleReader
}

func init() {
	AllModels = append(AllModels, &User{})
}
