package models

import "gorm.io/gorm"

// User represents a registered account.
type User struct {
	gorm.Model
	Username     string `gorm:"size:80;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:50;not null;default:'user';index"`

	// Search history rows are removed together with the account.
	SavedLists []SavedList `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
