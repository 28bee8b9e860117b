package models

import "gorm.io/gorm"

// SavedList is one entry in a user's search history: the platform and genre
// they asked recommendations for. Append-only.
type SavedList struct {
	gorm.Model
	UserID   uint   `gorm:"not null;index"`
	Platform string `gorm:"size:50;not null"`
	Genre    string `gorm:"size:50;not null"`

	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
