package models

import "gorm.io/gorm"

// Game is a locally cached copy of a result fetched from the RAWG API.
// The same RAWG game can appear once per (platform, genre) search combination.
type Game struct {
	gorm.Model
	RawgID      int64   `gorm:"not null;uniqueIndex:idx_games_source"`
	Platform    string  `gorm:"size:50;not null;uniqueIndex:idx_games_source;index:idx_games_lookup"`
	Genre       string  `gorm:"size:50;not null;uniqueIndex:idx_games_source;index:idx_games_lookup"`
	Title       string  `gorm:"size:200;not null"`
	Rating      float64 `gorm:"not null"` // 0-100 scale
	ImageURL    string  `gorm:"size:512"`
	Description string  `gorm:"type:text"`
}
