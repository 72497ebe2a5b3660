package model

import "time"

// Language is a seeded catalog entry for a supported target language.
// Slug is the stable external code (e.g. "python"); clients never reference
// languages by free text.
type Language struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Slug      string    `json:"code" gorm:"uniqueIndex;size:50;not null"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
