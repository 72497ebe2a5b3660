package model

import "time"

// Generation is one stored prompt/response pair produced by the AI provider.
// Rows are written exactly once per successful provider call and never
// mutated or deleted.
type Generation struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"index;not null"`
	LanguageID uint      `json:"language_id" gorm:"not null"`
	Prompt     string    `json:"prompt" gorm:"type:text;not null"`
	Code       string    `json:"code" gorm:"type:longtext;not null"`
	CreatedAt  time.Time `json:"created_at"`

	User     User     `json:"-" gorm:"foreignKey:UserID"`
	Language Language `json:"-" gorm:"foreignKey:LanguageID"`
}
