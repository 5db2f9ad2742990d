package models

import "gorm.io/gorm"

// Flag is a prompt/output pair a user marked from the form.
type Flag struct {
	gorm.Model
	Prompt  string `gorm:"type:text;not null"`
	Output  string `gorm:"type:text;not null"`
	ModelID string
	Label   string
}
