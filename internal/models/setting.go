package models

import "gorm.io/gorm"

// Setting stores site-level key/value configuration.
type Setting struct {
	gorm.Model
	Key   string `gorm:"type:varchar(255);uniqueIndex"`
	Value string `gorm:"type:text"`
}
