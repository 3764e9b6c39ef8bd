package models

import "gorm.io/gorm"

type Location struct {
	gorm.Model
	Name        string    `json:"name" gorm:"uniqueIndex;size:255"`
	Description string    `json:"description" gorm:"type:text"`
	ParentID    *uint     `json:"parent_id"`
	Parent      *Location `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedBy   int       `json:"created_by"`
	UpdatedBy   int       `json:"updated_by"`
	DeletedBy   int       `json:"deleted_by"`
}
