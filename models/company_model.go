package models

import "gorm.io/gorm"

// CompanyProfile is a single-row table holding the uploaded logo used on
// labels and PDF report headers.
type CompanyProfile struct {
	gorm.Model
	CompanyName string `json:"company_name" gorm:"size:255"`
	LogoPath    string `json:"logo_path" gorm:"size:512"`
	UpdatedBy   int    `json:"updated_by"`
}
