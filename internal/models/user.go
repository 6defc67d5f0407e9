package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null;default:Employee"` // "Manager", "Employee"
	IsActive     bool   `gorm:"default:true"`

	// Relationships
	LeadProjects []Project    `gorm:"foreignKey:TeamLeadID"`
	Memberships  []TeamMember `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
