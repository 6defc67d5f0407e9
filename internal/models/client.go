package models

import (
	"time"

	"gorm.io/gorm"
)

type Client struct {
	gorm.Model

	Name                  string `gorm:"not null"`
	CompanyName           string `gorm:"not null"`
	Email                 string `gorm:"uniqueIndex;not null"`
	Phone                 string
	ClientType            string `gorm:"not null;default:New"` // "New", "Old"
	Industry              string // "IT", "Non-IT", "Legal", "Payroll", "Training"
	Status                string `gorm:"not null;default:Active"` // "Active", "Inactive"
	Location              string
	AssignedRecruiterID   *uint `gorm:"index"`
	AssignedRecruiterName string
	OnboardedDate         time.Time
	DateAdded             time.Time `gorm:"index"`
	IsActive              bool      `gorm:"default:true"`

	// Relationships
	AssignedRecruiter *User     `gorm:"foreignKey:AssignedRecruiterID"`
	Projects          []Project `gorm:"foreignKey:ClientID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
