package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	gorm.Model

	Name               string `gorm:"not null"`
	Description        string
	ClientID           uint `gorm:"not null;index"`
	StartDate          time.Time
	ExpectedEndDate    *time.Time
	ActualEndDate      *time.Time
	Status             string `gorm:"not null;default:Ongoing"` // "Ongoing", "Completed", "OnHold"
	ProgressPercentage int    `gorm:"not null;default:0"`
	TeamLeadID         uint   `gorm:"not null;index"`
	TeamLeadName       string
	TechStack          string // JSON string or comma-separated

	// Relationships
	Client      Client          `gorm:"foreignKey:ClientID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	TeamLead    User            `gorm:"foreignKey:TeamLeadID"`
	TeamMembers []TeamMember    `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Modules     []ProjectModule `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
