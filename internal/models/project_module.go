package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectModule struct {
	gorm.Model

	ProjectID          uint   `gorm:"not null;uniqueIndex:idx_project_module_name"`
	ModuleName         string `gorm:"not null;uniqueIndex:idx_project_module_name"`
	Description        string
	AssignedToID       *uint `gorm:"index"` // TeamMember of the same project
	AssignedToName     string
	Status             string `gorm:"not null;default:NotStarted"` // "NotStarted", "InProgress", "Completed"
	ProgressPercentage int    `gorm:"not null;default:0"`
	StartDate          *time.Time
	EndDate            *time.Time

	// Relationships
	Project    Project     `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	AssignedTo *TeamMember `gorm:"foreignKey:AssignedToID"`
}
