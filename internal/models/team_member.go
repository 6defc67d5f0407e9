package models

import (
	"time"

	"gorm.io/gorm"
)

// TeamMember records a User's participation in one Project. Name and email
// are snapshots taken when the member is added, not live-synced afterward.
type TeamMember struct {
	gorm.Model

	ProjectID  uint   `gorm:"not null;uniqueIndex:idx_project_user"`
	UserID     uint   `gorm:"not null;uniqueIndex:idx_project_user"`
	Name       string `gorm:"not null"`
	Email      string
	Role       string // "Developer", "Designer", "QA", etc.
	JoinedDate time.Time
	IsActive   bool `gorm:"default:true"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
