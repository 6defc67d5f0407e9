package types

import "time"

// Response shapes are flat records. Entities are never serialized directly
// to avoid exposing back-references between projects and their collections.

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type UserDetailResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type ClientResponse struct {
	ID                    uint      `json:"id"`
	Name                  string    `json:"name"`
	CompanyName           string    `json:"company_name"`
	Email                 string    `json:"email"`
	Phone                 string    `json:"phone"`
	ClientType            string    `json:"client_type"`
	Industry              string    `json:"industry"`
	Status                string    `json:"status"`
	Location              string    `json:"location"`
	AssignedRecruiterID   *uint     `json:"assigned_recruiter_id"`
	AssignedRecruiterName string    `json:"assigned_recruiter_name"`
	OnboardedDate         time.Time `json:"onboarded_date"`
	DateAdded             time.Time `json:"date_added"`
	IsActive              bool      `json:"is_active"`
	TotalProjects         int       `json:"total_projects"`
	OngoingProjects       int       `json:"ongoing_projects"`
	CompletedProjects     int       `json:"completed_projects"`
}

type ProjectResponse struct {
	ID                 uint                 `json:"id"`
	Name               string               `json:"name"`
	Description        string               `json:"description"`
	ClientID           uint                 `json:"client_id"`
	ClientName         string               `json:"client_name"`
	StartDate          time.Time            `json:"start_date"`
	ExpectedEndDate    *time.Time           `json:"expected_end_date"`
	ActualEndDate      *time.Time           `json:"actual_end_date"`
	Status             string               `json:"status"`
	ProgressPercentage int                  `json:"progress_percentage"`
	TeamLeadID         uint                 `json:"team_lead_id"`
	TeamLeadName       string               `json:"team_lead_name"`
	TechStack          string               `json:"tech_stack"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
	TeamMembers        []TeamMemberResponse `json:"team_members"`
	Modules            []ModuleResponse     `json:"modules"`
}

type TeamMemberResponse struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	JoinedDate time.Time `json:"joined_date"`
	IsActive   bool      `json:"is_active"`
}

type ModuleResponse struct {
	ID                 uint       `json:"id"`
	ModuleName         string     `json:"module_name"`
	Description        string     `json:"description"`
	AssignedToID       *uint      `json:"assigned_to_id"`
	AssignedToName     string     `json:"assigned_to_name"`
	Status             string     `json:"status"`
	ProgressPercentage int        `json:"progress_percentage"`
	StartDate          *time.Time `json:"start_date"`
	EndDate            *time.Time `json:"end_date"`
}
