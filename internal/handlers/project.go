package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/staffline-dev/staffline/db"
	"github.com/staffline-dev/staffline/internal/models"
	"github.com/staffline-dev/staffline/internal/types"
	"github.com/staffline-dev/staffline/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreateProjectRequest struct {
	Name            string     `json:"name" binding:"required"`
	Description     string     `json:"description"`
	ClientID        uint       `json:"client_id" binding:"required"`
	StartDate       time.Time  `json:"start_date" binding:"required"`
	ExpectedEndDate *time.Time `json:"expected_end_date"`
	TeamLeadID      uint       `json:"team_lead_id" binding:"required"`
	TeamLeadName    string     `json:"team_lead_name"`
	TechStack       string     `json:"tech_stack"`
}

// UpdateProjectRequest carries partial-patch semantics: nil fields are left
// untouched on the stored project.
type UpdateProjectRequest struct {
	Name               *string    `json:"name"`
	Description        *string    `json:"description"`
	ExpectedEndDate    *time.Time `json:"expected_end_date"`
	ActualEndDate      *time.Time `json:"actual_end_date"`
	Status             *string    `json:"status"`
	ProgressPercentage *int       `json:"progress_percentage"`
	TechStack          *string    `json:"tech_stack"`
}

type UpdateProgressRequest struct {
	ProgressPercentage *int `json:"progress_percentage" binding:"required"`
}

type AddTeamMemberRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role"`
}

type AddModuleRequest struct {
	ModuleName     string     `json:"module_name" binding:"required"`
	Description    string     `json:"description"`
	AssignedToID   uint       `json:"assigned_to_id"`
	AssignedToName string     `json:"assigned_to_name"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
}

func teamMemberToResponse(member models.TeamMember) types.TeamMemberResponse {
	return types.TeamMemberResponse{
		ID:         member.ID,
		UserID:     member.UserID,
		Name:       member.Name,
		Email:      member.Email,
		Role:       member.Role,
		JoinedDate: member.JoinedDate,
		IsActive:   member.IsActive,
	}
}

func moduleToResponse(module models.ProjectModule) types.ModuleResponse {
	return types.ModuleResponse{
		ID:                 module.ID,
		ModuleName:         module.ModuleName,
		Description:        module.Description,
		AssignedToID:       module.AssignedToID,
		AssignedToName:     module.AssignedToName,
		Status:             module.Status,
		ProgressPercentage: module.ProgressPercentage,
		StartDate:          module.StartDate,
		EndDate:            module.EndDate,
	}
}

func projectToResponse(project models.Project) types.ProjectResponse {
	members := make([]types.TeamMemberResponse, 0, len(project.TeamMembers))

	for _, member := range project.TeamMembers {
		members = append(members, teamMemberToResponse(member))
	}

	modules := make([]types.ModuleResponse, 0, len(project.Modules))

	for _, module := range project.Modules {
		modules = append(modules, moduleToResponse(module))
	}

	return types.ProjectResponse{
		ID:                 project.ID,
		Name:               project.Name,
		Description:        project.Description,
		ClientID:           project.ClientID,
		ClientName:         project.Client.CompanyName,
		StartDate:          project.StartDate,
		ExpectedEndDate:    project.ExpectedEndDate,
		ActualEndDate:      project.ActualEndDate,
		Status:             project.Status,
		ProgressPercentage: project.ProgressPercentage,
		TeamLeadID:         project.TeamLeadID,
		TeamLeadName:       project.TeamLeadName,
		TechStack:          project.TechStack,
		CreatedAt:          project.CreatedAt,
		UpdatedAt:          project.UpdatedAt,
		TeamMembers:        members,
		Modules:            modules,
	}
}

func findProject(ctx *gin.Context) (models.Project, bool) {
	var project models.Project

	projectID, err := utils.GetParamID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return project, false
	}

	if err := db.DB.Preload("Client").Preload("TeamMembers").Preload("Modules").First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
		} else {
			log.Printf("Failed to fetch project: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return project, false
	}

	return project, true
}

func ListProjects(ctx *gin.Context) {
	query := db.DB.Model(&models.Project{}).
		Preload("Client").
		Preload("TeamMembers").
		Preload("Modules")

	if clientID := ctx.Query("client_id"); clientID != "" {
		id, err := strconv.ParseUint(clientID, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid client_id"})
			return
		}
		query = query.Where("client_id = ?", uint(id))
	}

	if status := ctx.Query("status"); status != "" {
		query = query.Where("LOWER(status) = ?", strings.ToLower(status))
	}

	if search := ctx.Query("search"); search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR client_id IN (SELECT id FROM clients WHERE LOWER(company_name) LIKE ?)",
			term, term, term,
		)
	}

	var projects []models.Project

	if err := query.Find(&projects).Error; err != nil {
		log.Printf("Failed to list projects: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	response := make([]types.ProjectResponse, 0, len(projects))

	for _, project := range projects {
		response = append(response, projectToResponse(project))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetProject(ctx *gin.Context) {
	project, ok := findProject(ctx)

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, projectToResponse(project))
}

func CreateProject(ctx *gin.Context) {
	var req CreateProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	var client models.Client

	err := db.DB.Where("id = ? AND is_active = ?", req.ClientID, true).First(&client).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Client not found or inactive"})
			return
		}
		log.Printf("Failed to fetch client: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	var teamLead models.User

	err = db.DB.Where("id = ? AND is_active = ?", req.TeamLeadID, true).First(&teamLead).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Team lead not found or inactive"})
			return
		}
		log.Printf("Failed to fetch team lead: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	if req.TeamLeadName == "" {
		req.TeamLeadName = teamLead.Username
	}

	if req.ExpectedEndDate != nil && req.ExpectedEndDate.Before(req.StartDate) {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Expected end date must not precede start date"})
		return
	}

	project := models.Project{
		Name:               req.Name,
		Description:        req.Description,
		ClientID:           req.ClientID,
		StartDate:          req.StartDate,
		ExpectedEndDate:    req.ExpectedEndDate,
		Status:             types.ProjectStatusOngoing,
		ProgressPercentage: 0,
		TeamLeadID:         req.TeamLeadID,
		TeamLeadName:       req.TeamLeadName,
		TechStack:          req.TechStack,
	}

	if err := db.DB.Create(&project).Error; err != nil {
		log.Printf("Failed to create project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	project.Client = client

	ctx.JSON(http.StatusCreated, projectToResponse(project))
}

func UpdateProject(ctx *gin.Context) {
	project, ok := findProject(ctx)

	if !ok {
		return
	}

	var req UpdateProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	if req.ProgressPercentage != nil && (*req.ProgressPercentage < 0 || *req.ProgressPercentage > 100) {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Progress percentage must be between 0 and 100"})
		return
	}

	if req.Status != nil && !types.IsValidProjectStatus(*req.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Status must be Ongoing, Completed or OnHold"})
		return
	}

	if req.ExpectedEndDate != nil && req.ExpectedEndDate.Before(project.StartDate) {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Expected end date must not precede start date"})
		return
	}

	if req.ActualEndDate != nil && req.ActualEndDate.Before(project.StartDate) {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Actual end date must not precede start date"})
		return
	}

	if req.Name != nil {
		project.Name = *req.Name
	}

	if req.Description != nil {
		project.Description = *req.Description
	}

	if req.ExpectedEndDate != nil {
		project.ExpectedEndDate = req.ExpectedEndDate
	}

	if req.ActualEndDate != nil {
		project.ActualEndDate = req.ActualEndDate
	}

	if req.Status != nil {
		project.Status = *req.Status
	}

	if req.ProgressPercentage != nil {
		project.ProgressPercentage = *req.ProgressPercentage
	}

	if req.TechStack != nil {
		project.TechStack = *req.TechStack
	}

	if err := db.DB.Omit(clause.Associations).Save(&project).Error; err != nil {
		log.Printf("Failed to update project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, projectToResponse(project))
}

func UpdateProjectProgress(ctx *gin.Context) {
	project, ok := findProject(ctx)

	if !ok {
		return
	}

	var req UpdateProgressRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Progress percentage is required"})
		return
	}

	if *req.ProgressPercentage < 0 || *req.ProgressPercentage > 100 {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Progress percentage must be between 0 and 100"})
		return
	}

	project.ProgressPercentage = *req.ProgressPercentage

	if err := db.DB.Omit(clause.Associations).Save(&project).Error; err != nil {
		log.Printf("Failed to update project progress: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, projectToResponse(project))
}

func AddTeamMember(ctx *gin.Context) {
	project, ok := findProject(ctx)

	if !ok {
		return
	}

	var req AddTeamMemberRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	var user models.User

	err := db.DB.Where("id = ? AND is_active = ?", req.UserID, true).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "User not found or inactive"})
			return
		}
		log.Printf("Failed to fetch user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	var existing models.TeamMember

	err = db.DB.Where("project_id = ? AND user_id = ? AND is_active = ?", project.ID, req.UserID, true).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "User is already a team member of this project"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking membership: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	member := models.TeamMember{
		ProjectID:  project.ID,
		UserID:     user.ID,
		Name:       user.Username,
		Email:      user.Email,
		Role:       req.Role,
		JoinedDate: time.Now().UTC(),
		IsActive:   true,
	}

	if err := db.DB.Create(&member).Error; err != nil {
		// A racing duplicate loses on the composite unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "User is already a team member of this project"})
			return
		}
		log.Printf("Failed to add team member: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, teamMemberToResponse(member))
}

func AddModule(ctx *gin.Context) {
	project, ok := findProject(ctx)

	if !ok {
		return
	}

	var req AddModuleRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	var assignedToID *uint

	if req.AssignedToID > 0 {
		var member models.TeamMember

		err := db.DB.Where("id = ? AND project_id = ? AND is_active = ?", req.AssignedToID, project.ID, true).First(&member).Error

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusBadRequest, gin.H{"message": "Assigned team member not found in this project"})
				return
			}
			log.Printf("Failed to fetch team member: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		assignedToID = &member.ID

		if req.AssignedToName == "" {
			req.AssignedToName = member.Name
		}
	}

	var existing models.ProjectModule

	err := db.DB.Where("project_id = ? AND module_name = ?", project.ID, req.ModuleName).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Module name already exists in this project"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking module name: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "End date must not precede start date"})
		return
	}

	module := models.ProjectModule{
		ProjectID:          project.ID,
		ModuleName:         req.ModuleName,
		Description:        req.Description,
		AssignedToID:       assignedToID,
		AssignedToName:     req.AssignedToName,
		Status:             types.ModuleStatusNotStarted,
		ProgressPercentage: 0,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
	}

	if err := db.DB.Create(&module).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Module name already exists in this project"})
			return
		}
		log.Printf("Failed to add module: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, moduleToResponse(module))
}

// DeleteProject removes the project together with its team members and
// modules, reporting how many of each were deleted.
func DeleteProject(ctx *gin.Context) {
	project, ok := findProject(ctx)

	if !ok {
		return
	}

	deletedMembers := len(project.TeamMembers)
	deletedModules := len(project.Modules)

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", project.ID).Delete(&models.ProjectModule{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, project.ID).Error
	})

	if err != nil {
		log.Printf("Failed to delete project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":              "Project deleted successfully",
		"deleted_team_members": deletedMembers,
		"deleted_modules":      deletedModules,
	})
}
