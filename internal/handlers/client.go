package handlers

import (
	"errors"
	"fmt"
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

type SaveClientRequest struct {
	Name                  string `json:"name" binding:"required"`
	CompanyName           string `json:"company_name" binding:"required"`
	Email                 string `json:"email" binding:"required,email"`
	Phone                 string `json:"phone"`
	ClientType            string `json:"client_type"`
	Industry              string `json:"industry"`
	Status                string `json:"status"`
	Location              string `json:"location"`
	AssignedRecruiterID   *uint  `json:"assigned_recruiter_id"`
	AssignedRecruiterName string `json:"assigned_recruiter_name"`
}

func clientToResponse(client models.Client) types.ClientResponse {
	ongoing, completed := 0, 0

	for _, project := range client.Projects {
		switch project.Status {
		case types.ProjectStatusOngoing:
			ongoing++
		case types.ProjectStatusCompleted:
			completed++
		}
	}

	return types.ClientResponse{
		ID:                    client.ID,
		Name:                  client.Name,
		CompanyName:           client.CompanyName,
		Email:                 client.Email,
		Phone:                 client.Phone,
		ClientType:            client.ClientType,
		Industry:              client.Industry,
		Status:                client.Status,
		Location:              client.Location,
		AssignedRecruiterID:   client.AssignedRecruiterID,
		AssignedRecruiterName: client.AssignedRecruiterName,
		OnboardedDate:         client.OnboardedDate,
		DateAdded:             client.DateAdded,
		IsActive:              client.IsActive,
		TotalProjects:         len(client.Projects),
		OngoingProjects:       ongoing,
		CompletedProjects:     completed,
	}
}

func parseDateFilter(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// resolveRecruiter checks the assigned-recruiter reference against the user
// store and snapshots the display name when the request leaves it blank.
func resolveRecruiter(req *SaveClientRequest) (int, error) {
	if req.AssignedRecruiterID == nil || *req.AssignedRecruiterID == 0 {
		return 0, nil
	}

	var recruiter models.User

	err := db.DB.Where("id = ? AND is_active = ?", *req.AssignedRecruiterID, true).First(&recruiter).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return http.StatusBadRequest, errors.New("Assigned recruiter not found or inactive")
		}
		return http.StatusInternalServerError, err
	}

	if req.AssignedRecruiterName == "" {
		req.AssignedRecruiterName = recruiter.Username
	}

	return 0, nil
}

func ListClients(ctx *gin.Context) {
	query := db.DB.Model(&models.Client{}).Preload("Projects")

	if industry := ctx.Query("industry"); industry != "" {
		query = query.Where("industry = ?", industry)
	}

	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if clientType := ctx.Query("client_type"); clientType != "" {
		query = query.Where("client_type = ?", clientType)
	}

	if location := ctx.Query("location"); location != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(location)+"%")
	}

	if recruiterID := ctx.Query("recruiter_id"); recruiterID != "" {
		id, err := strconv.ParseUint(recruiterID, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid recruiter_id"})
			return
		}
		query = query.Where("assigned_recruiter_id = ?", uint(id))
	}

	if addedAfter := ctx.Query("added_after"); addedAfter != "" {
		t, err := parseDateFilter(addedAfter)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid added_after date"})
			return
		}
		query = query.Where("date_added >= ?", t)
	}

	if addedBefore := ctx.Query("added_before"); addedBefore != "" {
		t, err := parseDateFilter(addedBefore)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid added_before date"})
			return
		}
		query = query.Where("date_added <= ?", t)
	}

	if search := ctx.Query("search"); search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(company_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(location) LIKE ?",
			term, term, term, term,
		)
	}

	var clients []models.Client

	if err := query.Find(&clients).Error; err != nil {
		log.Printf("Failed to list clients: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	response := make([]types.ClientResponse, 0, len(clients))

	for _, client := range clients {
		response = append(response, clientToResponse(client))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetClient(ctx *gin.Context) {
	clientID, err := utils.GetParamID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var client models.Client

	if err := db.DB.Preload("Projects").First(&client, clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Client not found"})
		} else {
			log.Printf("Failed to fetch client: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, clientToResponse(client))
}

func CreateClient(ctx *gin.Context) {
	var req SaveClientRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.ClientType == "" {
		req.ClientType = "New"
	}

	if req.Status == "" {
		req.Status = types.ClientStatusActive
	}

	if !types.IsValidClientStatus(req.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Status must be Active or Inactive"})
		return
	}

	if status, err := resolveRecruiter(&req); err != nil {
		if status == http.StatusInternalServerError {
			log.Printf("Failed to resolve recruiter: %v", err)
			ctx.JSON(status, gin.H{"message": "Internal server error"})
		} else {
			ctx.JSON(status, gin.H{"message": err.Error()})
		}
		return
	}

	var existing models.Client

	err := db.DB.Where("email = ?", req.Email).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Client email already exists"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking client email: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	now := time.Now().UTC()

	client := models.Client{
		Name:                  req.Name,
		CompanyName:           req.CompanyName,
		Email:                 req.Email,
		Phone:                 req.Phone,
		ClientType:            req.ClientType,
		Industry:              req.Industry,
		Status:                req.Status,
		Location:              req.Location,
		AssignedRecruiterID:   req.AssignedRecruiterID,
		AssignedRecruiterName: req.AssignedRecruiterName,
		OnboardedDate:         now,
		DateAdded:             now,
		IsActive:              req.Status != types.ClientStatusInactive,
	}

	if err := db.DB.Create(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Client email already exists"})
			return
		}
		log.Printf("Failed to create client: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, clientToResponse(client))
}

func UpdateClient(ctx *gin.Context) {
	clientID, err := utils.GetParamID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var req SaveClientRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	var client models.Client

	if err := db.DB.Preload("Projects").First(&client, clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Client not found"})
		} else {
			log.Printf("Failed to fetch client: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Status != "" && !types.IsValidClientStatus(req.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Status must be Active or Inactive"})
		return
	}

	if status, err := resolveRecruiter(&req); err != nil {
		if status == http.StatusInternalServerError {
			log.Printf("Failed to resolve recruiter: %v", err)
			ctx.JSON(status, gin.H{"message": "Internal server error"})
		} else {
			ctx.JSON(status, gin.H{"message": err.Error()})
		}
		return
	}

	if req.Email != client.Email {
		var existing models.Client

		err := db.DB.Where("email = ? AND id != ?", req.Email, client.ID).First(&existing).Error

		if err == nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Client email already exists"})
			return
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Database error when checking client email: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
	}

	client.Name = req.Name
	client.CompanyName = req.CompanyName
	client.Email = req.Email
	client.Phone = req.Phone

	if req.ClientType != "" {
		client.ClientType = req.ClientType
	}

	client.Industry = req.Industry
	client.Location = req.Location
	client.AssignedRecruiterID = req.AssignedRecruiterID
	client.AssignedRecruiterName = req.AssignedRecruiterName

	if req.Status != "" {
		client.Status = req.Status
		client.IsActive = req.Status != types.ClientStatusInactive
	}

	if err := db.DB.Omit(clause.Associations).Save(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Client email already exists"})
			return
		}
		log.Printf("Failed to update client: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, clientToResponse(client))
}

// DeleteClient refuses to remove a client that still owns projects; the
// blocking count is reported so the caller knows what to reassign first.
func DeleteClient(ctx *gin.Context) {
	clientID, err := utils.GetParamID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var client models.Client

	if err := db.DB.First(&client, clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Client not found"})
		} else {
			log.Printf("Failed to fetch client: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}

	var projectCount int64

	if err := db.DB.Model(&models.Project{}).Where("client_id = ?", client.ID).Count(&projectCount).Error; err != nil {
		log.Printf("Failed to count client projects: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	if projectCount > 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message":           fmt.Sprintf("Cannot delete client with %d existing project(s)", projectCount),
			"blocking_projects": projectCount,
		})
		return
	}

	if err := db.DB.Delete(&client).Error; err != nil {
		log.Printf("Failed to delete client: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}
