package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/staffline-dev/staffline/db"
	"github.com/staffline-dev/staffline/internal/auth"
	"github.com/staffline-dev/staffline/internal/models"
	"github.com/staffline-dev/staffline/internal/types"
	"github.com/staffline-dev/staffline/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func RegisterUser(ctx *gin.Context) {
	var req RegisterRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Role == "" {
		req.Role = types.RoleEmployee
	}

	var existingUser models.User

	err := db.DB.Where("username = ?", req.Username).First(&existingUser).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Username already exists"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking existing username: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	newUser := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Role:         req.Role,
		IsActive:     true,
	}

	if err := db.DB.Create(&newUser).Error; err != nil {
		// Email uniqueness is enforced by the store; a racing duplicate
		// username lands here as well.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Username or email already exists"})
			return
		}
		log.Printf("Failed to create user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"user": types.UserResponse{
			ID:       newUser.ID,
			Username: newUser.Username,
			Email:    newUser.Email,
			Role:     newUser.Role,
		},
	})
}

func LoginUser(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	var user models.User

	err := db.DB.Where("username = ? AND is_active = ?", req.Username, true).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
			return
		}
		log.Printf("Database error when fetching user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Username, user.Email, user.Role)

	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, types.LoginResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	})
}

func Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user": types.UserResponse{
			ID:       currentUser.ID,
			Username: currentUser.Username,
			Email:    currentUser.Email,
			Role:     currentUser.Role,
		},
	})
}

func ListUsers(ctx *gin.Context) {
	var users []models.User

	if err := db.DB.Find(&users).Error; err != nil {
		log.Printf("Failed to list users: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	response := make([]types.UserDetailResponse, 0, len(users))

	for _, user := range users {
		response = append(response, types.UserDetailResponse{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			Role:      user.Role,
			IsActive:  user.IsActive,
			CreatedAt: user.CreatedAt,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

// ListActiveUsers backs dropdown lists; role filtering is case-insensitive.
func ListActiveUsers(ctx *gin.Context) {
	query := db.DB.Where("is_active = ?", true)

	if role := ctx.Query("role"); role != "" {
		query = query.Where("LOWER(role) = ?", strings.ToLower(role))
	}

	var users []models.User

	if err := query.Find(&users).Error; err != nil {
		log.Printf("Failed to list active users: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	response := make([]types.UserResponse, 0, len(users))

	for _, user := range users {
		response = append(response, types.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

func GetUser(ctx *gin.Context) {
	userID, err := utils.GetParamID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var user models.User

	if err := db.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		} else {
			log.Printf("Failed to fetch user: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, types.UserDetailResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	})
}
