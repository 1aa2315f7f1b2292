package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/business-manager/models"
	"github.com/yeremiapane/business-manager/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	errUsernameTaken = errors.New("username is already in use")
	errInvalidRole   = errors.New("role must be one of admin, manager, user")
	errUserNotFound  = errors.New("user not found")
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

type userRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Enabled  *bool  `json:"enabled"`
}

func (uc *UserController) GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := uc.DB.WithContext(c.Request.Context()).Order("id ASC").Find(&users).Error; err != nil {
		utils.RespondErrorDetails(c, http.StatusInternalServerError, "failed to fetch users", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Users retrieved", users)
}

func (uc *UserController) CreateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondErrorDetails(c, http.StatusBadRequest, ErrInvalidPayload.Error(), err)
		return
	}
	if req.Username == "" || req.Password == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("username and password are required"))
		return
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}
	if !models.ValidRole(req.Role) {
		utils.RespondError(c, http.StatusBadRequest, errInvalidRole)
		return
	}

	db := uc.DB.WithContext(c.Request.Context())

	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		utils.RespondErrorDetails(c, http.StatusInternalServerError, "failed to create user", err)
		return
	}
	if count > 0 {
		utils.RespondError(c, http.StatusBadRequest, errUsernameTaken)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondErrorDetails(c, http.StatusInternalServerError, "failed to create user", err)
		return
	}

	user := models.User{
		Username: req.Username,
		Password: string(hashed),
		Name:     req.Name,
		Role:     req.Role,
		Enabled:  req.Enabled == nil || *req.Enabled,
	}
	if err := db.Create(&user).Error; err != nil {
		utils.RespondErrorDetails(c, http.StatusInternalServerError, "failed to create user", err)
		return
	}

	utils.InfoLogger.Infof("New user created: %s (role=%s)", user.Username, user.Role)
	utils.RespondJSON(c, http.StatusOK, "User created", user)
}

// UpdateUser changes the fields that were sent; a non-empty password resets it.
func (uc *UserController) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondErrorDetails(c, http.StatusBadRequest, ErrInvalidPayload.Error(), err)
		return
	}
	if req.Role != "" && !models.ValidRole(req.Role) {
		utils.RespondError(c, http.StatusBadRequest, errInvalidRole)
		return
	}

	db := uc.DB.WithContext(c.Request.Context())

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errUserNotFound)
			return
		}
		utils.RespondErrorDetails(c, http.StatusInternalServerError, "failed to update user", err)
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Enabled != nil {
		user.Enabled = *req.Enabled
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondErrorDetails(c, http.StatusInternalServerError, "failed to update user", err)
			return
		}
		user.Password = string(hashed)
	}

	if err := db.Save(&user).Error; err != nil {
		utils.RespondErrorDetails(c, http.StatusInternalServerError, "failed to update user", err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "User updated", user)
}

func (uc *UserController) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if currentIdentity(c).ID == id {
		utils.RespondError(c, http.StatusBadRequest, errors.New("you cannot delete your own account"))
		return
	}

	result := uc.DB.WithContext(c.Request.Context()).Delete(&models.User{}, id)
	if result.Error != nil {
		utils.RespondErrorDetails(c, http.StatusInternalServerError, "failed to delete user", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errUserNotFound)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "User deleted", nil)
}
