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
	errInvalidCredentials = errors.New("invalid username or password")
	errAccountDisabled    = errors.New("your account is disabled")
)

type AuthController struct {
	DB     *gorm.DB
	Tokens *utils.TokenManager
}

func NewAuthController(db *gorm.DB, tokens *utils.TokenManager) *AuthController {
	return &AuthController{DB: db, Tokens: tokens}
}

// Login verifies the credentials and returns a signed token.
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondErrorDetails(c, http.StatusBadRequest, ErrInvalidPayload.Error(), err)
		return
	}

	var user models.User
	if err := ac.DB.WithContext(c.Request.Context()).Where("username = ?", input.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusUnauthorized, errInvalidCredentials)
			return
		}
		utils.RespondErrorDetails(c, http.StatusInternalServerError, "failed to login", err)
		return
	}

	if !user.Enabled {
		utils.RespondError(c, http.StatusForbidden, errAccountDisabled)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errInvalidCredentials)
		return
	}

	token, err := ac.Tokens.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		utils.RespondErrorDetails(c, http.StatusInternalServerError, "failed to login", err)
		return
	}

	utils.InfoLogger.Infof("Login successful for user: %s, role: %s", user.Username, user.Role)

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"name":     user.Name,
			"role":     user.Role,
		},
	})
}

// ChangePassword replaces the caller's password after checking the current one.
func (ac *AuthController) ChangePassword(c *gin.Context) {
	var input struct {
		Password    string `json:"password" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondErrorDetails(c, http.StatusBadRequest, ErrInvalidPayload.Error(), err)
		return
	}

	who := currentIdentity(c)
	db := ac.DB.WithContext(c.Request.Context())

	var user models.User
	if err := db.First(&user, who.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
			return
		}
		utils.RespondErrorDetails(c, http.StatusInternalServerError, "failed to change password", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, ErrInvalidPassword)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondErrorDetails(c, http.StatusInternalServerError, "failed to change password", err)
		return
	}

	if err := db.Model(&user).Update("password", string(hashed)).Error; err != nil {
		utils.RespondErrorDetails(c, http.StatusInternalServerError, "failed to change password", err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Password changed", nil)
}
