package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/business-manager/middlewares"
	"github.com/yeremiapane/business-manager/repository"
	"github.com/yeremiapane/business-manager/services"
	"github.com/yeremiapane/business-manager/utils"
)

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

var (
	ErrInvalidID       = &CustomError{"invalid id"}
	ErrInvalidPayload  = &CustomError{"invalid request body"}
	ErrInvalidPassword = &CustomError{"current password is incorrect"}
)

// parseID reads a positive numeric path parameter.
func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		utils.RespondError(c, http.StatusBadRequest, ErrInvalidID)
		return 0, false
	}
	return uint(id), true
}

func currentIdentity(c *gin.Context) services.Identity {
	id, _ := c.Get(middlewares.ContextUserID)
	userID, _ := id.(uint)
	return services.Identity{
		ID:       userID,
		Username: c.GetString(middlewares.ContextUsername),
		Role:     c.GetString(middlewares.ContextRole),
	}
}

// respondServiceError maps typed errors to status codes. Anything unknown is a
// 500 carrying the underlying error in details.
func respondServiceError(c *gin.Context, message string, err error) {
	var validation *services.ValidationError
	var notFound *repository.NotFoundError

	switch {
	case errors.As(err, &validation):
		utils.RespondError(c, http.StatusBadRequest, validation)
	case errors.As(err, &notFound):
		utils.RespondError(c, http.StatusNotFound, notFound)
	case errors.Is(err, repository.ErrInUse):
		utils.RespondError(c, http.StatusConflict, err)
	default:
		utils.ErrorLogger.WithField("request_id", c.GetString(middlewares.ContextRequestID)).
			Errorf("%s: %v", message, err)
		utils.RespondErrorDetails(c, http.StatusInternalServerError, message, err)
	}
}

func optionalString(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
