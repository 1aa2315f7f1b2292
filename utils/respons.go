package utils

import (
	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Details string      `json:"details,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
	})
}

// RespondErrorDetails keeps the public message short and echoes the
// underlying failure in the details field.
func RespondErrorDetails(c *gin.Context, code int, message string, err error) {
	resp := JSONResponse{
		Status:  false,
		Message: message,
	}
	if err != nil {
		resp.Details = err.Error()
	}
	c.JSON(code, resp)
}
