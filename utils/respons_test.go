package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondJSON(c, http.StatusOK, "ok", gin.H{"id": 1})

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["status"])
	assert.Equal(t, "ok", body["message"])
	assert.NotContains(t, body, "details")
	assert.Equal(t, float64(1), body["data"].(map[string]interface{})["id"])

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	RespondErrorDetails(c, http.StatusInternalServerError, "failed", errors.New("disk full"))

	body = map[string]interface{}{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, body["status"])
	assert.Equal(t, "failed", body["message"])
	assert.Equal(t, "disk full", body["details"])
	assert.NotContains(t, body, "data")
}
