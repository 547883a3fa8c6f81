package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupIdentityRouter() (*gin.Engine, *uuid.UUID) {
	gin.SetMode(gin.TestMode)
	var seen uuid.UUID
	r := gin.New()
	r.Use(Identity())
	r.GET("/probe", func(c *gin.Context) {
		id, ok := GetUserID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		seen = id
		c.Status(http.StatusOK)
	})
	return r, &seen
}

func TestIdentity(t *testing.T) {
	router, seen := setupIdentityRouter()
	userID := uuid.New()

	req, _ := http.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(SharerUserHeader, userID.String())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, *seen)
}

func TestIdentity_MissingHeader(t *testing.T) {
	router, _ := setupIdentityRouter()

	req, _ := http.NewRequest(http.MethodGet, "/probe", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"missing X-Sharer-User-Id header"}`, w.Body.String())
}

func TestIdentity_MalformedHeader(t *testing.T) {
	router, _ := setupIdentityRouter()

	req, _ := http.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(SharerUserHeader, "42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"malformed X-Sharer-User-Id header"}`, w.Body.String())
}
