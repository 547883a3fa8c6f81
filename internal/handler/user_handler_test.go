package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareloop/service-sharing/internal/application"
)

func TestUserEndpoints(t *testing.T) {
	srv := newTestServer(t)

	var created application.UserDTO

	t.Run("create", func(t *testing.T) {
		w := srv.do(t, http.MethodPost, "/users", "", gin.H{
			"name": "Alice", "email": "alice@example.com",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		decodeBody(t, w, &created)
		assert.Equal(t, "Alice", created.Name)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		w := srv.do(t, http.MethodPost, "/users", "", gin.H{
			"name": "Clone", "email": "alice@example.com",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("invalid email rejected by binding", func(t *testing.T) {
		w := srv.do(t, http.MethodPost, "/users", "", gin.H{
			"name": "Bob", "email": "not-an-email",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("get", func(t *testing.T) {
		w := srv.do(t, http.MethodGet, "/users/"+created.ID.String(), "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var dto application.UserDTO
		decodeBody(t, w, &dto)
		assert.Equal(t, created.ID, dto.ID)
	})

	t.Run("patch", func(t *testing.T) {
		w := srv.do(t, http.MethodPatch, "/users/"+created.ID.String(), "", gin.H{
			"name": "Alicia",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var dto application.UserDTO
		decodeBody(t, w, &dto)
		assert.Equal(t, "Alicia", dto.Name)
		assert.Equal(t, "alice@example.com", dto.Email)
	})

	t.Run("list", func(t *testing.T) {
		w := srv.do(t, http.MethodGet, "/users", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var dtos []application.UserDTO
		decodeBody(t, w, &dtos)
		assert.Len(t, dtos, 1)
	})

	t.Run("delete", func(t *testing.T) {
		w := srv.do(t, http.MethodDelete, "/users/"+created.ID.String(), "", nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = srv.do(t, http.MethodGet, "/users/"+created.ID.String(), "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		w := srv.do(t, http.MethodGet, "/users/garbage", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
