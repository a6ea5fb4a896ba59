package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"eats-api/internal/service"
)

func TestFailStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", service.NotFound("Order not found."), http.StatusNotFound},
		{"forbidden", service.Forbidden("You don't have permission to do that."), http.StatusForbidden},
		{"conflict", service.Conflict("Order already has been taken."), http.StatusConflict},
		{"unauthenticated", service.Unauthenticated("Forbidden resource"), http.StatusUnauthorized},
		{"internal", service.Internal("Could not create order."), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			fail(c, tt.err)
			assert.Equal(t, tt.want, w.Code)
			assert.JSONEq(t, `{"ok": false, "error": "`+tt.err.Error()+`"}`, w.Body.String())
		})
	}
}

func TestOKMergesPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	ok(c, http.StatusCreated, gin.H{"id": 5})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"ok": true, "id": 5}`, w.Body.String())
}
