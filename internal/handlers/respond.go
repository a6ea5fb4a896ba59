package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eats-api/internal/service"
)

// fail writes the uniform failure shape, mapping the service error kind to
// an HTTP status. Callers always get a well-formed {ok, error} body.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch service.KindOf(err) {
	case service.KindNotFound:
		status = http.StatusNotFound
	case service.KindForbidden:
		status = http.StatusForbidden
	case service.KindConflict:
		status = http.StatusConflict
	case service.KindUnauthenticated:
		status = http.StatusUnauthorized
	}
	c.JSON(status, gin.H{"ok": false, "error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
}

func ok(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"ok": true}
	for key, value := range payload {
		body[key] = value
	}
	c.JSON(status, body)
}
