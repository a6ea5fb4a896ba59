package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Uploader stores a blob under a key and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type UploadHandler struct {
	uploader Uploader
}

func NewUploadHandler(uploader Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

// UploadFile accepts a multipart file and returns the public URL it was
// stored under.
func (h *UploadHandler) UploadFile(c *gin.Context) {
	if h.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "Uploads are not configured"})
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequest(c, err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Could not read file"})
		return
	}
	defer file.Close()

	key := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), fileHeader.Filename)
	url, err := h.uploader.Upload(c.Request.Context(), key, file, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Could not upload file"})
		return
	}
	ok(c, http.StatusCreated, gin.H{"url": url})
}
