package upload

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skykintech/skyblog-core/internal/pkg/response"
)

// allowed image extensions for the post editor.
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".svg":  true,
	".avif": true,
}

type Handler struct {
	uploadDir string
}

func NewHandler(uploadDir string) *Handler {
	return &Handler{uploadDir: uploadDir}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/upload/image", authMW, h.uploadImage)
}

func (h *Handler) uploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}

	name := buildFileName(fileHeader.Filename)
	if !imageExts[strings.ToLower(filepath.Ext(name))] {
		response.BadRequest(c, "unsupported image type")
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		response.InternalError(c, err)
		return
	}
	if err := c.SaveUploadedFile(fileHeader, filepath.Join(h.uploadDir, name)); err != nil {
		response.InternalError(c, err)
		return
	}

	response.OK(c, gin.H{
		"url":  "/uploads/" + name,
		"name": name,
	})
}

// buildFileName prefixes the upload with a millisecond timestamp and
// strips any path components the client sent.
func buildFileName(original string) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	base = strings.ReplaceAll(base, " ", "-")
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), base)
}
