package middleware

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/scms/backend/internal/models"
)

const (
	maxImageCount = 5
	maxImageSize  = 5 << 20 // 5MB per file
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadDir returns the directory uploaded images are stored under.
func UploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "uploads"
}

// SaveImages stores the multipart "images" files to disk and returns their
// metadata. Returns an error for too many files, oversized files, or
// unsupported types; a request with no images is fine.
func SaveImages(c *gin.Context) ([]models.ComplaintImage, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// Not a multipart request or no files attached.
		return nil, nil
	}

	files := form.File["images"]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > maxImageCount {
		return nil, fmt.Errorf("at most %d images are allowed", maxImageCount)
	}

	uploadDir := UploadDir()
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	var images []models.ComplaintImage
	for _, file := range files {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedImageExtensions[ext] {
			return nil, fmt.Errorf("unsupported image type %q", ext)
		}
		if file.Size > maxImageSize {
			return nil, fmt.Errorf("image %s exceeds the 5MB limit", file.Filename)
		}

		filename := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(file.Filename))
		dest := filepath.Join(uploadDir, filename)
		if err := c.SaveUploadedFile(file, dest); err != nil {
			return nil, fmt.Errorf("failed to save image: %w", err)
		}

		images = append(images, models.ComplaintImage{
			Filename: filename,
			Path:     "/uploads/" + filename,
			Mimetype: file.Header.Get("Content-Type"),
			Size:     file.Size,
		})
	}
	return images, nil
}

// DiscardImages removes previously saved image files from disk. Used when the
// submission they were attached to is rejected, so no orphan files pile up.
func DiscardImages(images []models.ComplaintImage) {
	dir := UploadDir()
	for _, image := range images {
		os.Remove(filepath.Join(dir, image.Filename))
	}
}
