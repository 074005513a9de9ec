package utils

import (
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// UploadFileName builds the stored name for an upload: current unix millis
// plus the original extension. Uniqueness holds per milli-instant; concurrent
// uploads in the same instant are a known, accepted collision risk.
func UploadFileName(original string) string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + filepath.Ext(original)
}

// SaveUpload stores a multipart file under dir and returns the stored
// filename (not the full path, records keep the name only).
func SaveUpload(c *gin.Context, fh *multipart.FileHeader, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := UploadFileName(fh.Filename)
	if err := c.SaveUploadedFile(fh, filepath.Join(dir, name)); err != nil {
		return "", err
	}
	return name, nil
}

// RemoveUploadIfExists deletes a previously stored upload; a missing file or
// an empty name is a no-op.
func RemoveUploadIfExists(dir, name string) {
	if name == "" {
		return
	}
	path := filepath.Join(dir, name)
	if info, err := os.Lstat(path); err == nil && info.Mode().IsRegular() {
		_ = os.Remove(path)
	}
}
