// Package resume wraps the file-to-descriptor step of an application:
// reading an uploaded resume and packaging it as a base64 descriptor.
package resume

import (
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/vagalivre/vagalivre/pkg/models"
)

// maxFileSize caps uploads at 5 MiB, matching what the job board's
// remote backend accepts per document
const maxFileSize = 5 << 20

// EncodeFile reads a resume from disk and returns its descriptor
func EncodeFile(path string) (*models.ResumeFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("resume file too large: %d bytes (limit %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}

	return &models.ResumeFile{
		Name:    filepath.Base(path),
		Type:    detectType(path, data),
		Content: base64.StdEncoding.EncodeToString(data),
	}, nil
}

// detectType prefers the extension-based type and falls back to content
// sniffing
func detectType(path string, data []byte) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return http.DetectContentType(data)
}
