package dto

import (
	"fmt"
	"mime/multipart"
	"strings"
)

const PDFContentType = "application/pdf"

// UploadFichaRequest represents an uploaded ficha financeira
type UploadFichaRequest struct {
	File     *multipart.FileHeader `form:"file" binding:"required"`
	Password string                `form:"password"`
}

// Validate checks the declared content type and the size limit
func (r *UploadFichaRequest) Validate(maxFileSize int64) error {
	if r.File == nil {
		return fmt.Errorf("file is required")
	}

	contentType := r.File.Header.Get("Content-Type")
	if mediaType, _, found := strings.Cut(contentType, ";"); found {
		contentType = mediaType
	}
	if strings.TrimSpace(strings.ToLower(contentType)) != PDFContentType {
		return ErrNotPDF
	}

	if maxFileSize > 0 && r.File.Size > maxFileSize {
		return ErrFileTooLarge
	}

	return nil
}
