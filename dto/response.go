package dto

import "errors"

// Custom errors
var (
	ErrNoDocumentProcessed     = errors.New("no ficha has been processed yet")
	ErrResultNotFound          = errors.New("result not found or expired")
	ErrNotPDF                  = errors.New("uploaded file is not a valid PDF")
	ErrFileTooLarge            = errors.New("uploaded file exceeds the size limit")
	ErrUndecodablePDF          = errors.New("PDF could not be decoded")
	ErrPDFPassword             = errors.New("PDF could not be decrypted with the given password")
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// UploadFichaResponse is returned after a ficha has been processed
type UploadFichaResponse struct {
	Status         string         `json:"status"`
	Message        string         `json:"message"`
	ID             string         `json:"id"`
	ReferenceYears []string       `json:"reference_years"`
	Data           DocumentResult `json:"data"`
}
