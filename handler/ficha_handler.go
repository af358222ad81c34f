package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/Aashish23092/ficha-financeira/dto"
	"github.com/Aashish23092/ficha-financeira/service"

	"github.com/gin-gonic/gin"
)

const (
	welcomeMessage     = "Bem-vindo à API de Processamento de Fichas Financeiras!"
	processedMessage   = "Ficha processada com sucesso!"
	noDocumentMessage  = "Nenhuma ficha foi processada ainda."
	xlsxContentType    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	csvContentType     = "text/csv; charset=utf-8"
	defaultExportFormat = service.FormatCSV
)

type FichaHandler struct {
	fichaService *service.FichaService
	maxFileSize  int64
}

func NewFichaHandler(fichaService *service.FichaService, maxFileSize int64) *FichaHandler {
	return &FichaHandler{
		fichaService: fichaService,
		maxFileSize:  maxFileSize,
	}
}

// Root handles GET /
func (h *FichaHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MessageResponse{Message: welcomeMessage})
}

// UploadFicha handles the POST /upload-ficha endpoint
func (h *FichaHandler) UploadFicha(c *gin.Context) {
	log.Println("Received ficha upload request")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "INVALID_FILE", "File is required", err)
		return
	}

	request := &dto.UploadFichaRequest{
		File:     fileHeader,
		Password: c.PostForm("password"),
	}

	if err := request.Validate(h.maxFileSize); err != nil {
		status := http.StatusBadRequest
		code := "INVALID_FILE"
		if errors.Is(err, dto.ErrFileTooLarge) {
			status = http.StatusRequestEntityTooLarge
			code = "FILE_TOO_LARGE"
		}
		h.sendError(c, status, code, "Invalid file", err)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "INVALID_FILE", "Failed to open uploaded file", err)
		return
	}
	defer f.Close()

	pdfData, err := io.ReadAll(f)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "INVALID_FILE", "Failed to read uploaded file", err)
		return
	}

	log.Printf("Processing ficha %s (%d bytes)", fileHeader.Filename, len(pdfData))

	result, err := h.fichaService.ProcessPDF(c.Request.Context(), pdfData, request.Password)
	if err != nil {
		switch {
		case errors.Is(err, dto.ErrPDFPassword):
			h.sendError(c, http.StatusUnprocessableEntity, "INVALID_PASSWORD", "Failed to decrypt ficha", err)
		case errors.Is(err, dto.ErrUndecodablePDF):
			h.sendError(c, http.StatusUnprocessableEntity, "UNPROCESSABLE_PDF", "Failed to decode ficha", err)
		default:
			h.sendError(c, http.StatusInternalServerError, "PROCESSING_FAILED", "Failed to process ficha", err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.UploadFichaResponse{
		Status:         "ok",
		Message:        processedMessage,
		ID:             result.ID.String(),
		ReferenceYears: result.DistinctReferenceYears,
		Data:           result.Result,
	})
}

// GetLastFicha handles GET /fichaFinanceiraJson
func (h *FichaHandler) GetLastFicha(c *gin.Context) {
	result, err := h.fichaService.LastResult()
	if err != nil {
		h.sendError(c, http.StatusNotFound, "NOT_FOUND", noDocumentMessage, nil)
		return
	}
	c.JSON(http.StatusOK, result.Result)
}

// GetFicha handles GET /fichas/:id
func (h *FichaHandler) GetFicha(c *gin.Context) {
	result, err := h.fichaService.Result(c.Param("id"))
	if err != nil {
		h.sendError(c, http.StatusNotFound, "NOT_FOUND", "Result not found", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExportFicha handles GET /fichas/:id/export?format=csv|xlsx
func (h *FichaHandler) ExportFicha(c *gin.Context) {
	id := c.Param("id")
	format := c.DefaultQuery("format", defaultExportFormat)

	var contentType string
	switch format {
	case service.FormatCSV:
		contentType = csvContentType
	case service.FormatXLSX:
		contentType = xlsxContentType
	default:
		h.sendError(c, http.StatusBadRequest, "INVALID_FORMAT", "Unsupported export format",
			fmt.Errorf("%w: %q", dto.ErrUnsupportedExportFormat, format))
		return
	}

	var buf bytes.Buffer
	if err := h.fichaService.Export(&buf, id, format); err != nil {
		if errors.Is(err, dto.ErrResultNotFound) {
			h.sendError(c, http.StatusNotFound, "NOT_FOUND", "Result not found", err)
			return
		}
		h.sendError(c, http.StatusInternalServerError, "EXPORT_FAILED", "Failed to export ficha", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="ficha-%s.%s"`, id, format))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// sendError sends a structured error response
func (h *FichaHandler) sendError(c *gin.Context, statusCode int, code, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: errorMsg,
		Code:    statusCode,
	})
}
