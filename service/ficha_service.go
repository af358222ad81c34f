package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/Aashish23092/ficha-financeira/config"
	"github.com/Aashish23092/ficha-financeira/dto"
	"github.com/Aashish23092/ficha-financeira/exporter"
	"github.com/Aashish23092/ficha-financeira/metrics"
	"github.com/Aashish23092/ficha-financeira/store"
	"github.com/Aashish23092/ficha-financeira/utils/ficha"
	"github.com/google/uuid"
)

// Export formats accepted by FichaService.Export.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

type FichaService struct {
	pdfProcessor PDFProcessor
	layout       *config.Layout
	results      *store.ResultStore
	metrics      *metrics.Metrics
	now          func() time.Time
}

func NewFichaService(
	pdfProcessor PDFProcessor,
	layout *config.Layout,
	results *store.ResultStore,
	m *metrics.Metrics,
) *FichaService {
	return &FichaService{
		pdfProcessor: pdfProcessor,
		layout:       layout,
		results:      results,
		metrics:      m,
		now:          time.Now,
	}
}

// Process extracts a document from decoded pages and publishes it as the
// last result, replacing any previous one.
func (s *FichaService) Process(pages []dto.Page) *dto.ProcessResult {
	doc := ficha.Extract(pages, s.layout)

	result := &dto.ProcessResult{
		ID:                     uuid.New(),
		ProcessedAt:            s.now(),
		Layout:                 s.layout.String(),
		Result:                 doc,
		DistinctReferenceYears: ficha.DistinctReferenceYears(doc.LineItems),
	}
	s.results.Publish(result)
	return result
}

// ProcessPDF decodes pdfData and runs Process on its pages. Nothing is
// published when decoding fails.
func (s *FichaService) ProcessPDF(ctx context.Context, pdfData []byte, password string) (*dto.ProcessResult, error) {
	start := time.Now()

	pages, err := s.pdfProcessor.ExtractPages(ctx, pdfData, password)
	if err != nil {
		s.metrics.ObserveFailure(time.Since(start))
		return nil, fmt.Errorf("failed to decode ficha: %w", err)
	}

	result := s.Process(pages)
	s.metrics.ObserveSuccess(len(pages), len(result.Result.LineItems), time.Since(start))

	log.Printf("Processed ficha %s: %d pages, %d line items, years %v, layout %s",
		result.ID, len(pages), len(result.Result.LineItems), result.DistinctReferenceYears, result.Layout)
	return result, nil
}

// LastResult returns dto.ErrNoDocumentProcessed before the first document.
func (s *FichaService) LastResult() (*dto.ProcessResult, error) {
	return s.results.Last()
}

func (s *FichaService) Result(id string) (*dto.ProcessResult, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, dto.ErrResultNotFound
	}
	return s.results.Get(parsed)
}

// Export writes the result with the given id in format to w.
func (s *FichaService) Export(w io.Writer, id, format string) error {
	result, err := s.Result(id)
	if err != nil {
		return err
	}

	switch format {
	case FormatCSV:
		return exporter.WriteCSV(w, result)
	case FormatXLSX:
		return exporter.WriteXLSX(w, result)
	default:
		return fmt.Errorf("%w: %q", dto.ErrUnsupportedExportFormat, format)
	}
}

// PurgeExpired drops result handles older than ttl.
func (s *FichaService) PurgeExpired(ttl time.Duration) int {
	removed := s.results.PurgeOlderThan(s.now().Add(-ttl))
	if removed > 0 {
		log.Printf("Purged %d expired ficha results", removed)
	}
	return removed
}
