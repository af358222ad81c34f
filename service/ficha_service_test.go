package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Aashish23092/ficha-financeira/config"
	"github.com/Aashish23092/ficha-financeira/dto"
	"github.com/Aashish23092/ficha-financeira/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePDFProcessor struct {
	pages    []dto.Page
	err      error
	password string
}

func (f *fakePDFProcessor) ExtractPages(ctx context.Context, pdfData []byte, password string) ([]dto.Page, error) {
	f.password = password
	if f.err != nil {
		return nil, f.err
	}
	return f.pages, nil
}

func strPtr(s string) *string { return &s }

func fichaPage(pageLine, year string, rows ...[]*string) dto.Page {
	lines := make([]string, 13)
	lines[1] = pageLine
	lines[12] = "Ano de referência " + year
	return dto.Page{TextLines: lines, Table: rows}
}

func itemRow(section, description, total string) []*string {
	r := make([]*string, 21)
	if section != "" {
		r[0] = strPtr(section)
	}
	r[1] = strPtr(description)
	r[7] = strPtr("1,00")
	r[20] = strPtr(total)
	return r
}

func newTestFichaService(proc PDFProcessor) *FichaService {
	return NewFichaService(proc, config.DefaultLayout(), store.NewResultStore(), nil)
}

func TestLastResultBeforeProcessing(t *testing.T) {
	svc := newTestFichaService(&fakePDFProcessor{})

	result, err := svc.LastResult()
	assert.Nil(t, result)
	assert.ErrorIs(t, err, dto.ErrNoDocumentProcessed)
}

func TestProcessReplacesPreviousResult(t *testing.T) {
	svc := newTestFichaService(&fakePDFProcessor{})

	first := svc.Process([]dto.Page{
		fichaPage("Página 1 de 2", "2020",
			itemRow("RENDIMENTOS", "VENCIMENTO BASE", "10,00"),
			itemRow("", "ANUENIO", "1,00"),
		),
	})
	second := svc.Process([]dto.Page{
		fichaPage("Página 2 de 2", "2021", itemRow("", "PSS", "5,00")),
	})

	last, err := svc.LastResult()
	require.NoError(t, err)
	assert.Equal(t, second.ID, last.ID)
	require.Len(t, last.Result.LineItems, 1)
	assert.Equal(t, "PSS", last.Result.LineItems[0].Description)
	assert.Equal(t, dto.SectionUnset, last.Result.LineItems[0].SectionType)
	assert.Equal(t, []string{"2021"}, last.DistinctReferenceYears)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, first.Result.LineItems, 2)
	assert.Equal(t, "siape-ficha-financeira@v1", last.Layout)
}

func TestProcessPDF(t *testing.T) {
	proc := &fakePDFProcessor{pages: []dto.Page{
		fichaPage("Página 1 de 2", "2021", itemRow("RENDIMENTOS", "VENCIMENTO BASE", "10,00")),
		fichaPage("Página 2 de 2", "2021", itemRow("DESCONTOS", "IMPOSTO DE RENDA", "2,00")),
	}}
	svc := newTestFichaService(proc)

	result, err := svc.ProcessPDF(context.Background(), []byte("%PDF-1.7"), "secret")
	require.NoError(t, err)

	assert.Equal(t, "secret", proc.password)
	require.Len(t, result.Result.LineItems, 2)
	assert.Equal(t, dto.SectionIncome, result.Result.LineItems[0].SectionType)
	assert.Equal(t, dto.SectionDeduction, result.Result.LineItems[1].SectionType)
	require.NotNil(t, result.Result.LastTablePageNumber)
	assert.Equal(t, 2, *result.Result.LastTablePageNumber)

	byID, err := svc.Result(result.ID.String())
	require.NoError(t, err)
	assert.Same(t, result, byID)
}

func TestProcessPDFFailureKeepsPreviousResult(t *testing.T) {
	proc := &fakePDFProcessor{pages: []dto.Page{
		fichaPage("Página 1 de 1", "2019", itemRow("RENDIMENTOS", "VENCIMENTO", "1,00")),
	}}
	svc := newTestFichaService(proc)

	previous, err := svc.ProcessPDF(context.Background(), nil, "")
	require.NoError(t, err)

	proc.err = dto.ErrUndecodablePDF
	_, err = svc.ProcessPDF(context.Background(), nil, "")
	assert.ErrorIs(t, err, dto.ErrUndecodablePDF)

	last, err := svc.LastResult()
	require.NoError(t, err)
	assert.Equal(t, previous.ID, last.ID)
}

func TestResultUnknownID(t *testing.T) {
	svc := newTestFichaService(&fakePDFProcessor{})

	_, err := svc.Result("not-a-uuid")
	assert.ErrorIs(t, err, dto.ErrResultNotFound)

	_, err = svc.Result("7d444840-9dc0-11d1-b245-5ffdce74fad2")
	assert.ErrorIs(t, err, dto.ErrResultNotFound)
}

func TestExport(t *testing.T) {
	svc := newTestFichaService(&fakePDFProcessor{})
	result := svc.Process([]dto.Page{
		fichaPage("Página 1 de 1", "2021", itemRow("RENDIMENTOS", "VENCIMENTO BASE", "10,00")),
	})

	var csvOut bytes.Buffer
	require.NoError(t, svc.Export(&csvOut, result.ID.String(), FormatCSV))
	assert.True(t, strings.HasPrefix(csvOut.String(), "section_type,description,"))
	assert.Contains(t, csvOut.String(), "INCOME,VENCIMENTO BASE,2021,1,")

	var xlsxOut bytes.Buffer
	require.NoError(t, svc.Export(&xlsxOut, result.ID.String(), FormatXLSX))
	assert.True(t, bytes.HasPrefix(xlsxOut.Bytes(), []byte("PK")))

	err := svc.Export(&bytes.Buffer{}, result.ID.String(), "pdf")
	assert.ErrorIs(t, err, dto.ErrUnsupportedExportFormat)
}

func TestPurgeExpired(t *testing.T) {
	svc := newTestFichaService(&fakePDFProcessor{})
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	svc.now = func() time.Time { return base }
	old := svc.Process(nil)
	svc.now = func() time.Time { return base.Add(30 * time.Minute) }
	svc.Process(nil)

	svc.now = func() time.Time { return base.Add(90 * time.Minute) }
	assert.Equal(t, 1, svc.PurgeExpired(time.Hour))

	_, err := svc.Result(old.ID.String())
	assert.True(t, errors.Is(err, dto.ErrResultNotFound))
}
