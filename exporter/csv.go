// Package exporter renders processed fichas as downloadable files.
package exporter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Aashish23092/ficha-financeira/dto"
	"github.com/gocarina/gocsv"
)

type lineItemRow struct {
	SectionType     string `csv:"section_type"`
	Description     string `csv:"description"`
	ReferenceYear   string `csv:"reference_year"`
	TablePageNumber string `csv:"table_page_number"`
	Jan             string `csv:"jan"`
	Fev             string `csv:"fev"`
	Mar             string `csv:"mar"`
	Abr             string `csv:"abr"`
	Mai             string `csv:"mai"`
	Jun             string `csv:"jun"`
	Jul             string `csv:"jul"`
	Ago             string `csv:"ago"`
	Set             string `csv:"set"`
	Out             string `csv:"out"`
	Nov             string `csv:"nov"`
	Dez             string `csv:"dez"`
	Total           string `csv:"total"`
}

func newLineItemRow(item dto.LineItemRecord) *lineItemRow {
	return &lineItemRow{
		SectionType:     string(item.SectionType),
		Description:     item.Description,
		ReferenceYear:   optionalString(item.ReferenceYear),
		TablePageNumber: optionalInt(item.TablePageNumber),
		Jan:             item.Months[dto.Jan],
		Fev:             item.Months[dto.Fev],
		Mar:             item.Months[dto.Mar],
		Abr:             item.Months[dto.Abr],
		Mai:             item.Months[dto.Mai],
		Jun:             item.Months[dto.Jun],
		Jul:             item.Months[dto.Jul],
		Ago:             item.Months[dto.Ago],
		Set:             item.Months[dto.Set],
		Out:             item.Months[dto.Out],
		Nov:             item.Months[dto.Nov],
		Dez:             item.Months[dto.Dez],
		Total:           item.Total,
	}
}

// WriteCSV writes one row per line item, with a header row.
func WriteCSV(w io.Writer, result *dto.ProcessResult) error {
	rows := make([]*lineItemRow, 0, len(result.Result.LineItems))
	for _, item := range result.Result.LineItems {
		rows = append(rows, newLineItemRow(item))
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func optionalString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
