package exporter

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/Aashish23092/ficha-financeira/dto"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	LineItemsSheet = "Rendimentos e Descontos"
	EmployeeSheet  = "Servidor"
)

// brlAmount matches amounts printed as 1.234,56 or 1234,56.
var brlAmount = regexp.MustCompile(`^-?(\d{1,3}(\.\d{3})+|\d+),\d{2}$`)

var lineItemHeader = []interface{}{
	"Seção", "Descrição", "Ano de referência", "Página",
	"JAN", "FEV", "MAR", "ABR", "MAI", "JUN", "JUL", "AGO", "SET", "OUT", "NOV", "DEZ",
	"Total",
}

// WriteXLSX writes a workbook with the line items on one sheet and the
// employee identity and totals on another. Amount cells are stored as numbers.
func WriteXLSX(w io.Writer, result *dto.ProcessResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", LineItemsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeLineItems(f, result.Result.LineItems); err != nil {
		return err
	}

	if _, err := f.NewSheet(EmployeeSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := writeEmployee(f, result); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

func writeLineItems(f *excelize.File, items []dto.LineItemRecord) error {
	if err := f.SetSheetRow(LineItemsSheet, "A1", &lineItemHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, item := range items {
		row := []interface{}{
			string(item.SectionType),
			item.Description,
			optionalString(item.ReferenceYear),
			optionalInt(item.TablePageNumber),
		}
		for _, month := range dto.CalendarMonths() {
			row = append(row, amountCell(item.Months[month]))
		}
		row = append(row, amountCell(item.Total))

		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(LineItemsSheet, axis, &row); err != nil {
			return fmt.Errorf("failed to write line item %d: %w", i, err)
		}
	}
	return nil
}

func writeEmployee(f *excelize.File, result *dto.ProcessResult) error {
	doc := result.Result
	rows := [][]interface{}{
		{"Campo", "Valor"},
		{"Nome", doc.Identity[dto.IdentityName]},
		{"CPF", doc.Identity[dto.IdentityCPF]},
		{"Matrícula SIAPE", doc.Identity[dto.IdentityRegistration]},
		{"Cargo", doc.Identity[dto.IdentityPosition]},
		{"Total bruto", amountCell(doc.Totals[dto.TotalGross])},
		{"Total descontos", amountCell(doc.Totals[dto.TotalDeductions])},
		{"Total líquido", amountCell(doc.Totals[dto.TotalNet])},
		{"Anos de referência", strings.Join(result.DistinctReferenceYears, ", ")},
		{"Layout", result.Layout},
	}

	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(EmployeeSheet, axis, &row); err != nil {
			return fmt.Errorf("failed to write employee row %d: %w", i, err)
		}
	}
	return nil
}

// amountCell returns a float for Brazilian formatted amounts and the raw text
// otherwise. The JSON contract is unaffected.
func amountCell(raw string) interface{} {
	value := strings.TrimSpace(raw)
	if !brlAmount.MatchString(value) {
		return raw
	}

	d, err := decimal.NewFromString(strings.ReplaceAll(strings.ReplaceAll(value, ".", ""), ",", "."))
	if err != nil {
		return raw
	}
	return d.InexactFloat64()
}
