package ficha

import (
	"strings"

	"github.com/Aashish23092/ficha-financeira/dto"
)

// addRow classifies one table row. Identity, totals and section headers are
// picked up first; the row then becomes a line item only when it carries a
// description.
func (a *Accumulator) addRow(row []*string, meta dto.PageMetadata) {
	if isBlankRow(row) {
		return
	}

	text := joinCells(row)

	for _, rule := range a.layout.Identity {
		if strings.Contains(text, rule.Label) {
			a.identity[rule.Field] = cellText(row, rule.Cell, rule.Prefix)
			break
		}
	}

	for field, value := range splitTotals(text, a.layout.Totals) {
		a.totals[field] = value
	}

	a.section = a.section.next(cellAt(row, 0), a.layout.Sections)

	columns := a.layout.Columns
	description := cellText(row, columns.Description, "")
	if description == "" {
		return
	}

	record := dto.LineItemRecord{
		SectionType:     a.section.current,
		Description:     description,
		ReferenceYear:   meta.ReferenceYear,
		TablePageNumber: meta.TablePageNumber,
		Total:           cellText(row, columns.Total, ""),
	}

	if meta.TablePageNumber != nil {
		months := dto.SecondHalf
		if *meta.TablePageNumber%2 == 1 {
			months = dto.FirstHalf
		}

		record.Months = make(map[dto.Month]string, len(months))
		for i, month := range months {
			record.Months[month] = cellText(row, columns.Months[i], "")
		}
	}

	a.items = append(a.items, record)
}

func isBlankRow(row []*string) bool {
	for _, cell := range row {
		if cell != nil && strings.TrimSpace(*cell) != "" {
			return false
		}
	}
	return true
}

// joinCells builds the search text of a row. It is only used for substring
// checks, never positionally.
func joinCells(row []*string) string {
	parts := make([]string, len(row))
	for i, cell := range row {
		if cell != nil {
			parts[i] = *cell
		}
	}
	return strings.Join(parts, " ")
}

func cellAt(row []*string, idx int) *string {
	if idx < 0 || idx >= len(row) {
		return nil
	}
	return row[idx]
}

// cellText returns the trimmed cell value with prefix removed, or "" when the
// cell is missing or empty.
func cellText(row []*string, idx int, prefix string) string {
	cell := cellAt(row, idx)
	if cell == nil || *cell == "" {
		return ""
	}

	value := *cell
	if prefix != "" {
		value = strings.ReplaceAll(value, prefix, "")
	}
	return strings.TrimSpace(value)
}
