package ficha

import (
	"sort"

	"github.com/Aashish23092/ficha-financeira/config"
	"github.com/Aashish23092/ficha-financeira/dto"
)

// Accumulator folds the pages of one document into a DocumentResult. It is
// not safe for concurrent use and must not be reused across documents.
type Accumulator struct {
	layout   *config.Layout
	identity dto.IdentityFields
	totals   dto.Totals
	items    []dto.LineItemRecord
	section  sectionState
	lastPage *int
}

func NewAccumulator(layout *config.Layout) *Accumulator {
	return &Accumulator{
		layout:   layout,
		identity: make(dto.IdentityFields),
		totals:   make(dto.Totals),
		items:    make([]dto.LineItemRecord, 0),
	}
}

// AddPage extracts the page metadata and maps every row of the page table.
// A page without a table still updates the last seen page number.
func (a *Accumulator) AddPage(page dto.Page) dto.PageMetadata {
	meta := ExtractPageMetadata(page.TextLines, a.layout)
	a.lastPage = meta.TablePageNumber

	for _, row := range page.Table {
		a.addRow(row, meta)
	}
	return meta
}

// Section returns the section type that the next line item would receive.
func (a *Accumulator) Section() dto.SectionType {
	return a.section.current
}

func (a *Accumulator) Result() dto.DocumentResult {
	return dto.DocumentResult{
		Identity:            a.identity,
		LineItems:           a.items,
		Totals:              a.totals,
		LastTablePageNumber: a.lastPage,
	}
}

// Extract runs the whole pipeline over the pages of one document.
func Extract(pages []dto.Page, layout *config.Layout) dto.DocumentResult {
	acc := NewAccumulator(layout)
	for _, page := range pages {
		acc.AddPage(page)
	}
	return acc.Result()
}

// DistinctReferenceYears returns the sorted set of reference years found on
// the line items.
func DistinctReferenceYears(items []dto.LineItemRecord) []string {
	seen := make(map[string]bool)
	years := make([]string, 0)

	for _, item := range items {
		if item.ReferenceYear == nil || seen[*item.ReferenceYear] {
			continue
		}
		seen[*item.ReferenceYear] = true
		years = append(years, *item.ReferenceYear)
	}

	sort.Strings(years)
	return years
}
