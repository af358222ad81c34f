package dto

import (
	"time"

	"github.com/google/uuid"
)

// Page is one decoded page of a ficha: its plain-text lines and the
// extracted table. A nil cell means the cell is absent.
type Page struct {
	TextLines []string    `json:"text_lines"`
	Table     [][]*string `json:"table,omitempty"`
}

// PageMetadata is recovered from the fixed header lines of a page.
type PageMetadata struct {
	ReferenceYear   *string `json:"reference_year"`
	TablePageNumber *int    `json:"table_page_number"`
}

type SectionType string

const (
	SectionUnset     SectionType = ""
	SectionIncome    SectionType = "INCOME"
	SectionDeduction SectionType = "DEDUCTION"
)

type IdentityField string

const (
	IdentityName         IdentityField = "NAME"
	IdentityCPF          IdentityField = "CPF"
	IdentityRegistration IdentityField = "REGISTRATION"
	IdentityPosition     IdentityField = "POSITION"
)

type TotalField string

const (
	TotalGross      TotalField = "GROSS_TOTAL"
	TotalDeductions TotalField = "DEDUCTIONS_TOTAL"
	TotalNet        TotalField = "NET_TOTAL"
)

type Month string

const (
	Jan Month = "JAN"
	Fev Month = "FEV"
	Mar Month = "MAR"
	Abr Month = "ABR"
	Mai Month = "MAI"
	Jun Month = "JUN"
	Jul Month = "JUL"
	Ago Month = "AGO"
	Set Month = "SET"
	Out Month = "OUT"
	Nov Month = "NOV"
	Dez Month = "DEZ"
)

var (
	FirstHalf  = [6]Month{Jan, Fev, Mar, Abr, Mai, Jun}
	SecondHalf = [6]Month{Jul, Ago, Set, Out, Nov, Dez}
)

// CalendarMonths lists all months in calendar order.
func CalendarMonths() []Month {
	months := make([]Month, 0, 12)
	months = append(months, FirstHalf[:]...)
	return append(months, SecondHalf[:]...)
}

// IdentityFields accumulates across pages; later values overwrite earlier ones.
type IdentityFields map[IdentityField]string

// Totals holds the raw currency strings of the totals line.
type Totals map[TotalField]string

// LineItemRecord is one income or deduction row of the ficha.
//
// Months carries either JAN..JUN or JUL..DEZ depending on the parity of the
// table page number, and is nil when the page number is unknown.
type LineItemRecord struct {
	SectionType     SectionType      `json:"section_type,omitempty"`
	Description     string           `json:"description"`
	ReferenceYear   *string          `json:"reference_year"`
	TablePageNumber *int             `json:"table_page_number"`
	Total           string           `json:"total"`
	Months          map[Month]string `json:"months,omitempty"`
}

type DocumentResult struct {
	Identity            IdentityFields   `json:"identity"`
	LineItems           []LineItemRecord `json:"line_items"`
	Totals              Totals           `json:"totals"`
	LastTablePageNumber *int             `json:"last_table_page_number"`
}

// ProcessResult is the handle returned for every processed document.
type ProcessResult struct {
	ID                     uuid.UUID      `json:"id"`
	ProcessedAt            time.Time      `json:"processed_at"`
	Layout                 string         `json:"layout"`
	Result                 DocumentResult `json:"result"`
	DistinctReferenceYears []string       `json:"distinct_reference_years"`
}
