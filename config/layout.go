package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/Aashish23092/ficha-financeira/dto"
	"github.com/pelletier/go-toml/v2"
)

// Layout describes where a ficha revision keeps each piece of information:
// header line positions, identity labels, totals labels, section headers and
// table column indices. A new document revision is a new Layout, not new code.
type Layout struct {
	Name     string         `toml:"name"`
	Version  int            `toml:"version"`
	Metadata MetadataLayout `toml:"metadata"`
	Identity []IdentityRule `toml:"identity"`
	Totals   []TotalLabel   `toml:"totals"`
	Sections SectionLayout  `toml:"sections"`
	Columns  ColumnLayout   `toml:"columns"`

	yearPattern       *regexp.Regexp
	pageNumberPattern *regexp.Regexp
}

type MetadataLayout struct {
	YearLine          int    `toml:"year_line"`
	YearPattern       string `toml:"year_pattern"`
	PageNumberLine    int    `toml:"page_number_line"`
	PageNumberPattern string `toml:"page_number_pattern"`
}

// IdentityRule maps a row containing Label to the value in Cell, with Prefix removed.
type IdentityRule struct {
	Field  dto.IdentityField `toml:"field"`
	Label  string            `toml:"label"`
	Prefix string            `toml:"prefix"`
	Cell   int               `toml:"cell"`
}

// TotalLabel is the literal label preceding a total value on the totals line.
// Stop is the marker that ends the previous value; it defaults to Label
// without its closing parenthesis.
type TotalLabel struct {
	Field dto.TotalField `toml:"field"`
	Label string         `toml:"label"`
	Stop  string         `toml:"stop"`
}

func (t TotalLabel) StopMarker() string {
	if t.Stop != "" {
		return t.Stop
	}
	return strings.TrimSuffix(t.Label, ")")
}

type SectionLayout struct {
	Income    string `toml:"income"`
	Deduction string `toml:"deduction"`
}

type ColumnLayout struct {
	Description int   `toml:"description"`
	Months      []int `toml:"months"`
	Total       int   `toml:"total"`
}

// DefaultLayout returns the SIAPE ficha financeira layout.
func DefaultLayout() *Layout {
	l := &Layout{
		Name:    "siape-ficha-financeira",
		Version: 1,
		Metadata: MetadataLayout{
			YearLine:          12,
			YearPattern:       `\b(20\d{2})\b`,
			PageNumberLine:    1,
			PageNumberPattern: `\b(\d{1,2})\b`,
		},
		Identity: []IdentityRule{
			{Field: dto.IdentityName, Label: "NOME DO SERVIDOR", Prefix: "NOME DO SERVIDOR\n", Cell: 0},
			{Field: dto.IdentityCPF, Label: "CPF", Prefix: "CPF\n", Cell: 16},
			{Field: dto.IdentityRegistration, Label: "MAT. SIAPE", Prefix: "MAT. SIAPE\n", Cell: 9},
			{Field: dto.IdentityPosition, Label: "CARGO", Prefix: "CARGO/EMPREGO\n", Cell: 0},
		},
		Totals: []TotalLabel{
			{Field: dto.TotalGross, Label: "TOTAL BRUTO (R$)"},
			{Field: dto.TotalDeductions, Label: "TOTAL DESCONTOS (R$)"},
			{Field: dto.TotalNet, Label: "TOTAL LIQUIDO (R$)"},
		},
		Sections: SectionLayout{
			Income:    "RENDIMENTOS",
			Deduction: "DESCONTOS",
		},
		Columns: ColumnLayout{
			Description: 1,
			Months:      []int{7, 10, 12, 14, 17, 18},
			Total:       20,
		},
	}

	if err := l.Validate(); err != nil {
		panic(fmt.Sprintf("default layout is invalid: %v", err))
	}
	return l
}

// LoadLayout reads a TOML layout file. Keys missing from the file keep the
// default layout's values. An empty path returns the default layout.
func LoadLayout(path string) (*Layout, error) {
	l := DefaultLayout()
	if path == "" {
		return l, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file: %w", err)
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse layout file %s: %w", path, err)
	}
	// Arrays given in the file replace the defaults instead of extending them.
	if _, ok := raw["identity"]; ok {
		l.Identity = nil
	}
	if _, ok := raw["totals"]; ok {
		l.Totals = nil
	}
	if columns, ok := raw["columns"].(map[string]any); ok {
		if _, ok := columns["months"]; ok {
			l.Columns.Months = nil
		}
	}

	if err := toml.Unmarshal(data, l); err != nil {
		return nil, fmt.Errorf("failed to parse layout file %s: %w", path, err)
	}

	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout %s: %w", path, err)
	}
	return l, nil
}

// Validate checks indices and compiles the metadata patterns.
func (l *Layout) Validate() error {
	if l.Name == "" {
		return fmt.Errorf("layout name is required")
	}
	if l.Metadata.YearLine < 0 || l.Metadata.PageNumberLine < 0 {
		return fmt.Errorf("metadata line indices must not be negative")
	}

	yearPattern, err := regexp.Compile(l.Metadata.YearPattern)
	if err != nil {
		return fmt.Errorf("invalid year pattern: %w", err)
	}
	pageNumberPattern, err := regexp.Compile(l.Metadata.PageNumberPattern)
	if err != nil {
		return fmt.Errorf("invalid page number pattern: %w", err)
	}

	for _, rule := range l.Identity {
		if rule.Label == "" || rule.Cell < 0 {
			return fmt.Errorf("identity rule %s needs a label and a non-negative cell", rule.Field)
		}
	}
	for _, total := range l.Totals {
		if total.Label == "" || total.StopMarker() == "" {
			return fmt.Errorf("totals label %s must not be empty", total.Field)
		}
	}
	if l.Sections.Income == "" || l.Sections.Deduction == "" {
		return fmt.Errorf("both section headers are required")
	}

	if len(l.Columns.Months) != len(dto.FirstHalf) {
		return fmt.Errorf("expected %d month columns, got %d", len(dto.FirstHalf), len(l.Columns.Months))
	}
	for _, idx := range append([]int{l.Columns.Description, l.Columns.Total}, l.Columns.Months...) {
		if idx < 0 {
			return fmt.Errorf("column indices must not be negative")
		}
	}

	l.yearPattern = yearPattern
	l.pageNumberPattern = pageNumberPattern
	return nil
}

func (l *Layout) YearPattern() *regexp.Regexp {
	return l.yearPattern
}

func (l *Layout) PageNumberPattern() *regexp.Regexp {
	return l.pageNumberPattern
}

func (l *Layout) String() string {
	return fmt.Sprintf("%s@v%d", l.Name, l.Version)
}
