package ficha

import (
	"testing"

	"github.com/Aashish23092/ficha-financeira/config"
	"github.com/Aashish23092/ficha-financeira/dto"
	"github.com/stretchr/testify/assert"
)

func TestSplitTotals(t *testing.T) {
	labels := config.DefaultLayout().Totals

	tests := []struct {
		name string
		text string
		want dto.Totals
	}{
		{
			name: "gross before deductions marker",
			text: "TOTAL BRUTO (R$) 5000.00TOTAL DESCONTOS (R$",
			want: dto.Totals{dto.TotalGross: "5000.00"},
		},
		{
			name: "all three on one row",
			text: "TOTAL BRUTO (R$) 5.000,00 TOTAL DESCONTOS (R$) 1.000,00 TOTAL LIQUIDO (R$) 4.000,00",
			want: dto.Totals{
				dto.TotalGross:      "5.000,00",
				dto.TotalDeductions: "1.000,00",
				dto.TotalNet:        "4.000,00",
			},
		},
		{
			name: "net alone runs to end of text",
			text: "  TOTAL LIQUIDO (R$)   3.210,99   ",
			want: dto.Totals{dto.TotalNet: "3.210,99"},
		},
		{
			name: "deductions then net without spaces",
			text: "TOTAL DESCONTOS (R$)800,00TOTAL LIQUIDO (R$)1,00",
			want: dto.Totals{dto.TotalDeductions: "800,00", dto.TotalNet: "1,00"},
		},
		{
			name: "label with nothing after",
			text: "TOTAL BRUTO (R$)",
			want: dto.Totals{dto.TotalGross: ""},
		},
		{
			name: "no label",
			text: "VENCIMENTO BASE 1.000,00",
			want: nil,
		},
		{
			name: "truncated label is not a total",
			text: "TOTAL BRUTO (R$ 10,00",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitTotals(tt.text, labels))
		})
	}
}

func TestExtractTotalsRowDoesNotEmitItem(t *testing.T) {
	pages := []dto.Page{{
		TextLines: header("Página 2 de 2", "2021"),
		Table: [][]*string{
			row(map[int]string{0: "TOTAL BRUTO (R$) 5000.00", 9: "TOTAL DESCONTOS (R$) 100.00", 16: "TOTAL LIQUIDO (R$) 4900.00"}),
		},
	}}

	result := Extract(pages, config.DefaultLayout())

	assert.Empty(t, result.LineItems)
	assert.Equal(t, dto.Totals{
		dto.TotalGross:      "5000.00",
		dto.TotalDeductions: "100.00",
		dto.TotalNet:        "4900.00",
	}, result.Totals)
}
