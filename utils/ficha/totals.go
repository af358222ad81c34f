package ficha

import (
	"strings"

	"github.com/Aashish23092/ficha-financeira/config"
	"github.com/Aashish23092/ficha-financeira/dto"
)

// splitTotals extracts the totals printed on a single table row with no cell
// boundary between them, e.g.
//
//	TOTAL BRUTO (R$) 5.000,00 TOTAL DESCONTOS (R$) 1.000,00 TOTAL LIQUIDO (R$) 4.000,00
//
// Each value runs from the end of its label to the closest stop marker of any
// label that follows, or to the end of the text.
func splitTotals(text string, labels []config.TotalLabel) dto.Totals {
	var totals dto.Totals

	for _, label := range labels {
		start := strings.Index(text, label.Label)
		if start < 0 {
			continue
		}

		valueStart := start + len(label.Label)
		valueEnd := len(text)
		for _, other := range labels {
			if i := strings.Index(text[valueStart:], other.StopMarker()); i >= 0 && valueStart+i < valueEnd {
				valueEnd = valueStart + i
			}
		}

		if totals == nil {
			totals = make(dto.Totals, len(labels))
		}
		totals[label.Field] = strings.TrimSpace(text[valueStart:valueEnd])
	}

	return totals
}
