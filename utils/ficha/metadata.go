// Package ficha turns decoded ficha financeira pages into normalized records.
//
// The header of every page keeps the table page number and the reference year
// at fixed line positions, and the table keeps values at fixed column indices.
// Both positions come from a config.Layout. Anything missing or malformed
// resolves to an absent value rather than an error, since cover pages and
// section breaks do not follow the layout.
package ficha

import (
	"strconv"

	"github.com/Aashish23092/ficha-financeira/config"
	"github.com/Aashish23092/ficha-financeira/dto"
)

// ExtractPageMetadata reads the reference year and the table page number
// from a page's text lines.
func ExtractPageMetadata(lines []string, layout *config.Layout) dto.PageMetadata {
	var meta dto.PageMetadata

	if line, ok := lineAt(lines, layout.Metadata.YearLine); ok {
		if m := layout.YearPattern().FindStringSubmatch(line); len(m) > 1 {
			year := m[1]
			meta.ReferenceYear = &year
		}
	}

	if line, ok := lineAt(lines, layout.Metadata.PageNumberLine); ok {
		if m := layout.PageNumberPattern().FindStringSubmatch(line); len(m) > 1 {
			if n, err := strconv.Atoi(m[1]); err == nil {
				meta.TablePageNumber = &n
			}
		}
	}

	return meta
}

func lineAt(lines []string, idx int) (string, bool) {
	if idx < 0 || idx >= len(lines) {
		return "", false
	}
	return lines[idx], true
}
