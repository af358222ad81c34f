package service

import (
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// rulingTolerance merges drawn edges that are this close, in points.
	rulingTolerance = 2.0
	// baselineTolerance groups glyphs into one text line, in points.
	baselineTolerance = 1.5
	// wordGapRatio is the horizontal gap, relative to the font size, above
	// which two glyphs are treated as separate words.
	wordGapRatio = 0.2
)

// buildTable lays the text of a page onto the grid formed by its drawn
// rectangles. Rows run top to bottom and columns left to right. A cell without
// text is nil. It returns nil when the rectangles do not form at least one
// cell.
func buildTable(texts []pdf.Text, rects []pdf.Rect) [][]*string {
	var xs, ys []float64
	for _, r := range rects {
		xs = append(xs, r.Min.X, r.Max.X)
		ys = append(ys, r.Min.Y, r.Max.Y)
	}

	cols := clusterValues(xs, rulingTolerance)
	rows := clusterValues(ys, rulingTolerance)
	if len(cols) < 2 || len(rows) < 2 {
		return nil
	}
	// PDF space grows upwards; table rows are read from the top.
	sort.Sort(sort.Reverse(sort.Float64Slice(rows)))

	cells := make([][][]pdf.Text, len(rows)-1)
	for i := range cells {
		cells[i] = make([][]pdf.Text, len(cols)-1)
	}

	for _, t := range texts {
		if t.S == "" {
			continue
		}
		r, c := findCell(rows, cols, t.X+t.W/2, t.Y)
		if r < 0 {
			continue
		}
		cells[r][c] = append(cells[r][c], t)
	}

	table := make([][]*string, len(cells))
	for r, row := range cells {
		table[r] = make([]*string, len(row))
		for c, fragments := range row {
			if text := joinCellText(fragments); text != "" {
				table[r][c] = &text
			}
		}
	}
	return table
}

// clusterValues sorts values and merges each one that falls within tolerance
// of the current cluster center into it.
func clusterValues(values []float64, tolerance float64) []float64 {
	if len(values) == 0 {
		return nil
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	clustered := []float64{sorted[0]}
	for _, v := range sorted[1:] {
		last := len(clustered) - 1
		if v-clustered[last] > tolerance {
			clustered = append(clustered, v)
			continue
		}
		clustered[last] = (clustered[last] + v) / 2
	}
	return clustered
}

// findCell returns the row and column of the grid cell containing (x, y), or
// -1 for both when the point lies outside the grid. rows are ordered top to
// bottom, cols left to right.
func findCell(rows, cols []float64, x, y float64) (row, col int) {
	row, col = -1, -1

	for i := 0; i+1 < len(rows); i++ {
		if y <= rows[i] && y > rows[i+1] {
			row = i
			break
		}
	}
	for i := 0; i+1 < len(cols); i++ {
		if x >= cols[i] && x < cols[i+1] {
			col = i
			break
		}
	}

	if row < 0 || col < 0 {
		return -1, -1
	}
	return row, col
}

// joinCellText rebuilds the text of one cell. Glyphs on separate baselines
// become separate lines joined by "\n".
func joinCellText(fragments []pdf.Text) string {
	if len(fragments) == 0 {
		return ""
	}

	lines := groupBaselines(fragments)
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		if s := strings.TrimSpace(joinLine(line)); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

// groupBaselines splits fragments into lines, top line first, each ordered
// left to right.
func groupBaselines(fragments []pdf.Text) [][]pdf.Text {
	sorted := append([]pdf.Text(nil), fragments...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if math.Abs(sorted[i].Y-sorted[j].Y) > baselineTolerance {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var lines [][]pdf.Text
	for _, t := range sorted {
		last := len(lines) - 1
		if last >= 0 && math.Abs(lines[last][0].Y-t.Y) <= baselineTolerance {
			lines[last] = append(lines[last], t)
			continue
		}
		lines = append(lines, []pdf.Text{t})
	}
	return lines
}

// joinLine concatenates fragments already ordered left to right, adding a
// space where the gap between them is wider than a glyph spacing.
func joinLine(fragments []pdf.Text) string {
	var b strings.Builder
	for i, t := range fragments {
		if i > 0 {
			prev := fragments[i-1]
			gap := t.X - (prev.X + prev.W)
			size := math.Max(t.FontSize, prev.FontSize)
			if size <= 0 {
				size = 1
			}
			if gap > size*wordGapRatio && !strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(t.S, " ") {
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)
	}
	return b.String()
}
