package service

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cellRect(x0, y0, x1, y1 float64) pdf.Rect {
	return pdf.Rect{Min: pdf.Point{X: x0, Y: y0}, Max: pdf.Point{X: x1, Y: y1}}
}

func glyphs(s string, x, y float64) []pdf.Text {
	out := make([]pdf.Text, 0, len(s))
	for _, r := range s {
		out = append(out, pdf.Text{S: string(r), X: x, Y: y, W: 6, FontSize: 10})
		x += 6
	}
	return out
}

// twoByTwo is a table with columns at x=0,100,200 and rows at y=100,80,60.
var twoByTwo = []pdf.Rect{
	cellRect(0, 80, 100, 100),
	cellRect(100, 80, 200, 100),
	cellRect(0, 60, 100, 80),
	cellRect(100, 60, 200, 80),
}

func TestBuildTableAssignsTextToCells(t *testing.T) {
	var texts []pdf.Text
	texts = append(texts, glyphs("CPF", 5, 92)...)
	texts = append(texts, glyphs("12", 5, 84)...)
	texts = append(texts, glyphs("A", 110, 90)...)
	texts = append(texts, glyphs("B", 130, 90)...)
	texts = append(texts, glyphs("9", 150, 65)...)
	texts = append(texts, glyphs("outside", 250, 65)...)

	table := buildTable(texts, twoByTwo)

	require.Len(t, table, 2)
	require.Len(t, table[0], 2)
	require.Len(t, table[1], 2)

	require.NotNil(t, table[0][0])
	assert.Equal(t, "CPF\n12", *table[0][0])
	require.NotNil(t, table[0][1])
	assert.Equal(t, "A B", *table[0][1])
	assert.Nil(t, table[1][0])
	require.NotNil(t, table[1][1])
	assert.Equal(t, "9", *table[1][1])
}

func TestBuildTableOrdersGlyphsLeftToRight(t *testing.T) {
	texts := glyphs("SIAPE", 5, 90)
	texts[0], texts[4] = texts[4], texts[0]

	table := buildTable(texts, twoByTwo)

	require.NotNil(t, table[0][0])
	assert.Equal(t, "SIAPE", *table[0][0])
}

func TestBuildTableWithoutRulings(t *testing.T) {
	texts := glyphs("RENDIMENTOS", 5, 90)

	assert.Nil(t, buildTable(texts, nil))
	// A single horizontal rule is not a table.
	assert.Nil(t, buildTable(texts, []pdf.Rect{cellRect(0, 50, 200, 50.5)}))
}

func TestClusterValues(t *testing.T) {
	got := clusterValues([]float64{100.5, 0, 10, 1.5, 99.8, 1}, 2)

	require.Len(t, got, 3)
	assert.InDelta(t, 1.0, got[0], 1e-9)
	assert.InDelta(t, 10.0, got[1], 1e-9)
	assert.InDelta(t, 100.15, got[2], 1e-9)
	assert.Nil(t, clusterValues(nil, 2))
}

func TestFindCell(t *testing.T) {
	rows := []float64{100, 80, 60}
	cols := []float64{0, 100, 200}

	r, c := findCell(rows, cols, 150, 70)
	assert.Equal(t, 1, r)
	assert.Equal(t, 1, c)

	r, c = findCell(rows, cols, 250, 70)
	assert.Equal(t, -1, r)
	assert.Equal(t, -1, c)

	r, c = findCell(rows, cols, 50, 110)
	assert.Equal(t, -1, r)
	assert.Equal(t, -1, c)
}

func TestTextLinesTopToBottom(t *testing.T) {
	rows := pdf.Rows{
		{Position: 700, Content: pdf.TextHorizontal{{S: "de 24", X: 80, FontSize: 10}, {S: "Página 3", X: 10, FontSize: 10}}},
		{Position: 800, Content: pdf.TextHorizontal{{S: "MINISTÉRIO", X: 10, FontSize: 10}}},
		{Position: 600, Content: pdf.TextHorizontal{{S: "   ", X: 10, FontSize: 10}}},
		nil,
	}

	assert.Equal(t, []string{"MINISTÉRIO", "Página 3 de 24"}, textLines(rows))
}

func TestNormalizeTableComposesAccents(t *testing.T) {
	decomposed := "Pa\u0301gina"
	table := normalizeTable([][]*string{{&decomposed, nil}})

	require.NotNil(t, table[0][0])
	assert.Equal(t, "P\u00e1gina", *table[0][0])
	assert.Nil(t, table[0][1])
}
