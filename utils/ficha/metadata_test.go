package ficha

import (
	"testing"

	"github.com/Aashish23092/ficha-financeira/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPageMetadata(t *testing.T) {
	meta := ExtractPageMetadata(header("Página 3 de 24", "Ano de referência 2021"), config.DefaultLayout())

	require.NotNil(t, meta.TablePageNumber)
	assert.Equal(t, 3, *meta.TablePageNumber)
	require.NotNil(t, meta.ReferenceYear)
	assert.Equal(t, "2021", *meta.ReferenceYear)
}

func TestExtractPageMetadataFirstMatchWins(t *testing.T) {
	meta := ExtractPageMetadata(header("12 / 24", "2019 a 2021"), config.DefaultLayout())

	require.NotNil(t, meta.TablePageNumber)
	assert.Equal(t, 12, *meta.TablePageNumber)
	require.NotNil(t, meta.ReferenceYear)
	assert.Equal(t, "2019", *meta.ReferenceYear)
}

func TestExtractPageMetadataAbsentValues(t *testing.T) {
	layout := config.DefaultLayout()

	tests := []struct {
		name  string
		lines []string
	}{
		{"no lines", nil},
		{"single line", []string{"Página 1 de 2"}},
		{"short page", []string{"FICHA", "Página 1 de 2"}[:1]},
		{"no numbers", header("Página um", "Ano de referência")},
		{"three digit page", header("Página 123", "1999")},
		{"year embedded in longer number", header("pg", "Processo 120215")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := ExtractPageMetadata(tt.lines, layout)
			assert.Nil(t, meta.TablePageNumber)
			assert.Nil(t, meta.ReferenceYear)
		})
	}
}

func TestExtractPageMetadataYearNeedsLineTwelve(t *testing.T) {
	lines := header("Página 5 de 6", "2021")[:12]

	meta := ExtractPageMetadata(lines, config.DefaultLayout())

	assert.Nil(t, meta.ReferenceYear)
	require.NotNil(t, meta.TablePageNumber)
	assert.Equal(t, 5, *meta.TablePageNumber)
}
