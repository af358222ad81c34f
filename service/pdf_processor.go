package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Aashish23092/ficha-financeira/dto"
	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/text/unicode/norm"
)

// PDFProcessor decodes a PDF into the text lines and table of every page.
type PDFProcessor interface {
	ExtractPages(ctx context.Context, pdfData []byte, password string) ([]dto.Page, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

func (p *pdfProcessor) ExtractPages(ctx context.Context, pdfData []byte, password string) ([]dto.Page, error) {
	data, err := p.prepare(pdfData, password)
	if err != nil {
		return nil, err
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dto.ErrUndecodablePDF, err)
	}

	totalPage := r.NumPage()
	pages := make([]dto.Page, 0, totalPage)

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pg := r.Page(pageIndex)
		if pg.V.IsNull() {
			pages = append(pages, dto.Page{})
			continue
		}

		page, err := decodePage(pg)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", dto.ErrUndecodablePDF, pageIndex, err)
		}
		pages = append(pages, page)
	}

	return pages, nil
}

// prepare validates the document with pdfcpu and, when a password is given,
// returns the decrypted bytes.
func (p *pdfProcessor) prepare(pdfData []byte, password string) ([]byte, error) {
	conf := model.NewDefaultConfiguration()

	if password == "" {
		if err := api.Validate(bytes.NewReader(pdfData), conf); err != nil {
			return nil, fmt.Errorf("%w: %v", dto.ErrUndecodablePDF, err)
		}
		return pdfData, nil
	}

	conf.UserPW = password
	conf.OwnerPW = password

	var out bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(pdfData), &out, conf); err != nil {
		// A password sent along with an unencrypted document is ignored.
		if verr := api.Validate(bytes.NewReader(pdfData), model.NewDefaultConfiguration()); verr == nil {
			return pdfData, nil
		}
		return nil, fmt.Errorf("%w: %v", dto.ErrPDFPassword, err)
	}
	return out.Bytes(), nil
}

// decodePage reads the text lines and the ruled table of one page. The PDF
// reader panics on some malformed content streams.
func decodePage(pg pdf.Page) (page dto.Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed content stream: %v", r)
		}
	}()

	rows, err := pg.GetTextByRow()
	if err != nil {
		return dto.Page{}, err
	}
	page.TextLines = textLines(rows)

	content := pg.Content()
	page.Table = normalizeTable(buildTable(content.Text, content.Rect))
	return page, nil
}

// textLines renders rows top to bottom, skipping rows without visible text.
func textLines(rows pdf.Rows) []string {
	sorted := make(pdf.Rows, 0, len(rows))
	for _, row := range rows {
		if row != nil {
			sorted = append(sorted, row)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position > sorted[j].Position
	})

	lines := make([]string, 0, len(sorted))
	for _, row := range sorted {
		words := append([]pdf.Text(nil), row.Content...)
		sort.SliceStable(words, func(i, j int) bool { return words[i].X < words[j].X })

		line := strings.TrimSpace(norm.NFC.String(joinLine(words)))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func normalizeTable(table [][]*string) [][]*string {
	for _, row := range table {
		for i, cell := range row {
			if cell != nil {
				s := norm.NFC.String(*cell)
				row[i] = &s
			}
		}
	}
	return table
}
