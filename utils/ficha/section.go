package ficha

import (
	"github.com/Aashish23092/ficha-financeira/config"
	"github.com/Aashish23092/ficha-financeira/dto"
)

// sectionState tracks whether rows belong to the income or the deduction
// block. It starts unset and changes only on an exact header cell match; it
// is never reset between pages.
type sectionState struct {
	current dto.SectionType
}

func (s sectionState) next(firstCell *string, sections config.SectionLayout) sectionState {
	if firstCell == nil {
		return s
	}

	switch *firstCell {
	case sections.Income:
		return sectionState{current: dto.SectionIncome}
	case sections.Deduction:
		return sectionState{current: dto.SectionDeduction}
	}
	return s
}
