package traversal

import (
	"cmp"
	"slices"

	"Backend-Survey-Engine/src/models"
)

// surveyIndex is built once per request. Rules refer to items and sections by id
// and are resolved through it.
type surveyIndex struct {
	survey   *models.Survey
	pulse    *models.PulseRoundResult
	sections []*models.Section

	items      map[string]*models.SurveyItem
	itemPos    map[string]position
	sectionPos map[string]int
	endPages   map[string]*models.EndPage
}

// position of an item: section index and index within that section's sorted items.
type position struct {
	sec  int
	item int
}

func newSurveyIndex(s *models.Survey, pulse *models.PulseRoundResult) *surveyIndex {
	idx := &surveyIndex{
		survey:     s,
		pulse:      pulse,
		items:      map[string]*models.SurveyItem{},
		itemPos:    map[string]position{},
		sectionPos: map[string]int{},
		endPages:   map[string]*models.EndPage{},
	}

	for i := range s.Sections {
		idx.sections = append(idx.sections, &s.Sections[i])
	}
	slices.SortStableFunc(idx.sections, func(a, b *models.Section) int {
		return cmp.Compare(a.SortableID, b.SortableID)
	})

	for si, sec := range idx.sections {
		idx.sectionPos[sec.ID.Hex()] = si
		slices.SortStableFunc(sec.Items, func(a, b models.SurveyItem) int {
			return cmp.Compare(a.SortableID, b.SortableID)
		})
		for ii := range sec.Items {
			it := &sec.Items[ii]
			id := it.ID.Hex()
			idx.items[id] = it
			idx.itemPos[id] = position{sec: si, item: ii}
		}
	}

	for i := range s.EndPages {
		idx.endPages[s.EndPages[i].ID.Hex()] = &s.EndPages[i]
	}
	return idx
}

// itemHidden covers the item's own flag and pulse round membership.
func (idx *surveyIndex) itemHidden(it *models.SurveyItem) bool {
	if it.Hide {
		return true
	}
	if idx.pulse != nil && !idx.pulse.Includes(it.ID.Hex()) {
		return true
	}
	return false
}

func (idx *surveyIndex) defaultEndPage() *models.EndPage {
	for i := range idx.survey.EndPages {
		if idx.survey.EndPages[i].Default {
			return &idx.survey.EndPages[i]
		}
	}
	return nil
}
