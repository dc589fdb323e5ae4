package traversal

import (
	"slices"

	"Backend-Survey-Engine/src/models"
)

// unit is what one step presents: a whole section, or a single item of it.
type unit struct {
	sec   int
	items []*models.SurveyItem
}

// walker evaluates visibility over the index. With collect set, items elided by rules
// are gathered into skipped so the caller can append them to skippedByFlow.
type walker struct {
	idx     *surveyIndex
	answers map[string]models.ItemAnswer
	lenient bool
	collect bool
	skipped []string
}

func (w *walker) skip(it *models.SurveyItem) {
	if !w.collect || w.idx.itemHidden(it) {
		return
	}
	id := it.ID.Hex()
	if !slices.Contains(w.skipped, id) {
		w.skipped = append(w.skipped, id)
	}
}

// skipSection records the items of section p from index from on. Hidden sections
// are not part of the path and record nothing, like hidden items.
func (w *walker) skipSection(p, from int) {
	if w.idx.sections[p].Hide {
		return
	}
	items := w.idx.sections[p].Items
	for i := from; i < len(items); i++ {
		w.skip(&items[i])
	}
}

func (w *walker) sectionOpen(p int) (bool, error) {
	sec := w.idx.sections[p]
	if sec.Hide {
		return false, nil
	}
	return w.idx.displayAllows(sec.DisplayRules, w.answers, w.lenient)
}

func (w *walker) itemShown(it *models.SurveyItem) (bool, error) {
	if w.idx.itemHidden(it) {
		return false, nil
	}
	return w.idx.displayAllows(it.DisplayRules, w.answers, w.lenient)
}

// visibleItems returns up to limit (0 = all) presentable items of section p starting at item index from.
// Hidden sections are passed over silently; rule-elided ones are recorded as skipped.
func (w *walker) visibleItems(p, from, limit int) ([]*models.SurveyItem, error) {
	sec := w.idx.sections[p]
	if sec.Hide {
		return nil, nil
	}
	open, err := w.sectionOpen(p)
	if err != nil {
		return nil, err
	}
	if !open {
		w.skipSection(p, from)
		return nil, nil
	}

	var out []*models.SurveyItem
	for i := from; i < len(sec.Items); i++ {
		it := &sec.Items[i]
		if w.idx.itemHidden(it) {
			continue
		}
		ok, err := w.idx.displayAllows(it.DisplayRules, w.answers, w.lenient)
		if err != nil {
			return nil, err
		}
		if !ok {
			w.skip(it)
			continue
		}
		out = append(out, it)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// unitStrategy is the unit size of a traversal: sections or single questions.
// Rule evaluation and progress go through the same walker for both.
type unitStrategy interface {
	first(w *walker, from position) (*unit, error)
	after(w *walker, u *unit) (*unit, error)
	jump(w *walker, u *unit, target int) (*unit, error)
	current(w *walker, s *models.ResponseSession) (*unit, error)
	advance(s *models.ResponseSession, from, to *unit)
	back(w *walker, s *models.ResponseSession) (*unit, bool, error)
}

func strategyFor(survey *models.Survey) unitStrategy {
	if survey.DisplaySingleQuestion {
		return questionUnits{}
	}
	return sectionUnits{}
}

// ---------- section mode ----------

type sectionUnits struct{}

func (sectionUnits) first(w *walker, from position) (*unit, error) {
	for p := from.sec; p < len(w.idx.sections); p++ {
		items, err := w.visibleItems(p, 0, 0)
		if err != nil {
			return nil, err
		}
		if len(items) > 0 {
			return &unit{sec: p, items: items}, nil
		}
	}
	return nil, nil
}

func (m sectionUnits) after(w *walker, u *unit) (*unit, error) {
	return m.first(w, position{sec: u.sec + 1})
}

func (m sectionUnits) jump(w *walker, u *unit, target int) (*unit, error) {
	for p := u.sec + 1; p < target; p++ {
		w.skipSection(p, 0)
	}
	return m.first(w, position{sec: target})
}

func (m sectionUnits) current(w *walker, s *models.ResponseSession) (*unit, error) {
	if s.Step < 0 || s.Step >= len(w.idx.sections) {
		return m.first(w, position{})
	}
	return m.first(w, position{sec: s.Step})
}

func (sectionUnits) advance(s *models.ResponseSession, from, to *unit) {
	if len(s.StepHistory) == 0 {
		s.StepHistory = append(s.StepHistory, from.sec)
	}
	s.StepHistory = append(s.StepHistory, to.sec)
	s.Step = to.sec
}

func (sectionUnits) back(w *walker, s *models.ResponseSession) (*unit, bool, error) {
	hist := slices.Clone(s.StepHistory)
	for len(hist) >= 2 {
		hist = hist[:len(hist)-1]
		p := hist[len(hist)-1]
		if p < 0 || p >= len(w.idx.sections) {
			continue
		}
		items, err := w.visibleItems(p, 0, 0)
		if err != nil {
			return nil, false, err
		}
		if len(items) > 0 {
			s.StepHistory = hist
			s.Step = p
			return &unit{sec: p, items: items}, true, nil
		}
	}
	return nil, false, nil
}

// ---------- single-question mode ----------

type questionUnits struct{}

func (questionUnits) first(w *walker, from position) (*unit, error) {
	for p := from.sec; p < len(w.idx.sections); p++ {
		start := 0
		if p == from.sec {
			start = from.item
		}
		items, err := w.visibleItems(p, start, 1)
		if err != nil {
			return nil, err
		}
		if len(items) > 0 {
			return &unit{sec: p, items: items}, nil
		}
	}
	return nil, nil
}

func (m questionUnits) after(w *walker, u *unit) (*unit, error) {
	pos := w.idx.itemPos[u.items[0].ID.Hex()]
	return m.first(w, position{sec: pos.sec, item: pos.item + 1})
}

func (m questionUnits) jump(w *walker, u *unit, target int) (*unit, error) {
	pos := w.idx.itemPos[u.items[0].ID.Hex()]
	w.skipSection(pos.sec, pos.item+1)
	for p := pos.sec + 1; p < target; p++ {
		w.skipSection(p, 0)
	}
	return m.first(w, position{sec: target})
}

func (m questionUnits) current(w *walker, s *models.ResponseSession) (*unit, error) {
	if n := len(s.QuestionStepHistory); n > 0 {
		if u, ok, err := m.at(w, s.QuestionStepHistory[n-1]); err != nil || ok {
			return u, err
		}
		if pos, ok := w.idx.itemPos[s.QuestionStepHistory[n-1]]; ok {
			return m.first(w, pos)
		}
	}
	if s.Step < 0 || s.Step >= len(w.idx.sections) {
		return m.first(w, position{})
	}
	return m.first(w, position{sec: s.Step})
}

// at re-derives the unit of a recorded item, if it is still presentable.
func (questionUnits) at(w *walker, itemID string) (*unit, bool, error) {
	it, ok := w.idx.items[itemID]
	if !ok {
		return nil, false, nil
	}
	pos := w.idx.itemPos[itemID]
	if w.idx.sections[pos.sec].Hide {
		return nil, false, nil
	}
	open, err := w.sectionOpen(pos.sec)
	if err != nil || !open {
		return nil, false, err
	}
	shown, err := w.itemShown(it)
	if err != nil || !shown {
		return nil, false, err
	}
	return &unit{sec: pos.sec, items: []*models.SurveyItem{it}}, true, nil
}

func (questionUnits) advance(s *models.ResponseSession, from, to *unit) {
	if len(s.QuestionStepHistory) == 0 {
		s.QuestionStepHistory = append(s.QuestionStepHistory, from.items[0].ID.Hex())
	}
	s.QuestionStepHistory = append(s.QuestionStepHistory, to.items[0].ID.Hex())
	s.Step = to.sec
}

func (m questionUnits) back(w *walker, s *models.ResponseSession) (*unit, bool, error) {
	hist := slices.Clone(s.QuestionStepHistory)
	for len(hist) >= 2 {
		hist = hist[:len(hist)-1]
		u, ok, err := m.at(w, hist[len(hist)-1])
		if err != nil {
			return nil, false, err
		}
		if ok {
			s.QuestionStepHistory = hist
			s.Step = u.sec
			return u, true, nil
		}
	}
	return nil, false, nil
}
