package traversal

import (
	"slices"

	"Backend-Survey-Engine/src/models"
)

// statusBar computes progress after the session state was updated.
// cur is the unit about to be shown; nil means the session just completed and
// last is the unit whose submission completed it.
//
// passed counts items already advanced past; total adds every item still reachable
// from cur onward. Hidden sections/items never count, and neither do contents items.
func statusBar(idx *surveyIndex, s *models.ResponseSession, cur, last *unit) (*models.StatusBarData, error) {
	w := &walker{idx: idx, answers: s.Answer.Items, lenient: true}

	passedItems, passedSecs, err := passedSoFar(w, s, cur, last)
	if err != nil {
		return nil, err
	}

	data := &models.StatusBarData{Passed: len(passedItems), Total: len(passedItems)}
	remainingSecs := 0

	if cur != nil {
		from := position{sec: cur.sec}
		if idx.survey.DisplaySingleQuestion {
			from = idx.itemPos[cur.items[0].ID.Hex()]
		}
		for p := from.sec; p < len(idx.sections); p++ {
			start := 0
			if p == from.sec {
				start = from.item
			}
			items, err := w.visibleItems(p, start, 0)
			if err != nil {
				return nil, err
			}
			if p == cur.sec {
				// cur is presentable even if lenient evaluation disagrees
				items = mergeUnique(cur.items, items)
			}
			if len(items) == 0 {
				continue
			}
			remainingSecs++
			for _, it := range items {
				if it.Counted() && !slices.Contains(passedItems, it.ID.Hex()) {
					data.Total++
				}
			}
		}
	}

	if idx.survey.DisplaySingleQuestion {
		ps := len(passedSecs)
		ts := ps + remainingSecs
		data.PassedSection = &ps
		data.TotalSection = &ts
	}
	return data, nil
}

// passedSoFar returns the counted item ids and section indexes already advanced past.
func passedSoFar(w *walker, s *models.ResponseSession, cur, last *unit) ([]string, []int, error) {
	var items []string
	var secs []int
	add := func(it *models.SurveyItem, sec int) {
		if it.Counted() && !slices.Contains(items, it.ID.Hex()) {
			items = append(items, it.ID.Hex())
		}
		if (cur == nil || sec != cur.sec) && !slices.Contains(secs, sec) {
			secs = append(secs, sec)
		}
	}

	if w.idx.survey.DisplaySingleQuestion {
		hist := s.QuestionStepHistory
		if cur != nil && len(hist) > 0 {
			hist = hist[:len(hist)-1]
		}
		for _, id := range hist {
			if it, ok := w.idx.items[id]; ok && !w.idx.itemHidden(it) {
				add(it, w.idx.itemPos[id].sec)
			}
		}
	} else {
		hist := s.StepHistory
		if cur != nil && len(hist) > 0 {
			hist = hist[:len(hist)-1]
		}
		for _, p := range hist {
			if p < 0 || p >= len(w.idx.sections) {
				continue
			}
			shown, err := w.visibleItems(p, 0, 0)
			if err != nil {
				return nil, nil, err
			}
			for _, it := range shown {
				add(it, p)
			}
		}
	}

	if cur == nil && last != nil {
		for _, it := range last.items {
			add(it, last.sec)
		}
	}
	return items, secs, nil
}

func mergeUnique(a, b []*models.SurveyItem) []*models.SurveyItem {
	out := slices.Clone(a)
	for _, it := range b {
		if !slices.Contains(out, it) {
			out = append(out, it)
		}
	}
	return out
}
