package traversal

import (
	"slices"

	"Backend-Survey-Engine/src/models"
)

// scoreQuiz re-derives per-item correctness from every stored answer and sets
// quizCorrect to the number of correct quiz questions. Re-answering an item
// replaces its verdict instead of counting it twice.
func scoreQuiz(idx *surveyIndex, s *models.ResponseSession) {
	results := map[string]bool{}
	correct := 0
	for id, a := range s.Answer.Items {
		it, ok := idx.items[id]
		if !ok || it.Question == nil || !it.Question.Quiz {
			continue
		}
		k, ok := kindOf(it.Question)
		if !ok {
			continue
		}
		verdict := k.score(it.Question, a)
		results[id] = verdict
		if verdict {
			correct++
		}
	}
	s.QuizResults = results
	s.QuizCorrect = correct
}

// quizBreakdown lists answered quiz questions in survey order, each option annotated with
// its own quizCorrect flag and result text.
func quizBreakdown(idx *surveyIndex, s *models.ResponseSession) []models.QuizItemResult {
	var out []models.QuizItemResult
	for _, sec := range idx.sections {
		for i := range sec.Items {
			it := &sec.Items[i]
			q := it.Question
			if q == nil || !q.Quiz {
				continue
			}
			a, answered := s.Answer.Items[it.ID.Hex()]
			if !answered {
				continue
			}
			res := models.QuizItemResult{
				ItemID:   it.ID,
				Question: q.Name,
				Correct:  s.QuizResults[it.ID.Hex()],
			}
			for _, o := range q.Options {
				oid := o.ID.Hex()
				res.Options = append(res.Options, models.QuizOptionResult{
					ID:             o.ID,
					Name:           o.Name,
					Selected:       (a.Value != nil && *a.Value == oid) || slices.Contains(a.Options, oid),
					QuizCorrect:    o.QuizCorrect,
					QuizResultText: o.QuizResultText,
				})
			}
			out = append(out, res)
		}
	}
	return out
}
