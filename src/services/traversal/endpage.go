package traversal

import (
	"Backend-Survey-Engine/src/models"
)

// resolveEndPage picks the terminal page of a completed session.
// A page pinned by a selectEndPage flow action wins; quizzes then try each end page's
// routing rules in order against quizCorrect; everything else gets the default page.
func resolveEndPage(idx *surveyIndex, s *models.ResponseSession) (*models.EndPage, error) {
	if s.EndPageID != nil {
		if p, ok := idx.endPages[s.EndPageID.Hex()]; ok {
			return p, nil
		}
	}
	if idx.survey.SurveyType == models.SurveyTypeQuiz {
		for i := range idx.survey.EndPages {
			page := &idx.survey.EndPages[i]
			for _, r := range page.QuizRules {
				ok, err := matchQuizRule(r, s.QuizCorrect)
				if err != nil {
					return nil, err
				}
				if ok {
					return page, nil
				}
			}
		}
	}
	return idx.defaultEndPage(), nil
}
