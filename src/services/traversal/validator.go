package traversal

import (
	"fmt"
	"strings"

	"Backend-Survey-Engine/src/models"
)

const customAnswerSuffix = "_customAnswer"

// decodeSubmission turns the raw answer map into typed answers for the items of the
// current unit. Keys outside the unit are rejected with ErrUnprocessableAnswer.
func decodeSubmission(u *unit, raw map[string]any) (map[string]models.ItemAnswer, error) {
	inUnit := map[string]*models.SurveyItem{}
	if u != nil {
		for _, it := range u.items {
			inUnit[it.ID.Hex()] = it
		}
	}

	out := map[string]models.ItemAnswer{}
	for key, val := range raw {
		id, custom := strings.CutSuffix(key, customAnswerSuffix)
		it, ok := inUnit[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnprocessableAnswer, id)
		}
		if it.Type == models.ItemTypeContents || it.Question == nil {
			return nil, fmt.Errorf("%w: %s takes no answer", ErrUnprocessableAnswer, id)
		}
		if val == nil {
			continue
		}

		a := out[id]
		if custom {
			if !it.CustomAnswer {
				return nil, badRequest(id, "custom answers are not allowed")
			}
			s, ok := val.(string)
			if !ok {
				return nil, badRequest(id, "custom answer must be a string")
			}
			if s != "" {
				a.CustomAnswer = &s
			}
			out[id] = a
			continue
		}

		k, ok := kindOf(it.Question)
		if !ok {
			return nil, badRequest(id, "unsupported question type %q", it.Question.Type)
		}
		decoded, err := k.decode(it, val)
		if err != nil {
			return nil, err
		}
		decoded.CustomAnswer = a.CustomAnswer
		out[id] = decoded
	}
	return out, nil
}

// validateUnit checks every presented item against its submitted answer. Structural
// problems abort with ErrBadRequest; business rule violations are aggregated into a
// *ValidationError keyed by item id (and row id for grids).
func validateUnit(u *unit, submitted map[string]models.ItemAnswer, msg MessageCatalog) error {
	if u == nil {
		return nil
	}
	c := &checkCtx{errs: &ValidationError{}, msg: msg}
	for _, it := range u.items {
		if it.Type == models.ItemTypeContents || it.Question == nil {
			continue
		}
		id := it.ID.Hex()
		a, ok := submitted[id]
		if !ok || a.IsEmpty() {
			if it.Required {
				requireAnswer(c, it)
			}
			continue
		}
		if !a.Structured() {
			// custom answer only
			continue
		}
		k, _ := kindOf(it.Question)
		if err := k.validate(c, it, a); err != nil {
			return err
		}
	}
	if c.errs.empty() {
		return nil
	}
	return c.errs
}

func requireAnswer(c *checkCtx, it *models.SurveyItem) {
	id := it.ID.Hex()
	switch it.Question.Type {
	case models.QuestionTypeMultipleChoiceMatrix, models.QuestionTypeCheckboxMatrix:
		if len(it.Question.GridRows) > 0 {
			for _, r := range it.Question.GridRows {
				c.errs.addRow(id, r.ID.Hex(), c.msg.Message(models.MsgRowRequired))
			}
			return
		}
	}
	c.errs.add(id, c.msg.Message(models.MsgRequired))
}
