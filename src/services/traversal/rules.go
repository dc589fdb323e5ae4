package traversal

import (
	"Backend-Survey-Engine/src/models"
)

// evalPredicate tests one predicate against the answer stored for its item.
// A zero ItemID refers to owner.
func (idx *surveyIndex) evalPredicate(p models.Predicate, owner string, answers map[string]models.ItemAnswer) (bool, error) {
	itemID := owner
	if !p.ItemID.IsZero() {
		itemID = p.ItemID.Hex()
	}
	it, ok := idx.items[itemID]
	if !ok {
		return false, malformed("rule references unknown item %s", itemID)
	}

	var a *models.ItemAnswer
	if stored, ok := answers[itemID]; ok {
		a = &stored
	}

	switch p.Condition {
	case models.CondEmpty:
		return a == nil || a.IsEmpty(), nil
	case models.CondNotEmpty:
		return a != nil && !a.IsEmpty(), nil
	}

	k, ok := kindOf(it.Question)
	if !ok {
		return false, malformed("item %s has no evaluable question", itemID)
	}
	return k.match(p, a)
}

// firstFlowRule returns the first satisfied flow rule over the given items, in item order.
// Conditions are evaluated against answers, which already include the current submission.
func (idx *surveyIndex) firstFlowRule(items []*models.SurveyItem, answers map[string]models.ItemAnswer) (*models.FlowRule, error) {
	for _, it := range items {
		owner := it.ID.Hex()
		for ri := range it.FlowRules {
			rule := &it.FlowRules[ri]
			ok, err := idx.allHold(rule.Conditions, owner, answers)
			if err != nil {
				return nil, err
			}
			if ok {
				return rule, nil
			}
		}
	}
	return nil, nil
}

func (idx *surveyIndex) allHold(preds []models.Predicate, owner string, answers map[string]models.ItemAnswer) (bool, error) {
	for _, p := range preds {
		ok, err := idx.evalPredicate(p, owner, answers)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// displayAllows evaluates display rules against stored answers. Every rule must allow:
// display:false hides on match, display:true shows only on match.
// When lenient, a rule whose condition item has no stored answer yet is skipped;
// progress totals use that mode so unanswered conditions do not shrink the total.
func (idx *surveyIndex) displayAllows(rules []models.DisplayRule, answers map[string]models.ItemAnswer, lenient bool) (bool, error) {
	for _, r := range rules {
		condID := r.ConditionItemID.Hex()
		if _, ok := idx.items[condID]; !ok {
			return false, malformed("display rule references unknown item %s", condID)
		}
		if lenient {
			if _, answered := answers[condID]; !answered {
				continue
			}
		}
		p := r.Predicate
		p.ItemID = r.ConditionItemID
		matched, err := idx.evalPredicate(p, condID, answers)
		if err != nil {
			return false, err
		}
		if matched != r.Display {
			return false, nil
		}
	}
	return true, nil
}

// matchQuizRule checks an end page routing rule against the quizCorrect count.
func matchQuizRule(r models.QuizRule, correct int) (bool, error) {
	v := float64(correct)
	switch r.Condition {
	case models.CondEqual:
		if r.Value == nil {
			return false, malformed("quiz rule %q without value", r.Condition)
		}
		return v == *r.Value, nil
	case models.CondRange:
		if r.Range == nil {
			return false, malformed("quiz rule range without bounds")
		}
		return r.Range.Contains(v), nil
	}
	return false, malformed("quiz rule condition %q not supported", r.Condition)
}
