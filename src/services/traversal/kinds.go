package traversal

import (
	"encoding/json"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"Backend-Survey-Engine/src/models"

	"github.com/go-playground/validator/v10"
)

// questionKind is the per-type behavior of a question. Every question type maps to one
// implementation in kinds; validation, scoring and rule conditions dispatch through it.
type questionKind interface {
	decode(it *models.SurveyItem, raw any) (models.ItemAnswer, error)
	validate(c *checkCtx, it *models.SurveyItem, a models.ItemAnswer) error
	score(q *models.Question, a models.ItemAnswer) bool
	match(p models.Predicate, a *models.ItemAnswer) (bool, error)
}

var kinds = map[string]questionKind{
	models.QuestionTypeText:                 textKind{},
	models.QuestionTypeCountryList:          countryKind{},
	models.QuestionTypeMultipleChoice:       singleChoiceKind{},
	models.QuestionTypeDropdown:             singleChoiceKind{},
	models.QuestionTypeCheckboxes:           multiChoiceKind{},
	models.QuestionTypeLinearScale:          scalarKind{},
	models.QuestionTypeSlider:               scalarKind{},
	models.QuestionTypeNetPromoterScore:     scalarKind{nps: true},
	models.QuestionTypeThumbs:               thumbsKind{},
	models.QuestionTypeMultipleChoiceMatrix: matrixKind{single: true},
	models.QuestionTypeCheckboxMatrix:       matrixKind{},
}

func kindOf(q *models.Question) (questionKind, bool) {
	if q == nil {
		return nil, false
	}
	k, ok := kinds[q.Type]
	return k, ok
}

// checkCtx carries the aggregate of validation messages for one submission.
type checkCtx struct {
	errs *ValidationError
	msg  MessageCatalog
}

var (
	validate     = validator.New()
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s\-().]{5,19}$`)
)

// ---------- decoding helpers ----------

func asString(raw any) (string, bool) {
	s, ok := raw.(string)
	return s, ok
}

// asNumber accepts JSON numbers and numeric strings. NaN and infinities are rejected:
// they fail every range check and cannot be encoded back to JSON.
func asNumber(raw any) (float64, bool) {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case string:
		n, ok := parseFinite(v)
		if !ok {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	return f, !math.IsNaN(f) && !math.IsInf(f, 0)
}

func parseFinite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func asStrings(raw any) ([]string, bool) {
	switch v := raw.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func asCells(raw any) ([]models.GridCell, bool) {
	switch v := raw.(type) {
	case []models.GridCell:
		return v, true
	case []any:
		out := make([]models.GridCell, 0, len(v))
		for _, e := range v {
			m, ok := e.(map[string]any)
			if !ok {
				return nil, false
			}
			row, rok := m["row"].(string)
			col, cok := m["column"].(string)
			if !rok || !cok {
				return nil, false
			}
			out = append(out, models.GridCell{Row: row, Column: col})
		}
		return out, true
	}
	return nil, false
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

func sameSet(a, b []string) bool {
	a, b = dedupe(a), dedupe(b)
	if len(a) != len(b) {
		return false
	}
	for _, s := range a {
		if !slices.Contains(b, s) {
			return false
		}
	}
	return true
}

func cellKey(c models.GridCell) string {
	return c.Row + ":" + c.Column
}

func cellKeys(cells []models.GridCell) []string {
	out := make([]string, 0, len(cells))
	for _, c := range cells {
		out = append(out, cellKey(c))
	}
	return out
}

func checkCount(c *checkCtx, it *models.SurveyItem, n int) {
	id := it.ID.Hex()
	if it.MinAnswers != nil && n < *it.MinAnswers {
		c.errs.add(id, c.msg.Message(models.MsgMinAnswers))
		return
	}
	if it.MaxAnswers != nil && n > *it.MaxAnswers {
		c.errs.add(id, c.msg.Message(models.MsgMaxAnswers))
	}
}

func compareNumber(cond string, v, want float64) (bool, error) {
	switch cond {
	case models.CondEqual, "":
		return v == want, nil
	case models.CondNotEqual:
		return v != want, nil
	case models.CondGreater:
		return v > want, nil
	case models.CondLess:
		return v < want, nil
	}
	return false, malformed("condition %q does not apply to numbers", cond)
}

// ---------- text ----------

type textKind struct{}

func (textKind) decode(it *models.SurveyItem, raw any) (models.ItemAnswer, error) {
	s, ok := asString(raw)
	if !ok {
		return models.ItemAnswer{}, badRequest(it.ID.Hex(), "text answer must be a string")
	}
	return models.ItemAnswer{Value: &s}, nil
}

func (textKind) validate(c *checkCtx, it *models.SurveyItem, a models.ItemAnswer) error {
	if a.Value == nil || *a.Value == "" {
		return nil
	}
	id := it.ID.Hex()
	s := *a.Value
	if it.TextLimit != nil && *it.TextLimit > 0 && utf8.RuneCountInString(s) > *it.TextLimit {
		c.errs.add(id, c.msg.Message(models.MsgTextLimit))
		return nil
	}

	q := it.Question
	switch q.Input {
	case models.InputNumber:
		f, ok := parseFinite(s)
		if !ok {
			c.errs.add(id, c.msg.Message(models.MsgNumber))
			return nil
		}
		if (q.From != nil && f < *q.From) || (q.To != nil && f > *q.To) {
			c.errs.add(id, c.msg.Message(models.MsgNumberRange))
		}
	case models.InputPhone:
		if !phonePattern.MatchString(strings.TrimSpace(s)) {
			c.errs.add(id, c.msg.Message(models.MsgPhone))
		}
	case models.InputEmail:
		if err := validate.Var(strings.TrimSpace(s), "required,email"); err != nil {
			c.errs.add(id, c.msg.Message(models.MsgEmail))
		}
	}
	return nil
}

func (textKind) score(*models.Question, models.ItemAnswer) bool { return false }

func (textKind) match(p models.Predicate, a *models.ItemAnswer) (bool, error) {
	s := ""
	if a != nil {
		switch {
		case a.Value != nil:
			s = *a.Value
		case a.CustomAnswer != nil:
			s = *a.CustomAnswer
		}
	}
	switch p.Condition {
	case models.CondEqual:
		return s == p.Value, nil
	case models.CondNotEqual:
		return s != p.Value, nil
	case models.CondContains:
		return s != "" && strings.Contains(s, p.Value), nil
	case models.CondBeginsWith:
		return s != "" && strings.HasPrefix(s, p.Value), nil
	case models.CondEndsWith:
		return s != "" && strings.HasSuffix(s, p.Value), nil
	case models.CondMatchRegExp:
		re, err := regexp.Compile(p.Value)
		if err != nil {
			return false, malformed("bad regexp %q: %v", p.Value, err)
		}
		return re.MatchString(s), nil
	}
	return false, malformed("condition %q does not apply to text", p.Condition)
}

// ---------- country list ----------

type countryKind struct{}

func (countryKind) decode(it *models.SurveyItem, raw any) (models.ItemAnswer, error) {
	s, ok := asString(raw)
	if !ok {
		return models.ItemAnswer{}, badRequest(it.ID.Hex(), "country must be a string")
	}
	return models.ItemAnswer{Value: &s}, nil
}

func (countryKind) validate(*checkCtx, *models.SurveyItem, models.ItemAnswer) error { return nil }

func (countryKind) score(*models.Question, models.ItemAnswer) bool { return false }

func (countryKind) match(p models.Predicate, a *models.ItemAnswer) (bool, error) {
	s := ""
	if a != nil && a.Value != nil {
		s = *a.Value
	}
	wanted := p.Options
	if p.Value != "" {
		wanted = append(slices.Clone(wanted), p.Value)
	}
	switch p.Condition {
	case models.CondEqual, models.CondSelected:
		return s != "" && slices.Contains(wanted, s), nil
	case models.CondNotEqual, models.CondNotSelected:
		return !slices.Contains(wanted, s), nil
	}
	return false, malformed("condition %q does not apply to country lists", p.Condition)
}

// ---------- multipleChoice / dropdown ----------

type singleChoiceKind struct{}

func (singleChoiceKind) decode(it *models.SurveyItem, raw any) (models.ItemAnswer, error) {
	s, ok := asString(raw)
	if !ok {
		return models.ItemAnswer{}, badRequest(it.ID.Hex(), "choice answer must be an option id")
	}
	if s == "" {
		return models.ItemAnswer{}, nil
	}
	return models.ItemAnswer{Value: &s}, nil
}

func (singleChoiceKind) validate(c *checkCtx, it *models.SurveyItem, a models.ItemAnswer) error {
	if a.Value == nil {
		return nil
	}
	if it.Question.Option(*a.Value) == nil {
		return badRequest(it.ID.Hex(), "unknown option %s", *a.Value)
	}
	return nil
}

func (singleChoiceKind) score(q *models.Question, a models.ItemAnswer) bool {
	if a.Value == nil {
		return false
	}
	opt := q.Option(*a.Value)
	return opt != nil && opt.QuizCorrect
}

func (singleChoiceKind) match(p models.Predicate, a *models.ItemAnswer) (bool, error) {
	selected := ""
	if a != nil && a.Value != nil {
		selected = *a.Value
	}
	wanted := p.Options
	if p.Value != "" {
		wanted = append(slices.Clone(wanted), p.Value)
	}
	hit := selected != "" && slices.Contains(wanted, selected)
	switch p.Condition {
	case models.CondSelected, models.CondEqual:
		return hit, nil
	case models.CondNotSelected, models.CondNotEqual:
		return !hit, nil
	}
	return false, malformed("condition %q does not apply to single choice", p.Condition)
}

// ---------- checkboxes ----------

type multiChoiceKind struct{}

func (multiChoiceKind) decode(it *models.SurveyItem, raw any) (models.ItemAnswer, error) {
	opts, ok := asStrings(raw)
	if !ok {
		return models.ItemAnswer{}, badRequest(it.ID.Hex(), "checkbox answer must be a list of option ids")
	}
	return models.ItemAnswer{Options: dedupe(opts)}, nil
}

func (multiChoiceKind) validate(c *checkCtx, it *models.SurveyItem, a models.ItemAnswer) error {
	for _, id := range a.Options {
		if it.Question.Option(id) == nil {
			return badRequest(it.ID.Hex(), "unknown option %s", id)
		}
	}
	if len(a.Options) > 0 {
		checkCount(c, it, len(a.Options))
	}
	return nil
}

func (multiChoiceKind) score(q *models.Question, a models.ItemAnswer) bool {
	var correct []string
	for _, o := range q.Options {
		if o.QuizCorrect {
			correct = append(correct, o.ID.Hex())
		}
	}
	return len(correct) > 0 && sameSet(a.Options, correct)
}

func (multiChoiceKind) match(p models.Predicate, a *models.ItemAnswer) (bool, error) {
	var selected []string
	if a != nil {
		selected = a.Options
	}
	wanted := p.Options
	if p.Value != "" {
		wanted = append(slices.Clone(wanted), p.Value)
	}
	hit := false
	for _, w := range wanted {
		if slices.Contains(selected, w) {
			hit = true
			break
		}
	}
	switch p.Condition {
	case models.CondSelected:
		return hit, nil
	case models.CondNotSelected:
		return !hit, nil
	case models.CondEqual:
		return sameSet(selected, wanted), nil
	}
	return false, malformed("condition %q does not apply to checkboxes", p.Condition)
}

// ---------- linearScale / slider / netPromoterScore ----------

type scalarKind struct {
	nps bool
}

func (scalarKind) decode(it *models.SurveyItem, raw any) (models.ItemAnswer, error) {
	f, ok := asNumber(raw)
	if !ok {
		return models.ItemAnswer{}, badRequest(it.ID.Hex(), "scale answer must be a number")
	}
	return models.ItemAnswer{Number: &f}, nil
}

func (k scalarKind) validate(c *checkCtx, it *models.SurveyItem, a models.ItemAnswer) error {
	if a.Number == nil {
		return nil
	}
	v := *a.Number
	q := it.Question
	lo, hi := q.From, q.To
	if k.nps {
		zero, ten := 0.0, 10.0
		lo, hi = &zero, &ten
	}
	if (lo != nil && v < *lo) || (hi != nil && v > *hi) {
		c.errs.add(it.ID.Hex(), c.msg.Message(models.MsgNumberRange))
	}
	return nil
}

func (scalarKind) score(q *models.Question, a models.ItemAnswer) bool {
	if a.Number == nil {
		return false
	}
	v := *a.Number
	if q.QuizCorrectRange != nil && (q.QuizCondition == "" || q.QuizCondition == models.CondRange) {
		return q.QuizCorrectRange.Contains(v)
	}
	if q.QuizCorrectValue == nil {
		return false
	}
	ok, err := compareNumber(q.QuizCondition, v, *q.QuizCorrectValue)
	return err == nil && ok
}

func (scalarKind) match(p models.Predicate, a *models.ItemAnswer) (bool, error) {
	if p.Condition == models.CondRange {
		if p.Range == nil {
			return false, malformed("range condition without range")
		}
		return a != nil && a.Number != nil && p.Range.Contains(*a.Number), nil
	}
	if p.Number == nil {
		return false, malformed("condition %q without number", p.Condition)
	}
	if a == nil || a.Number == nil {
		return p.Condition == models.CondNotEqual, nil
	}
	return compareNumber(p.Condition, *a.Number, *p.Number)
}

// ---------- thumbs ----------

type thumbsKind struct{}

func (thumbsKind) decode(it *models.SurveyItem, raw any) (models.ItemAnswer, error) {
	var f float64
	switch v := raw.(type) {
	case bool:
		if v {
			f = 1
		}
	default:
		n, ok := asNumber(raw)
		if !ok {
			return models.ItemAnswer{}, badRequest(it.ID.Hex(), "thumbs answer must be 0/1 or a boolean")
		}
		f = n
	}
	if f != 0 && f != 1 {
		return models.ItemAnswer{}, badRequest(it.ID.Hex(), "thumbs answer must be 0 or 1")
	}
	return models.ItemAnswer{Number: &f}, nil
}

func (thumbsKind) validate(*checkCtx, *models.SurveyItem, models.ItemAnswer) error { return nil }

func (thumbsKind) score(q *models.Question, a models.ItemAnswer) bool {
	return a.Number != nil && q.QuizCorrectValue != nil && *a.Number == *q.QuizCorrectValue
}

func (thumbsKind) match(p models.Predicate, a *models.ItemAnswer) (bool, error) {
	if p.Number == nil {
		return false, malformed("thumbs condition without number")
	}
	if a == nil || a.Number == nil {
		return p.Condition == models.CondNotEqual, nil
	}
	switch p.Condition {
	case models.CondEqual, models.CondNotEqual:
		return compareNumber(p.Condition, *a.Number, *p.Number)
	}
	return false, malformed("condition %q does not apply to thumbs", p.Condition)
}

// ---------- multipleChoiceMatrix / checkboxMatrix ----------

type matrixKind struct {
	single bool
}

func (matrixKind) decode(it *models.SurveyItem, raw any) (models.ItemAnswer, error) {
	cells, ok := asCells(raw)
	if !ok {
		return models.ItemAnswer{}, badRequest(it.ID.Hex(), "matrix answer must be a list of {row, column}")
	}
	return models.ItemAnswer{Cells: cells}, nil
}

func (k matrixKind) validate(c *checkCtx, it *models.SurveyItem, a models.ItemAnswer) error {
	q := it.Question
	id := it.ID.Hex()
	perRow := map[string]int{}
	for _, cell := range a.Cells {
		if !q.HasRow(cell.Row) || !q.HasColumn(cell.Column) {
			return badRequest(id, "unknown grid cell %s/%s", cell.Row, cell.Column)
		}
		perRow[cell.Row]++
		if k.single && perRow[cell.Row] > 1 {
			return badRequest(id, "row %s takes a single column", cell.Row)
		}
	}
	if it.Required {
		for _, r := range q.GridRows {
			if perRow[r.ID.Hex()] == 0 {
				c.errs.addRow(id, r.ID.Hex(), c.msg.Message(models.MsgRowRequired))
			}
		}
	}
	if len(a.Cells) > 0 {
		// a single-choice grid counts answered rows, a checkbox grid counts cells
		n := len(a.Cells)
		if k.single {
			n = len(perRow)
		}
		checkCount(c, it, n)
	}
	return nil
}

func (matrixKind) score(q *models.Question, a models.ItemAnswer) bool {
	return len(q.QuizCorrectCells) > 0 && sameSet(cellKeys(a.Cells), cellKeys(q.QuizCorrectCells))
}

func (matrixKind) match(p models.Predicate, a *models.ItemAnswer) (bool, error) {
	var have []string
	if a != nil {
		have = cellKeys(a.Cells)
	}
	hit := false
	for _, w := range cellKeys(p.Cells) {
		if slices.Contains(have, w) {
			hit = true
			break
		}
	}
	switch p.Condition {
	case models.CondSelected:
		return hit, nil
	case models.CondNotSelected:
		return !hit, nil
	}
	return false, malformed("condition %q does not apply to matrices", p.Condition)
}
