package traversal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Backend-Survey-Engine/src/logger"
	"Backend-Survey-Engine/src/metrics"
	"Backend-Survey-Engine/src/models"
)

const defaultConflictAttempts = 3

// Engine drives response sessions through a survey: it resolves the session, validates and
// merges answers, applies flow and display rules, scores quizzes and reports progress.
// It holds no state of its own; everything lives in the injected stores.
type Engine struct {
	sessions SessionStore
	surveys  SurveyStore
	invites  InviteStore
	pulses   PulseStore
	messages MessageCatalog

	locker           Locker
	notifier         CompletionNotifier
	now              func() time.Time
	conflictAttempts int
}

type Option func(*Engine)

func WithLocker(l Locker) Option {
	return func(e *Engine) { e.locker = l }
}

func WithNotifier(n CompletionNotifier) Option {
	return func(e *Engine) { e.notifier = n }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithConflictAttempts bounds how often a submission is re-run after a version conflict.
func WithConflictAttempts(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.conflictAttempts = n
		}
	}
}

func NewEngine(sessions SessionStore, surveys SurveyStore, invites InviteStore, pulses PulseStore, messages MessageCatalog, opts ...Option) *Engine {
	e := &Engine{
		sessions:         sessions,
		surveys:          surveys,
		invites:          invites,
		pulses:           pulses,
		messages:         messages,
		now:              time.Now,
		conflictAttempts: defaultConflictAttempts,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GetAnswers returns the unit currently due, with stored answers and status bar data.
// It never writes.
func (e *Engine) GetAnswers(ctx context.Context, key SessionKey) (*models.AnswerPayload, error) {
	r, err := e.resolve(ctx, key)
	if err != nil {
		return nil, err
	}
	if r.payload != nil {
		return r.payload, nil
	}

	view := passView(r.session)
	w := &walker{idx: r.idx, answers: view.Answer.Items}
	cur, err := strategyFor(r.survey).current(w, view)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return e.completionPayload(r, view, nil)
	}
	return e.unitPayload(r, view, cur)
}

// PutAnswers validates the submission against the current unit, merges it and advances.
func (e *Engine) PutAnswers(ctx context.Context, key SessionKey, sub Submission) (*models.AnswerPayload, error) {
	return e.serialized(ctx, key, func() (*models.AnswerPayload, error) {
		return e.putOnce(ctx, key, sub)
	})
}

// StepBack moves the session one unit back along its recorded history.
func (e *Engine) StepBack(ctx context.Context, key SessionKey) (*models.AnswerPayload, error) {
	return e.serialized(ctx, key, func() (*models.AnswerPayload, error) {
		return e.stepBackOnce(ctx, key)
	})
}

// serialized holds the session lock for the whole read-modify-write and re-runs fn
// from a fresh read whenever the save lost a version race.
func (e *Engine) serialized(ctx context.Context, key SessionKey, fn func() (*models.AnswerPayload, error)) (*models.AnswerPayload, error) {
	if e.locker != nil {
		unlock, err := e.locker.Lock(ctx, key.lockKey())
		if err != nil {
			return nil, fmt.Errorf("lock session: %w", err)
		}
		defer unlock()
	}
	for attempt := 1; attempt <= e.conflictAttempts; attempt++ {
		p, err := fn()
		if !errors.Is(err, ErrVersionConflict) {
			return p, err
		}
		metrics.VersionConflicts.Inc()
		logger.Warnf("⚠️ [serialized] version conflict on %s, attempt %d/%d", key.lockKey(), attempt, e.conflictAttempts)
	}
	return nil, ErrConcurrentUpdate
}

func (e *Engine) putOnce(ctx context.Context, key SessionKey, sub Submission) (*models.AnswerPayload, error) {
	r, err := e.resolve(ctx, key)
	if err != nil {
		return nil, err
	}
	if r.payload != nil {
		return r.payload, nil
	}

	s := r.session
	wasCompleted := s.Completed
	if s.Completed && !s.ReAnswering {
		// first submission of a re-answer pass
		s.Step = 0
		s.StepHistory = nil
		s.QuestionStepHistory = nil
		s.ReAnswering = true
	}

	strat := strategyFor(r.survey)
	w := &walker{idx: r.idx, answers: s.Answer.Items, collect: true}
	cur, err := strat.current(w, s)
	if err != nil {
		return nil, err
	}
	w.skipped = nil

	submitted, err := decodeSubmission(cur, sub.Answer)
	if err != nil {
		return nil, err
	}
	if err := validateUnit(cur, submitted, e.messages); err != nil {
		return nil, err
	}

	mergeAnswers(s, cur, submitted)
	mergeAssets(s, sub.Assets)
	if d := detectDevice(sub.Device); d != nil {
		s.Device = d
	}
	w.answers = s.Answer.Items

	next, done, err := e.decideNext(r, w, strat, s, cur)
	if err != nil {
		return nil, err
	}
	recordSkippedByFlow(s, w.skipped)
	if r.survey.SurveyType == models.SurveyTypeQuiz {
		scoreQuiz(r.idx, s)
	}

	now := e.now()
	if done {
		s.Completed = true
		s.ReAnswering = false
		if s.CompletedAt == nil {
			s.CompletedAt = &now
		}
	} else {
		strat.advance(s, cur, next)
	}
	s.UpdatedAt = now

	if err := e.sessions.Save(ctx, s); err != nil {
		return nil, err
	}

	if !done {
		logger.Debugf("➡️ [PutAnswers] session=%s step=%d", s.ID.Hex(), s.Step)
		return e.unitPayload(r, s, next)
	}

	logger.Infof("✅ [PutAnswers] session=%s survey=%s completed quizCorrect=%d", s.ID.Hex(), r.survey.ID.Hex(), s.QuizCorrect)
	if !wasCompleted {
		metrics.Completions.WithLabelValues(r.survey.SurveyType).Inc()
		if e.notifier != nil {
			if err := e.notifier.SessionCompleted(ctx, s, r.survey); err != nil {
				logger.Errorf("❌ [PutAnswers] completion notification for %s failed: %v", s.ID.Hex(), err)
			}
		}
	}
	return e.completionPayload(r, s, cur)
}

// decideNext runs the flow rules of the just-answered unit first; without a match it
// falls through to plain forward order. Display rules are applied while searching forward.
func (e *Engine) decideNext(r *resolved, w *walker, strat unitStrategy, s *models.ResponseSession, cur *unit) (*unit, bool, error) {
	if cur == nil {
		return nil, true, nil
	}

	rule, err := r.idx.firstFlowRule(cur.items, s.Answer.Items)
	if err != nil {
		return nil, false, err
	}

	var next *unit
	switch {
	case rule == nil:
		next, err = strat.after(w, cur)
	case rule.Action == models.ActionEndSurvey:
		return nil, true, nil
	case rule.Action == models.ActionSelectEndPage:
		if rule.Target == nil {
			return nil, false, malformed("selectEndPage without target")
		}
		if _, ok := r.idx.endPages[rule.Target.Hex()]; !ok {
			return nil, false, malformed("selectEndPage targets unknown end page %s", rule.Target.Hex())
		}
		target := *rule.Target
		s.EndPageID = &target
		return nil, true, nil
	case rule.Action == models.ActionToSection:
		if rule.Target == nil {
			return nil, false, malformed("toSection without target")
		}
		tp, ok := r.idx.sectionPos[rule.Target.Hex()]
		if !ok {
			return nil, false, malformed("toSection targets unknown section %s", rule.Target.Hex())
		}
		if tp <= cur.sec {
			return nil, false, malformed("toSection must point forward (section %s)", rule.Target.Hex())
		}
		next, err = strat.jump(w, cur, tp)
	default:
		return nil, false, malformed("unknown flow action %q", rule.Action)
	}
	if err != nil {
		return nil, false, err
	}
	return next, next == nil, nil
}

func (e *Engine) stepBackOnce(ctx context.Context, key SessionKey) (*models.AnswerPayload, error) {
	r, err := e.resolve(ctx, key)
	if err != nil {
		return nil, err
	}
	if r.payload != nil {
		return r.payload, nil
	}

	refuse := &models.AnswerPayload{Message: e.messages.Message(models.MsgSurveyCantStepBack)}
	s := r.session
	if !r.survey.StepBack || (s.Completed && !s.ReAnswering) {
		metrics.StepBacks.WithLabelValues("refused").Inc()
		return refuse, nil
	}

	w := &walker{idx: r.idx, answers: s.Answer.Items}
	u, ok, err := strategyFor(r.survey).back(w, s)
	if err != nil {
		return nil, err
	}
	if !ok {
		metrics.StepBacks.WithLabelValues("refused").Inc()
		return refuse, nil
	}

	s.UpdatedAt = e.now()
	if err := e.sessions.Save(ctx, s); err != nil {
		return nil, err
	}
	metrics.StepBacks.WithLabelValues("moved").Inc()
	logger.Debugf("⬅️ [StepBack] session=%s step=%d", s.ID.Hex(), s.Step)
	return e.unitPayload(r, s, u)
}

// passView presents a completed, re-answerable session from its first unit without touching it.
func passView(s *models.ResponseSession) *models.ResponseSession {
	if !s.Completed || s.ReAnswering {
		return s
	}
	v := *s
	v.Step = 0
	v.StepHistory = nil
	v.QuestionStepHistory = nil
	return &v
}

func surveyPayload(s *models.Survey) *models.SurveyPayload {
	return &models.SurveyPayload{ID: s.ID, Name: s.Name, SurveyType: s.SurveyType}
}

func (e *Engine) unitPayload(r *resolved, s *models.ResponseSession, u *unit) (*models.AnswerPayload, error) {
	sec := r.idx.sections[u.sec]
	section := &models.SectionPayload{
		ID:                sec.ID,
		Name:              sec.Name,
		SortableID:        sec.SortableID,
		Step:              u.sec,
		PulseSurveyDriver: sec.PulseSurveyDriver,
		SurveyItems:       make([]models.SurveyItem, 0, len(u.items)),
	}
	answers := map[string]models.ItemAnswer{}
	for _, it := range u.items {
		section.SurveyItems = append(section.SurveyItems, *it)
		if a, ok := s.Answer.Items[it.ID.Hex()]; ok {
			answers[it.ID.Hex()] = a
		}
	}

	p := &models.AnswerPayload{Survey: surveyPayload(r.survey)}
	p.Survey.SurveySection = section
	if len(answers) > 0 {
		p.Answer = answers
	}
	if r.survey.StatusBar {
		sb, err := statusBar(r.idx, s, u, nil)
		if err != nil {
			return nil, err
		}
		p.StatusBarData = sb
	}
	return p, nil
}

func (e *Engine) completionPayload(r *resolved, s *models.ResponseSession, last *unit) (*models.AnswerPayload, error) {
	p := &models.AnswerPayload{
		Message:   e.messages.Message(completedKey(r.survey)),
		Completed: true,
		Survey:    surveyPayload(r.survey),
	}
	page, err := resolveEndPage(r.idx, s)
	if err != nil {
		return nil, err
	}
	p.Survey.NewEndPage = page

	if r.survey.SurveyType == models.SurveyTypeQuiz {
		qc := s.QuizCorrect
		p.QuizCorrect = &qc
		if r.survey.ShowResultText {
			p.QuizResult = quizBreakdown(r.idx, s)
		}
	}
	if r.survey.StatusBar {
		sb, err := statusBar(r.idx, s, nil, last)
		if err != nil {
			return nil, err
		}
		p.StatusBarData = sb
	}
	return p, nil
}
