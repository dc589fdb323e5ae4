package traversal

import (
	"context"
	"maps"
	"slices"
	"sync"
	"testing"
	"time"

	"Backend-Survey-Engine/src/models"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testToken = "tok-1"

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// ---------- in-memory stores ----------

type memSessions struct {
	mu        sync.Mutex
	byID      map[primitive.ObjectID]*models.ResponseSession
	saves     int
	conflicts int // Save fails with ErrVersionConflict this many more times
}

func newMemSessions() *memSessions {
	return &memSessions{byID: map[primitive.ObjectID]*models.ResponseSession{}}
}

func (m *memSessions) put(s *models.ResponseSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[s.ID] = cloneSession(s)
}

func (m *memSessions) get(id primitive.ObjectID) *models.ResponseSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneSession(m.byID[id])
}

func (m *memSessions) FindByToken(_ context.Context, token string) (*models.ResponseSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.byID {
		if s.Token == token {
			return cloneSession(s), nil
		}
	}
	return nil, ErrNotFound
}

func (m *memSessions) FindByFingerprint(_ context.Context, fp string, surveyID primitive.ObjectID) (*models.ResponseSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.byID {
		if s.FingerprintID == fp && s.SurveyID == surveyID {
			return cloneSession(s), nil
		}
	}
	return nil, ErrNotFound
}

func (m *memSessions) Save(_ context.Context, s *models.ResponseSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conflicts > 0 {
		m.conflicts--
		return ErrVersionConflict
	}
	cur, ok := m.byID[s.ID]
	if !ok || cur.Version != s.Version {
		return ErrVersionConflict
	}
	s.Version++
	m.byID[s.ID] = cloneSession(s)
	m.saves++
	return nil
}

func cloneSession(s *models.ResponseSession) *models.ResponseSession {
	if s == nil {
		return nil
	}
	c := *s
	c.StepHistory = slices.Clone(s.StepHistory)
	c.QuestionStepHistory = slices.Clone(s.QuestionStepHistory)
	c.Answer.Items = maps.Clone(s.Answer.Items)
	c.Answer.Skipped = slices.Clone(s.Answer.Skipped)
	c.Answer.SkippedByFlow = slices.Clone(s.Answer.SkippedByFlow)
	c.QuizResults = maps.Clone(s.QuizResults)
	c.Assets = slices.Clone(s.Assets)
	return &c
}

type memSurveys map[primitive.ObjectID]*models.Survey

func (m memSurveys) LoadSurvey(_ context.Context, id primitive.ObjectID) (*models.Survey, error) {
	s, ok := m[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

type memInvites map[string]*models.Invite

func (m memInvites) FindByToken(_ context.Context, token string) (*models.Invite, error) {
	i, ok := m[token]
	if !ok {
		return nil, ErrNotFound
	}
	return i, nil
}

type memPulses map[primitive.ObjectID]*models.PulseRoundResult

func (m memPulses) FindRoundResult(_ context.Context, id primitive.ObjectID) (*models.PulseRoundResult, error) {
	p, ok := m[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

// keyCatalog answers with the key itself.
type keyCatalog struct{}

func (keyCatalog) Message(key string) string { return key }

type recordingNotifier struct {
	calls []primitive.ObjectID
}

func (n *recordingNotifier) SessionCompleted(_ context.Context, s *models.ResponseSession, _ *models.Survey) error {
	n.calls = append(n.calls, s.ID)
	return nil
}

// ---------- survey builders ----------

func question(qtype string, options ...string) *models.Question {
	q := &models.Question{ID: primitive.NewObjectID(), Name: qtype + " question", Type: qtype}
	for i, name := range options {
		q.Options = append(q.Options, models.QuestionOption{ID: primitive.NewObjectID(), Name: name, SortableID: i})
	}
	return q
}

func grid(qtype string, rows, cols int) *models.Question {
	q := question(qtype)
	for i := 0; i < rows; i++ {
		q.GridRows = append(q.GridRows, models.GridRow{ID: primitive.NewObjectID(), SortableID: i})
	}
	for i := 0; i < cols; i++ {
		q.GridColumns = append(q.GridColumns, models.GridColumn{ID: primitive.NewObjectID(), SortableID: i})
	}
	return q
}

func item(q *models.Question, mods ...func(*models.SurveyItem)) models.SurveyItem {
	it := models.SurveyItem{ID: primitive.NewObjectID(), Type: models.ItemTypeQuestion, Question: q}
	if q != nil {
		it.QuestionID = q.ID
	}
	for _, mod := range mods {
		mod(&it)
	}
	return it
}

func textItem(mods ...func(*models.SurveyItem)) models.SurveyItem {
	return item(question(models.QuestionTypeText), mods...)
}

func required(it *models.SurveyItem) { it.Required = true }
func hidden(it *models.SurveyItem)   { it.Hide = true }

func section(items ...models.SurveyItem) models.Section {
	sec := models.Section{ID: primitive.NewObjectID()}
	for i := range items {
		items[i].SortableID = i
		items[i].SectionID = sec.ID
	}
	sec.Items = items
	return sec
}

func newSurvey(sections ...models.Section) *models.Survey {
	s := &models.Survey{
		ID:         primitive.NewObjectID(),
		Name:       "test survey",
		SurveyType: models.SurveyTypeSurvey,
	}
	for i := range sections {
		sections[i].SortableID = i
		sections[i].SurveyID = s.ID
		for j := range sections[i].Items {
			sections[i].Items[j].SurveyID = s.ID
		}
	}
	s.Sections = sections
	s.EndPages = []models.EndPage{{ID: primitive.NewObjectID(), SurveyID: s.ID, Default: true, Title: "Thanks"}}
	return s
}

func ptr[T any](v T) *T { return &v }

// ---------- fixture ----------

type fixture struct {
	t        *testing.T
	survey   *models.Survey
	session  primitive.ObjectID
	sessions *memSessions
	invites  memInvites
	pulses   memPulses
	notifier *recordingNotifier
	engine   *Engine
	key      SessionKey
}

func newFixture(t *testing.T, survey *models.Survey, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		t:        t,
		survey:   survey,
		sessions: newMemSessions(),
		invites:  memInvites{},
		pulses:   memPulses{},
		notifier: &recordingNotifier{},
		key:      SessionKey{Token: testToken},
	}
	s := &models.ResponseSession{
		ID:        primitive.NewObjectID(),
		Token:     testToken,
		SurveyID:  survey.ID,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
	f.session = s.ID
	f.sessions.put(s)

	opts = append([]Option{
		WithClock(func() time.Time { return testNow }),
		WithNotifier(f.notifier),
	}, opts...)
	f.engine = NewEngine(f.sessions, memSurveys{survey.ID: survey}, f.invites, f.pulses, keyCatalog{}, opts...)
	return f
}

func (f *fixture) stored() *models.ResponseSession {
	return f.sessions.get(f.session)
}

func (f *fixture) update(fn func(s *models.ResponseSession)) {
	s := f.stored()
	fn(s)
	f.sessions.put(s)
}

func (f *fixture) put(answer map[string]any) (*models.AnswerPayload, error) {
	return f.engine.PutAnswers(context.Background(), f.key, Submission{Answer: answer})
}

func (f *fixture) mustPut(answer map[string]any) *models.AnswerPayload {
	f.t.Helper()
	p, err := f.put(answer)
	require.NoError(f.t, err)
	require.NotNil(f.t, p)
	return p
}

func (f *fixture) get() *models.AnswerPayload {
	f.t.Helper()
	p, err := f.engine.GetAnswers(context.Background(), f.key)
	require.NoError(f.t, err)
	return p
}

func (f *fixture) back() *models.AnswerPayload {
	f.t.Helper()
	p, err := f.engine.StepBack(context.Background(), f.key)
	require.NoError(f.t, err)
	return p
}

func shownIDs(p *models.AnswerPayload) []primitive.ObjectID {
	if p == nil || p.Survey == nil || p.Survey.SurveySection == nil {
		return nil
	}
	ids := make([]primitive.ObjectID, 0, len(p.Survey.SurveySection.SurveyItems))
	for _, it := range p.Survey.SurveySection.SurveyItems {
		ids = append(ids, it.ID)
	}
	return ids
}
