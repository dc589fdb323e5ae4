package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Backend-Survey-Engine/src/models"
	"Backend-Survey-Engine/src/services/locks"
	"Backend-Survey-Engine/src/services/traversal"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAnswers struct {
	payload *models.AnswerPayload
	err     error

	lastKey traversal.SessionKey
	lastSub traversal.Submission
}

func (s *stubAnswers) GetAnswers(_ context.Context, key traversal.SessionKey) (*models.AnswerPayload, error) {
	s.lastKey = key
	return s.payload, s.err
}

func (s *stubAnswers) PutAnswers(_ context.Context, key traversal.SessionKey, sub traversal.Submission) (*models.AnswerPayload, error) {
	s.lastKey = key
	s.lastSub = sub
	return s.payload, s.err
}

func (s *stubAnswers) StepBack(_ context.Context, key traversal.SessionKey) (*models.AnswerPayload, error) {
	s.lastKey = key
	return s.payload, s.err
}

func newAnswerApp(svc AnswerService) *fiber.App {
	ctrl := NewAnswerController(svc)
	app := fiber.New()
	app.Get("/answers/fingerprint/:fingerprintId/:surveyId", ctrl.GetAnswersByFingerprint)
	app.Put("/answers/fingerprint/:fingerprintId/:surveyId", ctrl.PutAnswersByFingerprint)
	app.Get("/answers/:token", ctrl.GetAnswers)
	app.Put("/answers/:token", ctrl.PutAnswers)
	app.Get("/answers/:token/stepBack", ctrl.StepBack)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Mobile")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestGetAnswersByToken(t *testing.T) {
	svc := &stubAnswers{payload: &models.AnswerPayload{Message: "survey.expired", IsExpired: true}}
	status, body := do(t, newAnswerApp(svc), http.MethodGet, "/answers/tok-1", "")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "survey.expired", body["message"])
	assert.Equal(t, traversal.SessionKey{Token: "tok-1"}, svc.lastKey)
}

func TestGetAnswersByFingerprint(t *testing.T) {
	svc := &stubAnswers{payload: &models.AnswerPayload{}}
	status, _ := do(t, newAnswerApp(svc), http.MethodGet, "/answers/fingerprint/fp-9/65f000000000000000000001", "")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, traversal.SessionKey{FingerprintID: "fp-9", SurveyID: "65f000000000000000000001"}, svc.lastKey)
}

func TestPutAnswersPassesSubmission(t *testing.T) {
	svc := &stubAnswers{payload: &models.AnswerPayload{Completed: true}}
	body := `{
		"answer": {"item-1": "hello", "item-2": ["a", "b"], "item-3": 4},
		"assets": [{"surveyItem": "item-1", "url": "https://cdn.example.com/a.png"}],
		"device": {"os": "iOS"}
	}`
	status, out := do(t, newAnswerApp(svc), http.MethodPut, "/answers/tok-1", body)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, out["completed"])
	assert.Equal(t, "hello", svc.lastSub.Answer["item-1"])
	assert.Equal(t, 4.0, svc.lastSub.Answer["item-3"])
	require.Len(t, svc.lastSub.Assets, 1)
	require.NotNil(t, svc.lastSub.Device)
	assert.Contains(t, svc.lastSub.Device.UserAgent, "iPhone")
}

func TestPutAnswersRejectsBadBody(t *testing.T) {
	svc := &stubAnswers{payload: &models.AnswerPayload{}}
	app := newAnswerApp(svc)

	cases := map[string]string{
		"not json":      `{`,
		"bad asset url": `{"answer": {}, "assets": [{"surveyItem": "x", "url": "nope"}]}`,
		"bad device":    `{"answer": {}, "device": {"type": "watch"}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			status, out := do(t, app, http.MethodPut, "/answers/tok-1", body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, float64(http.StatusBadRequest), out["status"])
		})
	}
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", fmt.Errorf("response session: %w", traversal.ErrNotFound), http.StatusNotFound},
		{"bad request", fmt.Errorf("%w: item x: want a string", traversal.ErrBadRequest), http.StatusBadRequest},
		{"unprocessable", traversal.ErrUnprocessableAnswer, http.StatusUnprocessableEntity},
		{"concurrent", traversal.ErrConcurrentUpdate, http.StatusConflict},
		{"lock", fmt.Errorf("lock: %w", locks.ErrNotAcquired), http.StatusConflict},
		{"malformed rule", fmt.Errorf("%w: bad regexp", traversal.ErrMalformedRule), http.StatusInternalServerError},
		{"store down", errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newAnswerApp(&stubAnswers{err: tc.err})
			status, body := do(t, app, http.MethodPut, "/answers/tok-1", `{"answer": {}}`)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, float64(tc.status), body["status"])

			status, _ = do(t, app, http.MethodGet, "/answers/tok-1/stepBack", "")
			assert.Equal(t, tc.status, status)
		})
	}
}

func TestValidationErrorsAreStructured(t *testing.T) {
	verr := &traversal.ValidationError{Errors: map[string]any{
		"item-1": "required",
		"grid-1": map[string]string{"row-1": "required"},
	}}
	status, body := do(t, newAnswerApp(&stubAnswers{err: verr}), http.MethodPut, "/answers/tok-1", `{"answer": {}}`)

	assert.Equal(t, http.StatusBadRequest, status)
	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "required", errs["item-1"])
	assert.Equal(t, map[string]any{"row-1": "required"}, errs["grid-1"])
}

func TestPutAnswersWithoutAnswerKeyAdvances(t *testing.T) {
	svc := &stubAnswers{payload: &models.AnswerPayload{}}
	status, _ := do(t, newAnswerApp(svc), http.MethodPut, "/answers/tok-1", `{}`)

	assert.Equal(t, http.StatusOK, status)
	assert.NotNil(t, svc.lastSub.Answer)
	assert.Empty(t, svc.lastSub.Answer)
}
