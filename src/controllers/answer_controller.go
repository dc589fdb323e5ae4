package controllers

import (
	"context"
	"errors"

	"Backend-Survey-Engine/src/logger"
	"Backend-Survey-Engine/src/metrics"
	"Backend-Survey-Engine/src/models"
	"Backend-Survey-Engine/src/services/locks"
	"Backend-Survey-Engine/src/services/traversal"
	"Backend-Survey-Engine/src/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AnswerService is the traversal engine as seen by the HTTP layer.
type AnswerService interface {
	GetAnswers(ctx context.Context, key traversal.SessionKey) (*models.AnswerPayload, error)
	PutAnswers(ctx context.Context, key traversal.SessionKey, sub traversal.Submission) (*models.AnswerPayload, error)
	StepBack(ctx context.Context, key traversal.SessionKey) (*models.AnswerPayload, error)
}

type AnswerController struct {
	svc      AnswerService
	validate *validator.Validate
}

func NewAnswerController(svc AnswerService) *AnswerController {
	return &AnswerController{svc: svc, validate: validator.New()}
}

// PutAnswersDto is the body of PUT answers.
type PutAnswersDto struct {
	Answer map[string]any `json:"answer"`
	Assets []models.Asset `json:"assets,omitempty" validate:"omitempty,dive"`
	Device *models.Device `json:"device,omitempty"`
}

// GetAnswers godoc
// @Summary      Current step of a response session
// @Description  Returns the unit the respondent is on, or a lifecycle message (expired, not started, completed)
// @Tags         answers
// @Produce      json
// @Param        token path string true "Invite token"
// @Success      200  {object}  models.AnswerPayload
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /answers/{token} [get]
func (ac *AnswerController) GetAnswers(c *fiber.Ctx) error {
	key := sessionKey(c)
	payload, err := ac.svc.GetAnswers(c.UserContext(), key)
	if err != nil {
		_, sendErr := respondError(c, "GetAnswers", err)
		return sendErr
	}
	return c.Status(fiber.StatusOK).JSON(payload)
}

// GetAnswersByFingerprint godoc
// @Summary      Current step of a public response session
// @Tags         answers
// @Produce      json
// @Param        fingerprintId path string true "Browser fingerprint"
// @Param        surveyId path string true "Survey ID"
// @Success      200  {object}  models.AnswerPayload
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /answers/fingerprint/{fingerprintId}/{surveyId} [get]
func (ac *AnswerController) GetAnswersByFingerprint(c *fiber.Ctx) error {
	return ac.GetAnswers(c)
}

// PutAnswers godoc
// @Summary      Submit answers for the current step
// @Description  Validates and stores the answers, evaluates flow and display rules, and returns the next step or the end page
// @Tags         answers
// @Accept       json
// @Produce      json
// @Param        token path string true "Invite token"
// @Param        body body PutAnswersDto true "Answers keyed by survey item id"
// @Success      200  {object}  models.AnswerPayload
// @Failure      400  {object}  models.ValidationErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Failure      422  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /answers/{token} [put]
func (ac *AnswerController) PutAnswers(c *fiber.Ctx) error {
	var body PutAnswersDto
	if err := c.BodyParser(&body); err != nil {
		metrics.Submissions.WithLabelValues("bad_request").Inc()
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := ac.validate.Struct(body); err != nil {
		metrics.Submissions.WithLabelValues("bad_request").Inc()
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	// no answer key advances a step made of optional or contents items
	if body.Answer == nil {
		body.Answer = map[string]any{}
	}
	sub := traversal.Submission{Answer: body.Answer, Assets: body.Assets, Device: body.Device}
	if sub.Device != nil && sub.Device.UserAgent == "" {
		sub.Device.UserAgent = c.Get(fiber.HeaderUserAgent)
	}

	payload, err := ac.svc.PutAnswers(c.UserContext(), sessionKey(c), sub)
	if err != nil {
		outcome, sendErr := respondError(c, "PutAnswers", err)
		metrics.Submissions.WithLabelValues(outcome).Inc()
		return sendErr
	}

	metrics.Submissions.WithLabelValues(submissionOutcome(payload)).Inc()
	return c.Status(fiber.StatusOK).JSON(payload)
}

// PutAnswersByFingerprint godoc
// @Summary      Submit answers for a public response session
// @Tags         answers
// @Accept       json
// @Produce      json
// @Param        fingerprintId path string true "Browser fingerprint"
// @Param        surveyId path string true "Survey ID"
// @Param        body body PutAnswersDto true "Answers keyed by survey item id"
// @Success      200  {object}  models.AnswerPayload
// @Failure      400  {object}  models.ValidationErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Failure      422  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /answers/fingerprint/{fingerprintId}/{surveyId} [put]
func (ac *AnswerController) PutAnswersByFingerprint(c *fiber.Ctx) error {
	return ac.PutAnswers(c)
}

// StepBack godoc
// @Summary      Go back one step
// @Description  Re-presents the previous step when the survey allows it, otherwise answers with a message
// @Tags         answers
// @Produce      json
// @Param        token path string true "Invite token"
// @Success      200  {object}  models.AnswerPayload
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /answers/{token}/stepBack [get]
func (ac *AnswerController) StepBack(c *fiber.Ctx) error {
	payload, err := ac.svc.StepBack(c.UserContext(), sessionKey(c))
	if err != nil {
		_, sendErr := respondError(c, "StepBack", err)
		return sendErr
	}
	return c.Status(fiber.StatusOK).JSON(payload)
}

// StepBackByFingerprint godoc
// @Summary      Go back one step in a public response session
// @Tags         answers
// @Produce      json
// @Param        fingerprintId path string true "Browser fingerprint"
// @Param        surveyId path string true "Survey ID"
// @Success      200  {object}  models.AnswerPayload
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /answers/fingerprint/{fingerprintId}/{surveyId}/stepBack [get]
func (ac *AnswerController) StepBackByFingerprint(c *fiber.Ctx) error {
	return ac.StepBack(c)
}

func sessionKey(c *fiber.Ctx) traversal.SessionKey {
	return traversal.SessionKey{
		Token:         c.Params("token"),
		FingerprintID: c.Params("fingerprintId"),
		SurveyID:      c.Params("surveyId"),
	}
}

func submissionOutcome(p *models.AnswerPayload) string {
	switch {
	case p.Completed:
		return "completed"
	case p.Message != "":
		return "message"
	default:
		return "advanced"
	}
}

// respondError writes the HTTP error for err and returns the metrics outcome label.
func respondError(c *fiber.Ctx, op string, err error) (string, error) {
	var verr *traversal.ValidationError
	switch {
	case errors.As(err, &verr):
		return "invalid", utils.HandleValidationErrors(c, verr.Errors)
	case errors.Is(err, traversal.ErrBadRequest):
		return "bad_request", utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, traversal.ErrNotFound):
		return "not_found", utils.HandleError(c, fiber.StatusNotFound, "Response session not found")
	case errors.Is(err, traversal.ErrUnprocessableAnswer):
		return "unprocessable", utils.HandleError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, traversal.ErrConcurrentUpdate), errors.Is(err, locks.ErrNotAcquired):
		logger.With("requestId", c.Locals("requestId")).Warnf("⚠️ [%s] %v", op, err)
		return "conflict", utils.HandleError(c, fiber.StatusConflict, "Response is being updated, try again")
	default:
		logger.With("requestId", c.Locals("requestId")).Errorf("❌ [%s] %v", op, err)
		return "error", utils.HandleError(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
