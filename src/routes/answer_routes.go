package routes

import (
	"Backend-Survey-Engine/src/controllers"

	"github.com/gofiber/fiber/v2"
)

func answerRoutes(router fiber.Router, ctrl *controllers.AnswerController) {
	answers := router.Group("/answers")

	// public entry points, keyed by browser fingerprint
	answers.Get("/fingerprint/:fingerprintId/:surveyId", ctrl.GetAnswersByFingerprint)
	answers.Put("/fingerprint/:fingerprintId/:surveyId", ctrl.PutAnswersByFingerprint)
	answers.Get("/fingerprint/:fingerprintId/:surveyId/stepBack", ctrl.StepBackByFingerprint)

	// invite token
	answers.Get("/:token", ctrl.GetAnswers)
	answers.Put("/:token", ctrl.PutAnswers)
	answers.Get("/:token/stepBack", ctrl.StepBack)
}
