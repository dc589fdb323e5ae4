package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Submissions counts PUT answers calls by outcome
	// (advanced, completed, invalid, unprocessable, bad_request, message, conflict, error).
	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "survey_answer_submissions_total",
		Help: "Answer submissions by outcome",
	}, []string{"outcome"})

	// Completions counts sessions reaching completed, by survey type.
	Completions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "survey_sessions_completed_total",
		Help: "Response sessions completed by survey type",
	}, []string{"survey_type"})

	// StepBacks counts step-back requests by result (moved, refused).
	StepBacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "survey_step_backs_total",
		Help: "Step back requests by result",
	}, []string{"result"})

	// VersionConflicts counts optimistic write conflicts that forced a re-run.
	VersionConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "survey_session_version_conflicts_total",
		Help: "Optimistic session write conflicts",
	})

	// CompletionTasks counts responses:completed tasks processed by the worker.
	CompletionTasks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "survey_completion_tasks_processed_total",
		Help: "Completion tasks handled by the worker",
	})
)
