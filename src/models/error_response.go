package models

// ErrorResponse is the body of every non-validation error.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// ValidationErrorResponse maps item ids to a message, or for grids to a row id -> message map.
type ValidationErrorResponse struct {
	Errors map[string]any `json:"errors"`
}
