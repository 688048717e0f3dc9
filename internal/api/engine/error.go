package engine

import "UnicornGolang/pkg/response"

var (
	ErrInvalidEvaluationTime = response.NewError(400, "evaluation_time must be RFC3339")
	ErrInvalidHourWindow     = response.NewError(400, "hours_start and hours_end must be set together")
)
