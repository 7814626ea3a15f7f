package duration

import (
	"context"

	"github.com/columbia6/time/internal/domain/entity"
	coreport "github.com/columbia6/time/internal/domain/port/core"
	"github.com/columbia6/time/internal/domain/port/usecase"
)

// DurationUseCase implements duration formatting and parsing on top of the
// domain grammar
type DurationUseCase struct {
	logger coreport.Logger
}

// NewDurationUseCase creates a new duration use case instance
func NewDurationUseCase(logger coreport.Logger) usecase.DurationUseCase {
	return &DurationUseCase{logger: logger}
}

// FormatDuration renders a millisecond count as a compact duration string
func (u *DurationUseCase) FormatDuration(ctx context.Context, req usecase.FormatDurationRequest) (*usecase.FormatDurationResult, error) {
	result := entity.FormatDuration(req.Milliseconds)

	u.logger.Debug("Duration formatted", map[string]any{
		"milliseconds": req.Milliseconds,
		"result":       result,
	})

	return &usecase.FormatDurationResult{Result: result}, nil
}

// ParseDuration converts a duration string to milliseconds. In silent mode
// a parse failure yields a result with a nil value instead of an error.
func (u *DurationUseCase) ParseDuration(ctx context.Context, req usecase.ParseDurationRequest) (*usecase.ParseDurationResult, error) {
	ms, err := entity.ParseDuration(req.Input)
	if err != nil {
		if req.Silent {
			u.logger.Debug("Duration parse failed in silent mode", map[string]any{
				"input": req.Input,
			})
			return &usecase.ParseDurationResult{}, nil
		}
		u.logger.Warn("Duration parse failed", map[string]any{
			"input": req.Input,
			"error": err.Error(),
		})
		return nil, err
	}

	return &usecase.ParseDurationResult{Milliseconds: &ms}, nil
}
