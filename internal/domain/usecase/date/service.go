package date

import (
	"context"
	"fmt"
	"time"

	"github.com/columbia6/time/internal/domain/entity"
	errs "github.com/columbia6/time/internal/domain/error"
	coreport "github.com/columbia6/time/internal/domain/port/core"
	"github.com/columbia6/time/internal/domain/port/usecase"
)

// DateUseCase implements calendar date formatting and parsing on top of the
// domain pattern engine
type DateUseCase struct {
	logger coreport.Logger
}

// NewDateUseCase creates a new date use case instance
func NewDateUseCase(logger coreport.Logger) usecase.DateUseCase {
	return &DateUseCase{logger: logger}
}

// FormatDate renders a moment according to a pattern string. The moment may
// arrive as calendar fields or as a Unix millisecond timestamp; an empty
// pattern selects the default pattern.
func (u *DateUseCase) FormatDate(ctx context.Context, req usecase.FormatDateRequest) (*usecase.FormatDateResult, error) {
	var m entity.Moment
	switch {
	case req.Moment != nil:
		f := req.Moment
		m = entity.NewMoment(f.Year, time.Month(f.Month), f.Day, f.Hour, f.Minute, f.Second, f.Millisecond)
	case req.UnixMillis != nil:
		m = entity.MomentFromUnixMilli(*req.UnixMillis)
	default:
		return nil, fmt.Errorf("%w: moment or unixMillis required", errs.ErrInvalidRequest)
	}

	pattern := req.Pattern
	if pattern == "" {
		pattern = entity.DefaultDateFormat
	}
	result := entity.FormatDate(m, pattern)

	u.logger.Debug("Date formatted", map[string]any{
		"pattern": pattern,
		"result":  result,
	})

	return &usecase.FormatDateResult{Result: result}, nil
}

// ParseDate parses a date string against a pattern. In silent mode any
// parse failure, format mismatch and calendar overflow alike, yields a
// result with a nil moment instead of an error.
func (u *DateUseCase) ParseDate(ctx context.Context, req usecase.ParseDateRequest) (*usecase.ParseDateResult, error) {
	m, err := entity.ParseDate(req.Input, req.Pattern)
	if err != nil {
		if req.Silent {
			u.logger.Debug("Date parse failed in silent mode", map[string]any{
				"input": req.Input,
			})
			return &usecase.ParseDateResult{}, nil
		}
		u.logger.Warn("Date parse failed", map[string]any{
			"input":   req.Input,
			"pattern": req.Pattern,
			"error":   err.Error(),
		})
		return nil, err
	}

	fields := &usecase.MomentFields{
		Year:        m.Year(),
		Month:       int(m.Month()),
		Day:         m.Day(),
		Hour:        m.Hour(),
		Minute:      m.Minute(),
		Second:      m.Second(),
		Millisecond: m.Millisecond(),
	}
	unix := m.UnixMilli()

	return &usecase.ParseDateResult{Moment: fields, UnixMillis: &unix}, nil
}
