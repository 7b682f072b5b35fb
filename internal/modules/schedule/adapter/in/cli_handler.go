package in

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"mindgate/internal/modules/schedule/dto"
	schedulein "mindgate/internal/modules/schedule/port/in"
	apperrors "mindgate/internal/platform/errors"
)

type CLIHandler struct {
	usecase schedulein.Usecase
}

func NewCLIHandler(usecase schedulein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, name string, rangeSpecs []string, days []int, validFrom, validUntil *time.Time) (dto.ScheduleOutput, error) {
	ranges := make([]dto.RangeInput, 0, len(rangeSpecs))
	for _, spec := range rangeSpecs {
		r, err := parseRange(spec)
		if err != nil {
			return dto.ScheduleOutput{}, err
		}
		ranges = append(ranges, r)
	}
	return h.usecase.Add(ctx, dto.AddInput{
		Name:       name,
		Ranges:     ranges,
		Days:       days,
		ValidFrom:  validFrom,
		ValidUntil: validUntil,
	})
}

func (h CLIHandler) SetEnabled(ctx context.Context, scheduleID string, enabled bool) (dto.ScheduleOutput, error) {
	return h.usecase.SetEnabled(ctx, scheduleID, enabled)
}

func (h CLIHandler) Remove(ctx context.Context, scheduleID string) error {
	return h.usecase.Remove(ctx, scheduleID)
}

func (h CLIHandler) List(ctx context.Context) ([]dto.ScheduleOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx, time.Now())
}

// parseRange accepts "HH:MM-HH:MM"; start past end wraps midnight.
func parseRange(spec string) (dto.RangeInput, error) {
	parts := strings.Split(spec, "-")
	if len(parts) != 2 {
		return dto.RangeInput{}, fmt.Errorf("%w: range must be HH:MM-HH:MM, got %q", apperrors.ErrInvalidInput, spec)
	}
	start, err := parseMinute(parts[0])
	if err != nil {
		return dto.RangeInput{}, err
	}
	end, err := parseMinute(parts[1])
	if err != nil {
		return dto.RangeInput{}, err
	}
	return dto.RangeInput{StartMinute: start, EndMinute: end}, nil
}

func parseMinute(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: time must be HH:MM, got %q", apperrors.ErrInvalidInput, s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: bad hour in %q", apperrors.ErrInvalidInput, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: bad minute in %q", apperrors.ErrInvalidInput, s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: time out of range: %q", apperrors.ErrInvalidInput, s)
	}
	return hour*60 + minute, nil
}
