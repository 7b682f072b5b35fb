package in

import (
	"context"

	"mindgate/internal/modules/restriction/dto"
	restrictionin "mindgate/internal/modules/restriction/port/in"
)

type CLIHandler struct {
	usecase restrictionin.Usecase
}

func NewCLIHandler(usecase restrictionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Select replaces the whole selection; specs are kind:token[:name] triples
// already split by the command layer.
func (h CLIHandler) Select(ctx context.Context, targets []dto.TargetInput) ([]dto.TargetOutput, error) {
	return h.usecase.SetSelection(ctx, targets)
}

func (h CLIHandler) AssignIntention(ctx context.Context, targetID, intentionID string) (dto.TargetOutput, error) {
	return h.usecase.AssignIntention(ctx, targetID, intentionID)
}

func (h CLIHandler) SetEnabled(ctx context.Context, targetID string, enabled bool) (dto.TargetOutput, error) {
	return h.usecase.SetEnabled(ctx, targetID, enabled)
}

func (h CLIHandler) Apply(ctx context.Context) error {
	return h.usecase.Apply(ctx)
}

func (h CLIHandler) Clear(ctx context.Context) error {
	return h.usecase.Clear(ctx)
}

func (h CLIHandler) List(ctx context.Context) ([]dto.TargetOutput, error) {
	return h.usecase.List(ctx)
}
