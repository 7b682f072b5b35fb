package in

import (
	"context"

	"mindgate/internal/modules/intention/dto"
	intentionin "mindgate/internal/modules/intention/port/in"
)

type CLIHandler struct {
	usecase intentionin.Usecase
}

func NewCLIHandler(usecase intentionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.IntentionOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Get(ctx context.Context, intentionID string) (dto.IntentionOutput, error) {
	return h.usecase.Get(ctx, intentionID)
}
