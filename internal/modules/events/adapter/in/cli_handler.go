package in

import (
	"context"

	"mindgate/internal/modules/events/dto"
	eventsin "mindgate/internal/modules/events/port/in"
)

type CLIHandler struct {
	usecase eventsin.Usecase
}

func NewCLIHandler(usecase eventsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Tail(ctx context.Context, limit int) ([]dto.EventOutput, error) {
	return h.usecase.Tail(ctx, limit)
}
