package in

import (
	"context"

	"mindgate/internal/modules/intercept/dto"
	interceptin "mindgate/internal/modules/intercept/port/in"
)

type CLIHandler struct {
	usecase interceptin.Usecase
}

func NewCLIHandler(usecase interceptin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Shield(ctx context.Context, kind string, token []byte, displayName string) (dto.DirectiveOutput, error) {
	return h.usecase.Shield(ctx, dto.ShieldInput{
		Kind:        kind,
		Token:       token,
		DisplayName: displayName,
	})
}

func (h CLIHandler) Action(ctx context.Context, targetID, button string) (string, error) {
	return h.usecase.Action(ctx, targetID, button)
}
