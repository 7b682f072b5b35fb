package usecase

import (
	"context"
	"fmt"

	"mindgate/internal/modules/intention/domain"
	"mindgate/internal/modules/intention/dto"
	intentionin "mindgate/internal/modules/intention/port/in"
	intentionout "mindgate/internal/modules/intention/port/out"
	apperrors "mindgate/internal/platform/errors"
)

type Interactor struct {
	store  intentionout.CatalogStore
	picker intentionout.Picker
}

func NewInteractor(store intentionout.CatalogStore, picker intentionout.Picker) intentionin.Usecase {
	return &Interactor{store: store, picker: picker}
}

func (i *Interactor) List(ctx context.Context) ([]dto.IntentionOutput, error) {
	catalog, err := i.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	outputs := make([]dto.IntentionOutput, 0, len(catalog))
	for _, intent := range catalog {
		outputs = append(outputs, toOutput(intent))
	}
	return outputs, nil
}

func (i *Interactor) Get(ctx context.Context, intentionID string) (dto.IntentionOutput, error) {
	catalog, err := i.store.Load(ctx)
	if err != nil {
		return dto.IntentionOutput{}, err
	}
	for _, intent := range catalog {
		if intent.ID == intentionID {
			return toOutput(intent), nil
		}
	}
	return dto.IntentionOutput{}, fmt.Errorf("intention %s: %w", intentionID, apperrors.ErrNotFound)
}

func (i *Interactor) Pick(ctx context.Context, assignedID string) (dto.IntentionOutput, error) {
	catalog, err := i.store.Load(ctx)
	if err != nil {
		return dto.IntentionOutput{}, err
	}
	if len(catalog) == 0 {
		return dto.IntentionOutput{}, fmt.Errorf("intention catalog is empty: %w", apperrors.ErrNotFound)
	}
	picked, err := i.picker.Pick(catalog, assignedID)
	if err != nil {
		return dto.IntentionOutput{}, err
	}
	return toOutput(picked), nil
}

func toOutput(intent domain.Intention) dto.IntentionOutput {
	return dto.IntentionOutput{
		ID:       intent.ID,
		Title:    intent.Title,
		Prompt:   intent.Prompt,
		Kind:     string(intent.Kind),
		Duration: intent.Duration,
	}
}
