package service

import (
	"context"
	"fmt"
	"sort"

	"mindgate/internal/modules/restriction/domain"
	restrictionout "mindgate/internal/modules/restriction/port/out"
	apperrors "mindgate/internal/platform/errors"
)

// RegistryService owns the target set. Uniqueness is enforced here by keying
// everything on the derived target identifier, not by storage.
type RegistryService struct {
	store restrictionout.TargetStore
}

func NewRegistryService(store restrictionout.TargetStore) *RegistryService {
	return &RegistryService{store: store}
}

func (s *RegistryService) ReplaceSelection(ctx context.Context, incoming []domain.Target) ([]domain.Target, error) {
	current, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	next := make(map[string]domain.Target, len(incoming))
	for _, t := range incoming {
		if !t.Kind.Valid() {
			return nil, fmt.Errorf("%w: unknown target kind %q", apperrors.ErrInvalidInput, t.Kind)
		}
		if len(t.Token) == 0 {
			return nil, fmt.Errorf("%w: target token is required", apperrors.ErrInvalidInput)
		}
		id := t.ID()
		t.Enabled = true
		// Bulk selection replaces the set, not per-target settings.
		if prev, ok := current[id]; ok {
			t.Enabled = prev.Enabled
			t.IntentionID = prev.IntentionID
			if t.DisplayName == "" {
				t.DisplayName = prev.DisplayName
			}
		}
		next[id] = t
	}
	if err := s.store.Save(ctx, next); err != nil {
		return nil, err
	}
	return sorted(next), nil
}

func (s *RegistryService) Update(ctx context.Context, targetID string, mutate func(*domain.Target)) (domain.Target, error) {
	targets, err := s.store.Load(ctx)
	if err != nil {
		return domain.Target{}, err
	}
	target, ok := targets[targetID]
	if !ok {
		return domain.Target{}, fmt.Errorf("target %s: %w", targetID, apperrors.ErrNotFound)
	}
	mutate(&target)
	targets[targetID] = target
	if err := s.store.Save(ctx, targets); err != nil {
		return domain.Target{}, err
	}
	return target, nil
}

func (s *RegistryService) List(ctx context.Context) ([]domain.Target, error) {
	targets, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return sorted(targets), nil
}

func (s *RegistryService) Clear(ctx context.Context) error {
	return s.store.Save(ctx, map[string]domain.Target{})
}

// sorted gives callers a stable order so repeated Apply calls hand the
// enforcer identical input.
func sorted(targets map[string]domain.Target) []domain.Target {
	out := make([]domain.Target, 0, len(targets))
	for _, t := range targets {
		out = append(out, t)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID() < out[b].ID() })
	return out
}
