package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"mindgate/internal/modules/restriction/domain"
	restrictionout "mindgate/internal/modules/restriction/port/out"
	"mindgate/internal/platform/fsatomic"
)

type targetFile struct {
	Version int                      `json:"version"`
	Targets map[string]domain.Target `json:"targets"`
}

type FileTargetStore struct {
	path string
}

func NewFileTargetStore(statePath string) restrictionout.TargetStore {
	return &FileTargetStore{path: filepath.Join(statePath, "restrictions.json")}
}

func (s *FileTargetStore) Load(_ context.Context) (map[string]domain.Target, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]domain.Target{}, nil
		}
		return nil, fmt.Errorf("read restrictions: %w", err)
	}
	decoded := targetFile{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode restrictions: %w", err)
	}
	if decoded.Targets == nil {
		return map[string]domain.Target{}, nil
	}
	return decoded.Targets, nil
}

func (s *FileTargetStore) Save(_ context.Context, targets map[string]domain.Target) error {
	payload, err := json.MarshalIndent(targetFile{Version: domain.SchemaVersion, Targets: targets}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode restrictions: %w", err)
	}
	if err := fsatomic.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write restrictions: %w", err)
	}
	return nil
}
