package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"mindgate/internal/modules/schedule/domain"
	scheduleout "mindgate/internal/modules/schedule/port/out"
	"mindgate/internal/platform/fsatomic"
)

type scheduleFile struct {
	Version   int               `json:"version"`
	Schedules []domain.Schedule `json:"schedules"`
}

type FileScheduleStore struct {
	path string
}

func NewFileScheduleStore(statePath string) scheduleout.ScheduleStore {
	return &FileScheduleStore{path: filepath.Join(statePath, "schedules.json")}
}

func (s *FileScheduleStore) Load(_ context.Context) ([]domain.Schedule, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Schedule{}, nil
		}
		return nil, fmt.Errorf("read schedules: %w", err)
	}
	decoded := scheduleFile{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode schedules: %w", err)
	}
	return decoded.Schedules, nil
}

func (s *FileScheduleStore) Save(_ context.Context, schedules []domain.Schedule) error {
	payload, err := json.MarshalIndent(scheduleFile{Version: domain.SchemaVersion, Schedules: schedules}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode schedules: %w", err)
	}
	if err := fsatomic.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write schedules: %w", err)
	}
	return nil
}
