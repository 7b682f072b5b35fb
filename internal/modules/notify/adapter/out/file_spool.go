package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mindgate/internal/modules/notify/domain"
	notifyout "mindgate/internal/modules/notify/port/out"
	"mindgate/internal/platform/fsatomic"
)

// FileSpool writes one JSON file per pending request under
// <state>/notifications/. The platform notification surface consumes and
// deletes files; cancel removes them by identifier before delivery.
type FileSpool struct {
	dir string
}

func NewFileSpool(statePath string) notifyout.Spool {
	return &FileSpool{dir: filepath.Join(statePath, "notifications")}
}

func (s *FileSpool) Save(_ context.Context, request domain.Request) error {
	payload, err := json.MarshalIndent(request, "", "  ")
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	if err := fsatomic.WriteFile(s.requestPath(request.ID), payload, 0o644); err != nil {
		return fmt.Errorf("spool notification: %w", err)
	}
	return nil
}

func (s *FileSpool) Remove(_ context.Context, requestID string) error {
	if err := os.Remove(s.requestPath(requestID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("cancel notification: %w", err)
	}
	return nil
}

func (s *FileSpool) List(_ context.Context) ([]domain.Request, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Request{}, nil
		}
		return nil, fmt.Errorf("read notification spool: %w", err)
	}
	pending := make([]domain.Request, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}
		request := domain.Request{}
		if err := json.Unmarshal(raw, &request); err != nil || request.ID == "" {
			continue
		}
		pending = append(pending, request)
	}
	sort.Slice(pending, func(a, b int) bool { return pending[a].DeliverAt.Before(pending[b].DeliverAt) })
	return pending, nil
}

func (s *FileSpool) Authorized(_ context.Context) (bool, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *FileSpool) requestPath(requestID string) string {
	return filepath.Join(s.dir, requestID+".json")
}
