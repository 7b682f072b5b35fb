package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"mindgate/internal/modules/metadata/domain"
	metadataout "mindgate/internal/modules/metadata/port/out"
	"mindgate/internal/platform/fsatomic"
)

type storeFile struct {
	Version int                            `json:"version"`
	Records map[string]domain.ShieldRecord `json:"records"`
}

// FileRecordStore keeps the whole mapping in one JSON file under the state
// dir. Every write rewrites the file atomically; each key has exactly one
// writer (shield keys belong to the shield intercept, mirror keys to the
// registry), so last-writer-wins is safe.
type FileRecordStore struct {
	path string
}

func NewFileRecordStore(statePath string) metadataout.RecordStore {
	return &FileRecordStore{path: filepath.Join(statePath, "shield-metadata.json")}
}

func (s *FileRecordStore) Put(_ context.Context, key string, record domain.ShieldRecord) error {
	if key == "" {
		return fmt.Errorf("record key is required")
	}
	records, err := s.load()
	if err != nil {
		return err
	}
	records[key] = record
	payload, err := json.MarshalIndent(storeFile{Version: domain.SchemaVersion, Records: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode shield metadata: %w", err)
	}
	if err := fsatomic.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write shield metadata: %w", err)
	}
	return nil
}

func (s *FileRecordStore) Get(_ context.Context, key string) (domain.ShieldRecord, bool, error) {
	records, err := s.load()
	if err != nil {
		return domain.ShieldRecord{}, false, err
	}
	record, ok := records[key]
	return record, ok, nil
}

func (s *FileRecordStore) GetAll(_ context.Context) (map[string]domain.ShieldRecord, error) {
	return s.load()
}

// load treats a missing or undecodable file as an empty mapping: metadata is
// legitimately absent when the shield never ran for a target, and a corrupt
// store must not block any caller.
func (s *FileRecordStore) load() (map[string]domain.ShieldRecord, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]domain.ShieldRecord{}, nil
		}
		return nil, fmt.Errorf("read shield metadata: %w", err)
	}
	decoded := storeFile{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return map[string]domain.ShieldRecord{}, nil
	}
	if decoded.Records == nil {
		return map[string]domain.ShieldRecord{}, nil
	}
	return decoded.Records, nil
}
