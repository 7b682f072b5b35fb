package out

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"mindgate/internal/modules/intention/domain"
	intentionout "mindgate/internal/modules/intention/port/out"
	"mindgate/internal/platform/fsatomic"
)

type catalogEntry struct {
	ID              string `yaml:"id"`
	Title           string `yaml:"title"`
	Prompt          string `yaml:"prompt"`
	Kind            string `yaml:"kind"`
	DurationSeconds int    `yaml:"duration_seconds"`
}

type catalogFile struct {
	Intentions []catalogEntry `yaml:"intentions"`
}

// YAMLCatalogStore reads the intention catalog from <home>/intentions.yaml,
// seeding a starter catalog on first use so the shield always has something
// to offer.
type YAMLCatalogStore struct {
	path string
}

func NewYAMLCatalogStore(catalogPath string) intentionout.CatalogStore {
	return &YAMLCatalogStore{path: catalogPath}
}

func (s *YAMLCatalogStore) Load(_ context.Context) ([]domain.Intention, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		if err := s.seed(); err != nil {
			return nil, err
		}
		raw, err = os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("read seeded catalog: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("read intention catalog: %w", err)
	}

	decoded := catalogFile{}
	if err := yaml.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode intention catalog: %w", err)
	}
	catalog := make([]domain.Intention, 0, len(decoded.Intentions))
	for _, e := range decoded.Intentions {
		if e.ID == "" {
			continue
		}
		duration := time.Duration(e.DurationSeconds) * time.Second
		if duration <= 0 {
			duration = 60 * time.Second
		}
		catalog = append(catalog, domain.Intention{
			ID:       e.ID,
			Title:    e.Title,
			Prompt:   e.Prompt,
			Kind:     domain.Kind(e.Kind),
			Duration: duration,
		})
	}
	return catalog, nil
}

func (s *YAMLCatalogStore) seed() error {
	seed := catalogFile{Intentions: []catalogEntry{
		{ID: "breathe", Title: "Slow breathing", Prompt: "Take ten slow breaths before deciding.", Kind: string(domain.KindBreathing), DurationSeconds: 60},
		{ID: "reflect", Title: "Why now?", Prompt: "What are you hoping to find when it opens?", Kind: string(domain.KindReflection), DurationSeconds: 90},
		{ID: "gratitude", Title: "Three good things", Prompt: "Name three things that went well today.", Kind: string(domain.KindGratitude), DurationSeconds: 120},
	}}
	payload, err := yaml.Marshal(seed)
	if err != nil {
		return fmt.Errorf("encode seed catalog: %w", err)
	}
	if err := fsatomic.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write seed catalog: %w", err)
	}
	return nil
}
