package out

import (
	"fmt"
	"math/rand"

	"mindgate/internal/modules/intention/domain"
	intentionout "mindgate/internal/modules/intention/port/out"
)

// RandomPicker honors an assigned intention when one exists and otherwise
// chooses uniformly from the catalog.
type RandomPicker struct {
	rng *rand.Rand
}

func NewRandomPicker(seed int64) intentionout.Picker {
	return &RandomPicker{rng: rand.New(rand.NewSource(seed))}
}

func (p *RandomPicker) Pick(catalog []domain.Intention, assignedID string) (domain.Intention, error) {
	if assignedID != "" {
		for _, intent := range catalog {
			if intent.ID == assignedID {
				return intent, nil
			}
		}
		// Assigned intention no longer in the catalog: cross-consistency is
		// a read-time concern, fall through to a random choice.
	}
	if len(catalog) == 0 {
		return domain.Intention{}, fmt.Errorf("empty intention catalog")
	}
	return catalog[p.rng.Intn(len(catalog))], nil
}
