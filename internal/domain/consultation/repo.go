package consultation

import "context"

// EncounterRepository provides the encounters of one export.
type EncounterRepository interface {
	List(ctx context.Context) ([]Encounter, error)
	Source() string
}
