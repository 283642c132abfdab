package consultation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

type Service struct {
	encounters EncounterRepository
	logger     zerolog.Logger
}

func NewService(encounters EncounterRepository, logger zerolog.Logger) *Service {
	return &Service{encounters: encounters, logger: logger}
}

// Source names where the encounters come from.
func (s *Service) Source() string {
	return s.encounters.Source()
}

// Load reads the export and builds the flattened dataset.
func (s *Service) Load(ctx context.Context) (*Dataset, error) {
	encounters, err := s.encounters.List(ctx)
	if err != nil {
		return nil, err
	}
	ds, err := NewDataset(encounters)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.encounters.Source(), err)
	}
	s.logger.Info().
		Str("source", s.encounters.Source()).
		Int("encounters", len(ds.Encounters)).
		Int("rows", len(ds.Rows)).
		Msg("export loaded")
	return ds, nil
}
