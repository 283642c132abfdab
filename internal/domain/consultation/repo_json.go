package consultation

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// =========== JSON Export Repository ===========

type encounterRepoJSON struct{ path string }

// NewEncounterRepoJSON reads encounters from a JSON export file holding a
// top-level array of encounter objects.
func NewEncounterRepoJSON(path string) EncounterRepository {
	return &encounterRepoJSON{path: path}
}

func (r *encounterRepoJSON) Source() string { return r.path }

func (r *encounterRepoJSON) List(ctx context.Context) ([]Encounter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open export: %w", err)
	}
	defer f.Close()

	var encounters []Encounter
	dec := json.NewDecoder(bufio.NewReaderSize(f, 256*1024))
	if err := dec.Decode(&encounters); err != nil {
		return nil, fmt.Errorf("decode export %s: %w", r.path, err)
	}
	if encounters == nil {
		encounters = []Encounter{}
	}
	return encounters, nil
}
