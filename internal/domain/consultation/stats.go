package consultation

import (
	"fmt"
	"strings"

	"github.com/ehr/consultreport/internal/platform/analytics"
)

// Dataset is the loaded export together with its flattened view.
type Dataset struct {
	Encounters []Encounter
	Rows       []Row
}

// NewDataset validates the encounters and flattens them.
func NewDataset(encounters []Encounter) (*Dataset, error) {
	for i := range encounters {
		if err := encounters[i].Validate(); err != nil {
			return nil, fmt.Errorf("encounter %d: %w", i, err)
		}
	}
	return &Dataset{Encounters: encounters, Rows: Flatten(encounters)}, nil
}

// ColumnMissing is the number of null or empty cells in one column.
type ColumnMissing struct {
	Column  string `json:"column" yaml:"column"`
	Missing int    `json:"missing" yaml:"missing"`
}

// MissingValues audits every column of the flattened table.
func MissingValues(rows []Row) []ColumnMissing {
	out := make([]ColumnMissing, len(columns))
	for i, c := range columns {
		out[i].Column = c.name
		for j := range rows {
			if c.missing(&rows[j]) {
				out[i].Missing++
			}
		}
	}
	return out
}

// Uniqueness compares the distinct patient ids in the flattened table with
// its row count.
type Uniqueness struct {
	DistinctIDs int  `json:"distinct_ids" yaml:"distinct_ids"`
	Rows        int  `json:"rows" yaml:"rows"`
	Unique      bool `json:"unique" yaml:"unique"`
}

// CheckUniqueIDs reports whether every row carries a different patient id.
// Missing ids are not counted as distinct values.
func CheckUniqueIDs(rows []Row) Uniqueness {
	seen := make(map[string]struct{})
	for _, r := range rows {
		if !r.PatientID.Valid {
			continue
		}
		seen[r.PatientID.Value] = struct{}{}
	}
	return Uniqueness{
		DistinctIDs: len(seen),
		Rows:        len(rows),
		Unique:      len(seen) == len(rows),
	}
}

// TopMedications ranks medicine names by number of prescriptions.
func TopMedications(rows []Row, n int) []analytics.Count {
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.MedicineName.String()
	}
	return analytics.Top(analytics.ValueCounts(names), n)
}

// TopPatients ranks patient ids by number of prescribed medicines.
func TopPatients(rows []Row, n int) []analytics.Count {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.PatientID.String()
	}
	return analytics.Top(analytics.ValueCounts(ids), n)
}

// PatientSummary aggregates the rows of one patient.
type PatientSummary struct {
	ID            string  `json:"id" yaml:"id"`
	FirstName     string  `json:"first_name" yaml:"first_name"`
	LastName      string  `json:"last_name" yaml:"last_name"`
	Medications   string  `json:"medications" yaml:"medications"`
	TotalDuration float64 `json:"total_duration" yaml:"total_duration"`
}

// Summarize groups rows by (id, first name, last name) in order of first
// appearance, joining medicine names and summing durations.
func Summarize(rows []Row) []PatientSummary {
	type key struct{ id, first, last string }
	index := make(map[key]int)
	var names [][]string
	out := []PatientSummary{}
	for _, r := range rows {
		k := key{r.PatientID.String(), r.FirstName.String(), r.LastName.String()}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, PatientSummary{ID: k.id, FirstName: k.first, LastName: k.last})
			names = append(names, nil)
		}
		names[i] = append(names[i], r.MedicineName.String())
		if r.Duration.Valid {
			out[i].TotalDuration += r.Duration.Value
		}
	}
	for i := range out {
		out[i].Medications = strings.Join(names[i], ", ")
	}
	return out
}

// MissingPercent is the share of blank values, rounded to two places.
func MissingPercent(values []Text) float64 {
	missing := 0
	for _, v := range values {
		if v.Blank() {
			missing++
		}
	}
	return analytics.Percent(missing, len(values))
}

// NameDOBMissing holds missing percentages of the identifying fields.
type NameDOBMissing struct {
	FirstName float64 `json:"first_name" yaml:"first_name"`
	LastName  float64 `json:"last_name" yaml:"last_name"`
	BirthDate float64 `json:"birth_date" yaml:"birth_date"`
}

// MissingPercentages measures first name, last name and birth date gaps in
// the per-encounter patient table.
func MissingPercentages(patients []PatientDetails) NameDOBMissing {
	first := make([]Text, len(patients))
	last := make([]Text, len(patients))
	dob := make([]Text, len(patients))
	for i, p := range patients {
		first[i], last[i], dob[i] = p.FirstName, p.LastName, p.BirthDate
	}
	return NameDOBMissing{
		FirstName: MissingPercent(first),
		LastName:  MissingPercent(last),
		BirthDate: MissingPercent(dob),
	}
}

// ImputeGender returns a copy of patients with blank genders replaced by
// the modal gender.
func ImputeGender(patients []PatientDetails) ([]PatientDetails, string, error) {
	values := make([]string, len(patients))
	for i, p := range patients {
		values[i] = p.Gender.String()
	}
	mode, ok := analytics.Mode(values, func(s string) bool { return s != "" })
	if !ok {
		return nil, "", fmt.Errorf("gender mode: %w", ErrEmptyDataset)
	}
	out := make([]PatientDetails, len(patients))
	copy(out, patients)
	for i := range out {
		if out[i].Gender.Blank() {
			out[i].Gender = NewText(mode)
		}
	}
	return out, mode, nil
}

// FemalePercentage imputes missing genders and returns the share of "F".
func FemalePercentage(patients []PatientDetails) (float64, error) {
	imputed, _, err := ImputeGender(patients)
	if err != nil {
		return 0, err
	}
	female := 0
	for _, p := range imputed {
		if p.Gender.Value == "F" {
			female++
		}
	}
	return analytics.Percent(female, len(imputed)), nil
}

// AverageMedications is the mean medicine count per encounter, rounded to
// two places.
func AverageMedications(encounters []Encounter) (float64, error) {
	counts := make([]float64, len(encounters))
	for i := range encounters {
		counts[i] = float64(len(encounters[i].Medicines()))
	}
	mean, err := analytics.Mean(counts)
	if err != nil {
		return 0, fmt.Errorf("average medications: %w", ErrEmptyDataset)
	}
	return analytics.Round(mean, 2), nil
}

// MedicationRank returns the medicine name at the given zero-based rank of
// the frequency ranking.
func MedicationRank(encounters []Encounter, rank int) (string, error) {
	var names []string
	for i := range encounters {
		for _, m := range encounters[i].Medicines() {
			if !m.MedicineName.Valid {
				return "", fmt.Errorf("encounter %d medicineName: %w", i, ErrMissingField)
			}
			names = append(names, m.MedicineName.Value)
		}
	}
	ranked := analytics.ValueCounts(names)
	if rank < 0 || rank >= len(ranked) {
		return "", fmt.Errorf("rank %d of %d distinct names: %w", rank+1, len(ranked), ErrTooFewMedications)
	}
	return ranked[rank].Value, nil
}

// ThirdMostCommonMedication returns the medicine name ranked third by
// frequency.
func ThirdMostCommonMedication(encounters []Encounter) (string, error) {
	return MedicationRank(encounters, 2)
}

// ActiveShare splits all prescribed medicines by their active flag.
type ActiveShare struct {
	Active          int     `json:"active" yaml:"active"`
	Inactive        int     `json:"inactive" yaml:"inactive"`
	ActivePercent   float64 `json:"active_percent" yaml:"active_percent"`
	InactivePercent float64 `json:"inactive_percent" yaml:"inactive_percent"`
}

// ActiveInactive computes the active and inactive medicine percentages.
func ActiveInactive(encounters []Encounter) (ActiveShare, error) {
	var s ActiveShare
	for i := range encounters {
		for _, m := range encounters[i].Medicines() {
			if m.IsActive == nil {
				return ActiveShare{}, fmt.Errorf("encounter %d isActive: %w", i, ErrMissingField)
			}
			if *m.IsActive {
				s.Active++
			} else {
				s.Inactive++
			}
		}
	}
	total := s.Active + s.Inactive
	if total == 0 {
		return ActiveShare{}, fmt.Errorf("active medications: %w", ErrEmptyDataset)
	}
	s.ActivePercent = analytics.Percent(s.Active, total)
	s.InactivePercent = analytics.Percent(s.Inactive, total)
	return s, nil
}

// AgeMedicationCorrelation is the Pearson coefficient between patient age
// and medicine count per encounter, over encounters with a resolvable age,
// rounded to two places.
func AgeMedicationCorrelation(encounters []Encounter, referenceYear int) (float64, error) {
	var ages, counts []float64
	for i := range encounters {
		e := &encounters[i]
		if e.PatientDetails == nil {
			continue
		}
		age, ok := Age(e.PatientDetails.BirthDate, referenceYear)
		if !ok {
			continue
		}
		ages = append(ages, float64(age))
		counts = append(counts, float64(len(e.Medicines())))
	}
	r, err := analytics.Pearson(ages, counts)
	if err != nil {
		return 0, fmt.Errorf("%w: %d points: %v", ErrUndefinedCorrelation, len(ages), err)
	}
	return analytics.Round(r, 2), nil
}
