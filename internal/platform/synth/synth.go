// Package synth generates synthetic consultation exports for demos and tests.
package synth

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/ehr/consultreport/internal/domain/consultation"
)

// Options controls export generation.
type Options struct {
	Encounters int
	Seed       uint64
	// MaxMedicines caps the medicines per encounter; at least one is always
	// prescribed.
	MaxMedicines int
}

// DefaultOptions returns reasonable defaults for a demo export.
func DefaultOptions() Options {
	return Options{Encounters: 100, Seed: 1, MaxMedicines: 6}
}

// Formulary is the fixed set of medicine names prescriptions draw from.
var Formulary = []string{
	"Dolo 650",
	"Pantop 40",
	"Azee 500",
	"Cetzine 10",
	"Augmentin 625",
	"Glycomet 500",
	"Montair LC",
	"Omez 20",
	"Calpol 500",
	"Shelcal 500",
}

const birthDateLayout = "2006-01-02T15:04:05.000Z"

// Generate builds a deterministic export for the given seed. Roughly one in
// ten patients has a blank gender, birth date or name, and phone numbers mix
// valid formats with invalid ones so every statistic has something to find.
func Generate(opts Options) []consultation.Encounter {
	if opts.MaxMedicines <= 0 {
		opts.MaxMedicines = DefaultOptions().MaxMedicines
	}
	f := gofakeit.New(opts.Seed)

	encounters := make([]consultation.Encounter, 0, opts.Encounters)
	for i := 0; i < opts.Encounters; i++ {
		first, last := f.FirstName(), f.LastName()
		patient := &consultation.PatientDetails{
			ID:        consultation.NewText(f.UUID()),
			FirstName: consultation.NewText(first),
			LastName:  consultation.NewText(last),
			EmailID:   consultation.NewText(fmt.Sprintf("%s.%s%d@example.org", first, last, f.Number(10, 99))),
			Gender:    consultation.NewText(f.RandomString([]string{"M", "F", "F", "M", "F", "M", "F", "M", "F", ""})),
			BirthDate: birthDate(f),
		}
		if f.Number(1, 10) == 1 {
			patient.FirstName = consultation.NewText("")
		}
		if f.Number(1, 10) == 1 {
			patient.LastName = consultation.Text{}
		}

		n := f.Number(1, opts.MaxMedicines)
		meds := make([]consultation.Medicine, n)
		for j := range meds {
			active := f.Bool()
			meds[j] = consultation.Medicine{
				MedicineID:   consultation.NewText(f.UUID()),
				MedicineName: consultation.NewText(f.RandomString(Formulary)),
				Frequency:    consultation.NewText(f.RandomString([]string{"1-0-1", "1-1-1", "0-0-1", "1-0-0"})),
				Duration:     consultation.NewQuantity(float64(f.Number(1, 30))),
				DurationIn:   consultation.NewText(f.RandomString([]string{"days", "weeks"})),
				Instruction:  consultation.NewText(f.RandomString([]string{"After food", "Before food", "At bedtime", ""})),
				IsActive:     &active,
			}
		}

		encounters = append(encounters, consultation.Encounter{
			PatientDetails:   patient,
			PhoneNumber:      phone(f),
			ConsultationData: &consultation.ConsultationData{Medicines: meds},
		})
	}
	return encounters
}

func birthDate(f *gofakeit.Faker) consultation.Text {
	switch f.Number(1, 10) {
	case 1:
		return consultation.NewText("")
	case 2:
		return consultation.NewText("unknown")
	}
	start := time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)
	return consultation.NewText(f.DateRange(start, end).UTC().Format(birthDateLayout))
}

func phone(f *gofakeit.Faker) consultation.Text {
	local := fmt.Sprintf("%d%s", f.Number(6, 9), f.Numerify("#########"))
	switch f.Number(1, 8) {
	case 1:
		return consultation.NewText("+91 " + local)
	case 2:
		return consultation.NewText("91-" + local[:5] + "-" + local[5:])
	case 3:
		return consultation.NewText("+91" + local)
	case 4:
		// below the mobile range
		return consultation.NewText(fmt.Sprintf("%d%s", f.Number(1, 5), local[1:]))
	case 5:
		return consultation.NewText(local[:7])
	case 6:
		return consultation.Text{}
	default:
		return consultation.NewText(local)
	}
}

// WriteFile writes encounters as a JSON export.
func WriteFile(path string, encounters []consultation.Encounter) error {
	data, err := json.MarshalIndent(encounters, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}
