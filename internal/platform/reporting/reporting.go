package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ehr/consultreport/internal/domain/consultation"
)

// Options tunes measure evaluation.
type Options struct {
	TopN          int
	SummaryRows   int
	ReferenceYear int
}

// MeasureDefinition defines a reporting measure evaluated over a dataset.
type MeasureDefinition struct {
	ID          string                                                             `json:"id" yaml:"id"`
	Name        string                                                             `json:"name" yaml:"name"`
	Description string                                                             `json:"description" yaml:"description"`
	Evaluate    func(ds *consultation.Dataset, opts Options) (interface{}, error) `json:"-" yaml:"-"`
}

// MeasureResult holds the value computed for one measure.
type MeasureResult struct {
	MeasureID   string      `json:"measure_id" yaml:"measure_id"`
	MeasureName string      `json:"measure_name" yaml:"measure_name"`
	Value       interface{} `json:"value" yaml:"value"`
}

// Report holds the results of evaluating a set of measures over one export.
type Report struct {
	ID          uuid.UUID       `json:"id" yaml:"id"`
	Source      string          `json:"source" yaml:"source"`
	GeneratedAt time.Time       `json:"generated_at" yaml:"generated_at"`
	Encounters  int             `json:"encounters" yaml:"encounters"`
	Rows        int             `json:"rows" yaml:"rows"`
	Results     []MeasureResult `json:"results" yaml:"results"`
}

// PredefinedMeasures is the battery of available measures, in report order.
var PredefinedMeasures = []MeasureDefinition{
	{
		ID:          "missing-values",
		Name:        "Missing Values",
		Description: "Null or empty cells per column of the flattened patient/medicine table",
		Evaluate: func(ds *consultation.Dataset, _ Options) (interface{}, error) {
			return consultation.MissingValues(ds.Rows), nil
		},
	},
	{
		ID:          "unique-patient-ids",
		Name:        "Unique Patient IDs",
		Description: "Whether the distinct patient id count equals the flattened row count",
		Evaluate: func(ds *consultation.Dataset, _ Options) (interface{}, error) {
			return consultation.CheckUniqueIDs(ds.Rows), nil
		},
	},
	{
		ID:          "top-medications",
		Name:        "Most Common Medications",
		Description: "Medicine names ranked by number of prescriptions",
		Evaluate: func(ds *consultation.Dataset, opts Options) (interface{}, error) {
			return consultation.TopMedications(ds.Rows, opts.TopN), nil
		},
	},
	{
		ID:          "top-patients",
		Name:        "Patients with Most Medications",
		Description: "Patient ids ranked by number of prescribed medicines",
		Evaluate: func(ds *consultation.Dataset, opts Options) (interface{}, error) {
			return consultation.TopPatients(ds.Rows, opts.TopN), nil
		},
	},
	{
		ID:          "medication-summary",
		Name:        "Medication Summary",
		Description: "Per-patient medicine list and total prescribed duration",
		Evaluate: func(ds *consultation.Dataset, opts Options) (interface{}, error) {
			summary := consultation.Summarize(ds.Rows)
			if opts.SummaryRows > 0 && len(summary) > opts.SummaryRows {
				summary = summary[:opts.SummaryRows]
			}
			return summary, nil
		},
	},
	{
		ID:          "missing-name-dob",
		Name:        "Missing Name and Birth Date",
		Description: "Percentage of encounters missing first name, last name or birth date",
		Evaluate: func(ds *consultation.Dataset, _ Options) (interface{}, error) {
			return consultation.MissingPercentages(consultation.Patients(ds.Encounters)), nil
		},
	},
	{
		ID:          "female-percentage",
		Name:        "Female Percentage",
		Description: "Share of female patients after filling missing genders with the modal gender",
		Evaluate: func(ds *consultation.Dataset, _ Options) (interface{}, error) {
			return consultation.FemalePercentage(consultation.Patients(ds.Encounters))
		},
	},
	{
		ID:          "age-groups",
		Name:        "Age Groups",
		Description: "Patients per age group (Child, Teen, Adult, Senior, Unknown)",
		Evaluate: func(ds *consultation.Dataset, opts Options) (interface{}, error) {
			return consultation.AgeGroups(consultation.Patients(ds.Encounters), opts.ReferenceYear), nil
		},
	},
	{
		ID:          "average-medications",
		Name:        "Average Medications per Encounter",
		Description: "Mean number of prescribed medicines per encounter",
		Evaluate: func(ds *consultation.Dataset, _ Options) (interface{}, error) {
			return consultation.AverageMedications(ds.Encounters)
		},
	},
	{
		ID:          "third-medication",
		Name:        "Third Most Common Medication",
		Description: "Medicine name ranked third by prescription count",
		Evaluate: func(ds *consultation.Dataset, _ Options) (interface{}, error) {
			return consultation.ThirdMostCommonMedication(ds.Encounters)
		},
	},
	{
		ID:          "active-inactive",
		Name:        "Active and Inactive Medications",
		Description: "Percentage of prescribed medicines flagged active and inactive",
		Evaluate: func(ds *consultation.Dataset, _ Options) (interface{}, error) {
			return consultation.ActiveInactive(ds.Encounters)
		},
	},
	{
		ID:          "valid-phones",
		Name:        "Valid Phone Numbers",
		Description: "Encounters carrying a valid Indian mobile number",
		Evaluate: func(ds *consultation.Dataset, _ Options) (interface{}, error) {
			return consultation.CountValidPhones(ds.Encounters), nil
		},
	},
	{
		ID:          "age-medication-correlation",
		Name:        "Age / Medication Count Correlation",
		Description: "Pearson correlation between patient age and number of prescribed medicines",
		Evaluate: func(ds *consultation.Dataset, opts Options) (interface{}, error) {
			return consultation.AgeMedicationCorrelation(ds.Encounters, opts.ReferenceYear)
		},
	},
}

// FindMeasure looks up a measure by ID.
func FindMeasure(id string) *MeasureDefinition {
	for i := range PredefinedMeasures {
		if PredefinedMeasures[i].ID == id {
			return &PredefinedMeasures[i]
		}
	}
	return nil
}

// Generator evaluates measures into a Report.
type Generator struct {
	logger zerolog.Logger
	opts   Options
	nowFn  func() time.Time
}

// NewGenerator creates a generator. A zero ReferenceYear resolves to the
// year of the report timestamp.
func NewGenerator(logger zerolog.Logger, opts Options) *Generator {
	return &Generator{logger: logger, opts: opts, nowFn: time.Now}
}

// Run evaluates the measures named by ids, or every predefined measure when
// ids is empty. The first failing measure aborts the run.
func (g *Generator) Run(ctx context.Context, source string, ds *consultation.Dataset, ids []string) (*Report, error) {
	measures, err := resolve(ids)
	if err != nil {
		return nil, err
	}

	now := g.nowFn()
	opts := g.opts
	if opts.ReferenceYear == 0 {
		opts.ReferenceYear = now.Year()
	}

	report := &Report{
		ID:          uuid.New(),
		Source:      source,
		GeneratedAt: now,
		Encounters:  len(ds.Encounters),
		Rows:        len(ds.Rows),
		Results:     make([]MeasureResult, 0, len(measures)),
	}

	for _, m := range measures {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		value, err := m.Evaluate(ds, opts)
		if err != nil {
			return nil, fmt.Errorf("measure %s: %w", m.ID, err)
		}
		g.logger.Debug().Str("report_id", report.ID.String()).Str("measure", m.ID).Msg("measure evaluated")
		report.Results = append(report.Results, MeasureResult{
			MeasureID:   m.ID,
			MeasureName: m.Name,
			Value:       value,
		})
	}

	g.logger.Info().
		Str("report_id", report.ID.String()).
		Int("measures", len(report.Results)).
		Msg("report generated")
	return report, nil
}

func resolve(ids []string) ([]*MeasureDefinition, error) {
	if len(ids) == 0 {
		all := make([]*MeasureDefinition, len(PredefinedMeasures))
		for i := range PredefinedMeasures {
			all[i] = &PredefinedMeasures[i]
		}
		return all, nil
	}
	measures := make([]*MeasureDefinition, 0, len(ids))
	for _, id := range ids {
		m := FindMeasure(id)
		if m == nil {
			return nil, fmt.Errorf("measure not found: %s", id)
		}
		measures = append(measures, m)
	}
	return measures, nil
}
