package consultation

// Row is one (patient, medicine) pair of the tabular view. Patient fields are
// repeated on every row of the same encounter.
type Row struct {
	PatientID    Text
	FirstName    Text
	LastName     Text
	Email        Text
	Gender       Text
	BirthDate    Text
	Phone        Text
	MedicineID   Text
	MedicineName Text
	Frequency    Text
	Duration     Quantity
	DurationUnit Text
	Instruction  Text
	Active       *bool
}

type column struct {
	name    string
	missing func(r *Row) bool
}

// columns lists the tabular view in export order.
var columns = []column{
	{"id", func(r *Row) bool { return r.PatientID.Blank() }},
	{"fname", func(r *Row) bool { return r.FirstName.Blank() }},
	{"lname", func(r *Row) bool { return r.LastName.Blank() }},
	{"email", func(r *Row) bool { return r.Email.Blank() }},
	{"sex", func(r *Row) bool { return r.Gender.Blank() }},
	{"dob", func(r *Row) bool { return r.BirthDate.Blank() }},
	{"phone", func(r *Row) bool { return r.Phone.Blank() }},
	{"med_id", func(r *Row) bool { return r.MedicineID.Blank() }},
	{"med_name", func(r *Row) bool { return r.MedicineName.Blank() }},
	{"freq", func(r *Row) bool { return r.Frequency.Blank() }},
	{"dur", func(r *Row) bool { return !r.Duration.Valid }},
	{"dur_unit", func(r *Row) bool { return r.DurationUnit.Blank() }},
	{"instr", func(r *Row) bool { return r.Instruction.Blank() }},
	{"active", func(r *Row) bool { return r.Active == nil }},
}

// Columns returns the column names of the tabular view.
func Columns() []string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.name
	}
	return names
}

// Flatten expands encounters into one row per prescribed medicine. An
// encounter without medicines contributes no rows; absent patient details
// leave the patient columns missing.
func Flatten(encounters []Encounter) []Row {
	var rows []Row
	for i := range encounters {
		e := &encounters[i]
		var p PatientDetails
		if e.PatientDetails != nil {
			p = *e.PatientDetails
		}
		for _, m := range e.Medicines() {
			rows = append(rows, Row{
				PatientID:    p.ID,
				FirstName:    p.FirstName,
				LastName:     p.LastName,
				Email:        p.EmailID,
				Gender:       p.Gender,
				BirthDate:    p.BirthDate,
				Phone:        e.PhoneNumber,
				MedicineID:   m.MedicineID,
				MedicineName: m.MedicineName,
				Frequency:    m.Frequency,
				Duration:     m.Duration,
				DurationUnit: m.DurationIn,
				Instruction:  m.Instruction,
				Active:       m.IsActive,
			})
		}
	}
	return rows
}

// Patients returns the per-encounter patient table.
func Patients(encounters []Encounter) []PatientDetails {
	patients := make([]PatientDetails, 0, len(encounters))
	for _, e := range encounters {
		if e.PatientDetails == nil {
			patients = append(patients, PatientDetails{})
			continue
		}
		patients = append(patients, *e.PatientDetails)
	}
	return patients
}
