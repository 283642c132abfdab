package consultation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Text is a nullable scalar from the export. Valid is false when the key was
// absent or explicitly null; an empty string is Valid but blank.
type Text struct {
	Value string
	Valid bool
}

// NewText returns a valid Text holding s.
func NewText(s string) Text { return Text{Value: s, Valid: true} }

// String returns the value, or "" when the field is missing.
func (t Text) String() string { return t.Value }

// Blank reports whether the field is missing or empty.
func (t Text) Blank() bool { return !t.Valid || t.Value == "" }

func (t Text) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.Value)
}

// UnmarshalJSON accepts strings, numbers and booleans; non-string scalars keep
// their literal JSON text.
func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*t = Text{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = NewText(s)
		return nil
	}
	if len(b) > 0 && (b[0] == '{' || b[0] == '[') {
		return fmt.Errorf("expected scalar, got %s", b)
	}
	*t = NewText(string(b))
	return nil
}

// Quantity is a nullable number. The export carries durations either as JSON
// numbers or as numeric strings.
type Quantity struct {
	Value float64
	Valid bool
}

// NewQuantity returns a valid Quantity holding v.
func NewQuantity(v float64) Quantity { return Quantity{Value: v, Valid: true} }

func (q Quantity) String() string {
	if !q.Valid {
		return ""
	}
	return strconv.FormatFloat(q.Value, 'f', -1, 64)
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	if !q.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(q.Value)
}

// UnmarshalJSON treats null, "" and non-numeric strings as missing.
func (q *Quantity) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*q = Quantity{}
		return nil
	}
	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*q = Quantity{}
		return nil
	}
	*q = NewQuantity(v)
	return nil
}

// Encounter is one consultation record of the export.
type Encounter struct {
	PatientDetails   *PatientDetails   `json:"patientDetails"`
	PhoneNumber      Text              `json:"phoneNumber"`
	ConsultationData *ConsultationData `json:"consultationData"`
}

// PatientDetails holds the demographic block of an encounter.
type PatientDetails struct {
	ID        Text `json:"_id"`
	FirstName Text `json:"firstName"`
	LastName  Text `json:"lastName"`
	EmailID   Text `json:"emailId"`
	Gender    Text `json:"gender"`
	BirthDate Text `json:"birthDate"`
}

// ConsultationData carries the prescribed medicines in prescription order.
type ConsultationData struct {
	Medicines []Medicine `json:"medicines"`
}

// Medicine is one prescription line.
type Medicine struct {
	MedicineID   Text     `json:"medicineId"`
	MedicineName Text     `json:"medicineName"`
	Frequency    Text     `json:"frequency"`
	Duration     Quantity `json:"duration"`
	DurationIn   Text     `json:"durationIn"`
	Instruction  Text     `json:"instruction"`
	IsActive     *bool    `json:"isActive"`
}

// Medicines returns the encounter's medicine list, or nil when the
// consultation block is absent.
func (e *Encounter) Medicines() []Medicine {
	if e.ConsultationData == nil {
		return nil
	}
	return e.ConsultationData.Medicines
}

// Validate checks the keys every statistic depends on.
func (e *Encounter) Validate() error {
	if e.PatientDetails == nil {
		return fmt.Errorf("patientDetails: %w", ErrMissingField)
	}
	if e.ConsultationData == nil {
		return fmt.Errorf("consultationData: %w", ErrMissingField)
	}
	if e.ConsultationData.Medicines == nil {
		return fmt.Errorf("consultationData.medicines: %w", ErrMissingField)
	}
	return nil
}
