package consultation

import (
	"strings"

	"github.com/araddon/dateparse"
)

// Age groups.
const (
	AgeChild   = "Child"
	AgeTeen    = "Teen"
	AgeAdult   = "Adult"
	AgeSenior  = "Senior"
	AgeUnknown = "Unknown"
)

// Age returns referenceYear minus the birth year. ok is false when the birth
// date is missing or cannot be parsed.
func Age(birthDate Text, referenceYear int) (age int, ok bool) {
	if birthDate.Blank() {
		return 0, false
	}
	t, err := dateparse.ParseAny(strings.TrimSpace(birthDate.Value))
	if err != nil {
		return 0, false
	}
	return referenceYear - t.Year(), true
}

// AgeGroup buckets an age; a nil age is Unknown.
func AgeGroup(age *int) string {
	switch {
	case age == nil:
		return AgeUnknown
	case *age <= 12:
		return AgeChild
	case *age <= 19:
		return AgeTeen
	case *age <= 59:
		return AgeAdult
	default:
		return AgeSenior
	}
}

// AgeBreakdown counts patients per age group.
type AgeBreakdown struct {
	Child   int `json:"child" yaml:"child"`
	Teen    int `json:"teen" yaml:"teen"`
	Adult   int `json:"adult" yaml:"adult"`
	Senior  int `json:"senior" yaml:"senior"`
	Unknown int `json:"unknown" yaml:"unknown"`
}

// AgeGroups buckets every patient of the per-encounter table.
func AgeGroups(patients []PatientDetails, referenceYear int) AgeBreakdown {
	var b AgeBreakdown
	for _, p := range patients {
		var agePtr *int
		if age, ok := Age(p.BirthDate, referenceYear); ok {
			agePtr = &age
		}
		switch AgeGroup(agePtr) {
		case AgeChild:
			b.Child++
		case AgeTeen:
			b.Teen++
		case AgeAdult:
			b.Adult++
		case AgeSenior:
			b.Senior++
		default:
			b.Unknown++
		}
	}
	return b
}
