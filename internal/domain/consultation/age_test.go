package consultation

import (
	"fmt"
	"testing"
)

func ptrInt(i int) *int { return &i }

func TestAgeGroup(t *testing.T) {
	tests := []struct {
		age  *int
		want string
	}{
		{ptrInt(0), AgeChild},
		{ptrInt(12), AgeChild},
		{ptrInt(13), AgeTeen},
		{ptrInt(19), AgeTeen},
		{ptrInt(20), AgeAdult},
		{ptrInt(59), AgeAdult},
		{ptrInt(60), AgeSenior},
		{ptrInt(95), AgeSenior},
		{nil, AgeUnknown},
	}
	for _, tt := range tests {
		if got := AgeGroup(tt.age); got != tt.want {
			age := "nil"
			if tt.age != nil {
				age = fmt.Sprint(*tt.age)
			}
			t.Errorf("AgeGroup(%s) = %s, want %s", age, got, tt.want)
		}
	}
}

func TestAge(t *testing.T) {
	tests := []struct {
		name string
		dob  Text
		age  int
		ok   bool
	}{
		{"iso timestamp", NewText("1990-04-01T00:00:00.000Z"), 34, true},
		{"date only", NewText("2010-01-15"), 14, true},
		{"slashes", NewText("1964/07/30"), 60, true},
		{"empty", NewText(""), 0, false},
		{"missing", Text{}, 0, false},
		{"garbage", NewText("not a date"), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			age, ok := Age(tt.dob, refYear)
			if age != tt.age || ok != tt.ok {
				t.Errorf("Age(%q) = (%d, %v), want (%d, %v)", tt.dob.Value, age, ok, tt.age, tt.ok)
			}
		})
	}
}

func TestAgeGroups(t *testing.T) {
	got := AgeGroups(Patients(sampleEncounters()), refYear)
	want := AgeBreakdown{Teen: 1, Adult: 1, Unknown: 2}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
