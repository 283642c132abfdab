package analytics

import (
	"errors"
	"math"
	"testing"
)

func TestValueCounts_OrderByCountThenFirstSeen(t *testing.T) {
	got := ValueCounts([]string{"b", "a", "c", "a", "b", "d"})
	want := []Count{{"b", 2}, {"a", 2}, {"c", 1}, {"d", 1}}
	if len(got) != len(want) {
		t.Fatalf("expected %d counts, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("counts[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestValueCounts_Empty(t *testing.T) {
	got := ValueCounts(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestTop(t *testing.T) {
	counts := []Count{{"a", 3}, {"b", 2}, {"c", 1}}
	if got := Top(counts, 2); len(got) != 2 || got[1].Value != "b" {
		t.Errorf("Top(2) = %+v", got)
	}
	if got := Top(counts, 10); len(got) != 3 {
		t.Errorf("Top(10) returned %d entries, want 3", len(got))
	}
	if got := Top(counts, -1); len(got) != 0 {
		t.Errorf("Top(-1) returned %d entries, want 0", len(got))
	}
}

func TestMode(t *testing.T) {
	nonEmpty := func(s string) bool { return s != "" }

	tests := []struct {
		name   string
		values []string
		want   string
		ok     bool
	}{
		{"majority", []string{"M", "F", "F", ""}, "F", true},
		{"blanks ignored", []string{"", "", "", "M"}, "M", true},
		{"tie picks smallest", []string{"M", "F"}, "F", true},
		{"nothing qualifies", []string{"", ""}, "", false},
		{"empty", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Mode(tt.values, nonEmpty)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Mode(%v) = (%q, %v), want (%q, %v)", tt.values, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRound(t *testing.T) {
	if got := Round(33.33333, 2); got != 33.33 {
		t.Errorf("Round(33.33333, 2) = %v", got)
	}
	if got := Round(66.666666, 2); got != 66.67 {
		t.Errorf("Round(66.666666, 2) = %v", got)
	}
	if got := Round(0.999, 2); got != 1 {
		t.Errorf("Round(0.999, 2) = %v", got)
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(0, 4); got != 0 {
		t.Errorf("Percent(0, 4) = %v", got)
	}
	if got := Percent(4, 4); got != 100 {
		t.Errorf("Percent(4, 4) = %v", got)
	}
	if got := Percent(1, 3); got != 33.33 {
		t.Errorf("Percent(1, 3) = %v", got)
	}
	if got := Percent(1, 0); got != 0 {
		t.Errorf("Percent(1, 0) = %v", got)
	}
}

func TestMean(t *testing.T) {
	got, err := Mean([]float64{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 2.5 {
		t.Errorf("Mean = %v, want 2.5", got)
	}
	if _, err := Mean(nil); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestPearson_PerfectLinear(t *testing.T) {
	r, err := Pearson([]float64{30, 40}, []float64{2, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(r-1) > 1e-9 {
		t.Errorf("r = %v, want 1", r)
	}
}

func TestPearson_Negative(t *testing.T) {
	r, err := Pearson([]float64{1, 2, 3}, []float64{6, 4, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(r+1) > 1e-9 {
		t.Errorf("r = %v, want -1", r)
	}
}

func TestPearson_Errors(t *testing.T) {
	if _, err := Pearson([]float64{1}, []float64{2}); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("single point: expected ErrInsufficientData, got %v", err)
	}
	if _, err := Pearson([]float64{1, 2, 3}, []float64{5, 5, 5}); !errors.Is(err, ErrZeroVariance) {
		t.Errorf("constant y: expected ErrZeroVariance, got %v", err)
	}
	if _, err := Pearson([]float64{1, 2}, []float64{1}); err == nil {
		t.Error("expected error on length mismatch")
	}
}
