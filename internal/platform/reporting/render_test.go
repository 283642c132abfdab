package reporting

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func sampleReport(t *testing.T) *Report {
	t.Helper()
	g := newTestGenerator(Options{TopN: 10, SummaryRows: 5})
	r, err := g.Run(context.Background(), "export.json", sampleDataset(t), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return r
}

func TestRender_Text(t *testing.T) {
	r := sampleReport(t)
	var buf bytes.Buffer
	if err := Render(&buf, r, FormatText); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Report " + r.ID.String(),
		"Missing Values:",
		"Most Common Medications:",
		"Third Most Common Medication:",
		"  C\n",
		"66.67",
		"First p1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q\n%s", want, out)
		}
	}
}

func TestRender_JSON(t *testing.T) {
	r := sampleReport(t)
	var buf bytes.Buffer
	if err := Render(&buf, r, FormatJSON); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded struct {
		ID      string `json:"id"`
		Results []struct {
			MeasureID string          `json:"measure_id"`
			Value     json.RawMessage `json:"value"`
		} `json:"results"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded.ID != r.ID.String() {
		t.Errorf("id = %q, want %q", decoded.ID, r.ID)
	}
	if len(decoded.Results) != len(PredefinedMeasures) {
		t.Fatalf("expected %d results, got %d", len(PredefinedMeasures), len(decoded.Results))
	}
	if string(decoded.Results[9].Value) != `"C"` {
		t.Errorf("third-medication value = %s", decoded.Results[9].Value)
	}
}

func TestRender_YAML(t *testing.T) {
	r := sampleReport(t)
	var buf bytes.Buffer
	if err := Render(&buf, r, FormatYAML); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if decoded["source"] != "export.json" {
		t.Errorf("source = %v", decoded["source"])
	}
	if decoded["id"] != r.ID.String() {
		t.Errorf("id = %v, want %s", decoded["id"], r.ID)
	}
	results, ok := decoded["results"].([]interface{})
	if !ok || len(results) != len(PredefinedMeasures) {
		t.Fatalf("unexpected results: %#v", decoded["results"])
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	if err := Render(&bytes.Buffer{}, sampleReport(t), "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestValidFormat(t *testing.T) {
	for _, f := range Formats {
		if !ValidFormat(f) {
			t.Errorf("expected %q to be valid", f)
		}
	}
	if ValidFormat("csv") {
		t.Error("expected csv to be invalid")
	}
}
