package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ehr/consultreport/internal/domain/consultation"
	"github.com/ehr/consultreport/internal/platform/analytics"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the supported output formats.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// ValidFormat reports whether f names a supported output format.
func ValidFormat(f string) bool {
	for _, v := range Formats {
		if v == f {
			return true
		}
	}
	return false
}

// Render writes the report to w in the given format.
func Render(w io.Writer, r *Report, format string) error {
	switch format {
	case FormatText, "":
		return renderText(w, r)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func renderText(w io.Writer, r *Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Report %s\n", r.ID)
	fmt.Fprintf(tw, "Source:\t%s\n", r.Source)
	fmt.Fprintf(tw, "Generated:\t%s\n", r.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(tw, "Encounters:\t%d\n", r.Encounters)
	fmt.Fprintf(tw, "Rows:\t%d\n", r.Rows)

	for _, res := range r.Results {
		fmt.Fprintf(tw, "\n%s:\n", res.MeasureName)
		writeValue(tw, res.Value)
	}
	return tw.Flush()
}

func writeValue(w io.Writer, v interface{}) {
	switch val := v.(type) {
	case []consultation.ColumnMissing:
		for _, c := range val {
			fmt.Fprintf(w, "  %s\t%d\n", c.Column, c.Missing)
		}
	case consultation.Uniqueness:
		fmt.Fprintf(w, "  %t\t(%d distinct ids, %d rows)\n", val.Unique, val.DistinctIDs, val.Rows)
	case []analytics.Count:
		for _, c := range val {
			fmt.Fprintf(w, "  %s\t%d\n", c.Value, c.Count)
		}
	case []consultation.PatientSummary:
		fmt.Fprintf(w, "  ID\tFIRST\tLAST\tMEDICATIONS\tDURATION\n")
		for _, s := range val {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n", s.ID, s.FirstName, s.LastName, s.Medications, formatFloat(s.TotalDuration))
		}
	case consultation.NameDOBMissing:
		fmt.Fprintf(w, "  first name\t%s%%\n", formatFloat(val.FirstName))
		fmt.Fprintf(w, "  last name\t%s%%\n", formatFloat(val.LastName))
		fmt.Fprintf(w, "  birth date\t%s%%\n", formatFloat(val.BirthDate))
	case consultation.AgeBreakdown:
		fmt.Fprintf(w, "  %s\t%d\n", consultation.AgeChild, val.Child)
		fmt.Fprintf(w, "  %s\t%d\n", consultation.AgeTeen, val.Teen)
		fmt.Fprintf(w, "  %s\t%d\n", consultation.AgeAdult, val.Adult)
		fmt.Fprintf(w, "  %s\t%d\n", consultation.AgeSenior, val.Senior)
		fmt.Fprintf(w, "  %s\t%d\n", consultation.AgeUnknown, val.Unknown)
	case consultation.ActiveShare:
		fmt.Fprintf(w, "  active\t%s%%\t(%d)\n", formatFloat(val.ActivePercent), val.Active)
		fmt.Fprintf(w, "  inactive\t%s%%\t(%d)\n", formatFloat(val.InactivePercent), val.Inactive)
	case float64:
		fmt.Fprintf(w, "  %s\n", formatFloat(val))
	default:
		fmt.Fprintf(w, "  %v\n", val)
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
