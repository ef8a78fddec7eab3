package main

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/dmitrymomot/entityvalidator/pkg/entityvalidator"
	"github.com/dmitrymomot/entityvalidator/pkg/i18n"
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
)

func checkFormat(format string) error {
	switch format {
	case formatText, formatJSON:
		return nil
	}
	return fmt.Errorf("unknown output format %q: use text or json", format)
}

type reportOutput struct {
	RunID      string        `json:"run_id"`
	EntityType string        `json:"entity_type"`
	Variant    string        `json:"variant"`
	Valid      bool          `json:"valid"`
	DurationMS int64         `json:"duration_ms"`
	Errors     []errorOutput `json:"errors"`
}

type errorOutput struct {
	Field   string         `json:"field"`
	Kind    string         `json:"kind"`
	Key     string         `json:"key"`
	Message string         `json:"message"`
	Params  map[string]any `json:"params,omitempty"`
}

func newReportOutput(report *entityvalidator.Report, f i18n.Formatter) reportOutput {
	out := reportOutput{
		RunID:      report.RunID.String(),
		EntityType: report.EntityType,
		Variant:    report.Variant,
		Valid:      report.Valid(),
		DurationMS: report.Duration.Milliseconds(),
		Errors:     []errorOutput{},
	}
	for _, e := range report.Flat() {
		out.Errors = append(out.Errors, errorOutput{
			Field:   e.Field,
			Kind:    string(e.Kind),
			Key:     e.Key,
			Message: e.Message(f),
			Params:  e.Params,
		})
	}
	return out
}

func writeReport(w io.Writer, format string, report *entityvalidator.Report, f i18n.Formatter) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newReportOutput(report, f))
	}

	subject := report.EntityType
	if report.Variant != "" {
		subject += "/" + report.Variant
	}
	if report.Valid() {
		_, err := fmt.Fprintf(w, "%s is valid (run %s)\n", subject, report.RunID)
		return err
	}

	errs := report.Flat()
	if _, err := fmt.Fprintf(w, "%s is invalid: %d error(s) (run %s)\n\n", subject, len(errs), report.RunID); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tKIND\tMESSAGE")
	for _, e := range errs {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Field, e.Kind, e.Message(f))
	}
	return tw.Flush()
}

func writeFields(w io.Writer, format string, set []fieldRow) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(set)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPROPERTY\tREQUIRED\tCARDINALITY\tKIND\tVALIDATORS\tSETTINGS")
	for _, row := range set {
		property := row.Property
		if row.SubProperty != "" {
			property += "." + row.SubProperty
		}
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\t%s\t%s\t%s\n",
			row.Name, property, row.Required, row.Cardinality, orDash(row.Kind),
			orDash(strings.Join(row.Validators, ",")), orDash(formatSettings(row.Settings)))
	}
	return tw.Flush()
}

func formatSettings(settings map[string]string) string {
	parts := make([]string, 0, len(settings))
	for _, k := range slices.Sorted(maps.Keys(settings)) {
		parts = append(parts, k+"="+settings[k])
	}
	return strings.Join(parts, " ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
