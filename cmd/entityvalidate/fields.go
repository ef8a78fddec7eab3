package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/entityvalidator/pkg/fieldspec"
)

var fieldsFlags struct {
	entityType string
	bundle     string
	format     string
}

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Show the resolved field specifications",
	Long: `Resolve the field specifications of an entity type and bundle from the
configured schema source and print them, including the label field and the
validators derived from each value kind.

Examples:
  entityvalidate fields --type node --bundle issue
  entityvalidate fields --type node --bundle issue --format json`,
	Args: cobra.NoArgs,
	RunE: showFields,
}

func init() {
	rootCmd.AddCommand(fieldsCmd)

	fieldsCmd.Flags().StringVarP(&fieldsFlags.entityType, "type", "t", "", "entity type (required)")
	fieldsCmd.Flags().StringVarP(&fieldsFlags.bundle, "bundle", "b", "", "entity variant")
	fieldsCmd.Flags().StringVar(&fieldsFlags.format, "format", formatText, "output format: text, json")
	_ = fieldsCmd.MarkFlagRequired("type")
}

type fieldRow struct {
	Name        string            `json:"name"`
	Property    string            `json:"property"`
	SubProperty string            `json:"sub_property,omitempty"`
	Required    bool              `json:"required"`
	Cardinality string            `json:"cardinality"`
	Kind        string            `json:"kind,omitempty"`
	Validators  []string          `json:"validators"`
	Settings    map[string]string `json:"settings,omitempty"`
}

func newFieldRow(spec fieldspec.FieldSpec) fieldRow {
	row := fieldRow{
		Name:        spec.Name,
		Property:    spec.SourceProperty,
		SubProperty: spec.SubProperty,
		Required:    spec.Required,
		Cardinality: spec.Cardinality.String(),
		Kind:        string(spec.Kind),
		Validators:  []string{},
	}
	for _, name := range spec.Validators {
		row.Validators = append(row.Validators, string(name))
	}

	s := spec.Settings
	settings := map[string]string{}
	put := func(k, v string) {
		if v != "" {
			settings[k] = v
		}
	}
	put("max_resolution", s.MaxResolution)
	put("min_resolution", s.MinResolution)
	put("file_extensions", s.FileExtensions)
	put("allowed_values", strings.Join(s.AllowedValues, ","))
	if s.Min != nil {
		put("min", strconv.FormatFloat(*s.Min, 'g', -1, 64))
	}
	if s.Max != nil {
		put("max", strconv.FormatFloat(*s.Max, 'g', -1, 64))
	}
	if s.MaxLength > 0 {
		put("max_length", strconv.Itoa(s.MaxLength))
	}
	if len(settings) > 0 {
		row.Settings = settings
	}
	return row
}

func showFields(cmd *cobra.Command, _ []string) error {
	if err := checkFormat(fieldsFlags.format); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	source, closeSource, err := openSource(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeSource()

	set, err := fieldspec.Resolve(ctx, source, fieldsFlags.entityType, fieldsFlags.bundle)
	if err != nil {
		return err
	}

	rows := make([]fieldRow, 0, set.Len())
	for _, spec := range set.All() {
		rows = append(rows, newFieldRow(spec))
	}
	return writeFields(cmd.OutOrStdout(), fieldsFlags.format, rows)
}
