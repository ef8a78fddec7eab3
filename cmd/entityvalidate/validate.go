package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/entityvalidator/pkg/entity"
	"github.com/dmitrymomot/entityvalidator/pkg/entityvalidator"
)

// errEntityInvalid is returned by a silent run that found errors, so the
// process still exits non-zero after printing the report.
var errEntityInvalid = errors.New("entity is invalid")

var validateFlags struct {
	entityType string
	bundle     string
	silent     bool
	lang       string
	format     string
}

var validateCmd = &cobra.Command{
	Use:   "validate [entity.json]",
	Short: "Validate an entity document",
	Long: `Validate a JSON entity document against the field specifications of its
entity type and bundle. The document is read from the given file, or from
standard input when the argument is omitted or "-".

Without --silent a failed validation ends with one error listing every
message. With --silent the full report is printed instead.

Examples:
  # Validate an issue node
  entityvalidate validate --type node --bundle issue issue.json

  # Print a German JSON report
  curl -s https://example.com/node/1.json | entityvalidate validate --type node --bundle issue --silent --lang de --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: validateEntity,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.entityType, "type", "t", "", "entity type (required)")
	validateCmd.Flags().StringVarP(&validateFlags.bundle, "bundle", "b", "", "entity variant")
	validateCmd.Flags().BoolVar(&validateFlags.silent, "silent", false, "print the report instead of failing with the squashed messages")
	validateCmd.Flags().StringVar(&validateFlags.lang, "lang", "", "message language (defaults to EV_LANG)")
	validateCmd.Flags().StringVar(&validateFlags.format, "format", formatText, "report format: text, json")
	_ = validateCmd.MarkFlagRequired("type")
}

func validateEntity(cmd *cobra.Command, args []string) error {
	if err := checkFormat(validateFlags.format); err != nil {
		return err
	}

	doc, err := readEntity(cmd, args)
	if err != nil {
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

	resolver, err := openResolver(ctx, cfg)
	if err != nil {
		return err
	}
	translator, err := openTranslator(ctx, cfg, log)
	if err != nil {
		return err
	}

	lang := validateFlags.lang
	if lang == "" {
		lang = cfg.Lang
	}

	v := entityvalidator.New(validateFlags.entityType, source,
		entityvalidator.WithVariant(validateFlags.bundle),
		entityvalidator.WithResolver(resolver),
		entityvalidator.WithFormatter(translator.Formatter(lang)),
		entityvalidator.WithLogger(log),
	)

	valid, err := v.Validate(ctx, doc, validateFlags.silent)
	if err != nil {
		return err
	}

	report := v.LastReport()
	if err := writeReport(cmd.OutOrStdout(), validateFlags.format, report, translator.Formatter(lang)); err != nil {
		return err
	}
	if !valid {
		return errEntityInvalid
	}
	return nil
}

func readEntity(cmd *cobra.Command, args []string) (entity.Document, error) {
	var r io.Reader = cmd.InOrStdin()
	name := "stdin"
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to open entity: %w", err)
		}
		defer f.Close()
		r, name = f, args[0]
	}

	doc, err := entity.FromJSON(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read entity from %s: %w", name, err)
	}
	return doc, nil
}
