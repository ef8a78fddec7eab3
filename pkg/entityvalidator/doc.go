// Package entityvalidator is the entry point of the validation engine.
//
// A Validator is created for one entity type and a fieldspec.Source. Each run
// resolves the field specs of the current variant, reads every field from the
// entity and runs the field's validators, collecting every error instead of
// stopping at the first one:
//
//	v := entityvalidator.New("node", source,
//	    entityvalidator.WithVariant("issue"),
//	    entityvalidator.WithResolver(storage),
//	    entityvalidator.WithFormatter(translator.Formatter("de")),
//	)
//
//	ok, err := v.Validate(ctx, doc, false)
//	var failed *entityvalidator.FailedError
//	if errors.As(err, &failed) {
//	    fmt.Println(failed.Report.Squash())
//	}
//
// In silent mode Validate only returns false and the caller reads Errors or
// SquashedErrors. An unknown entity type or variant has no field specs and
// validates successfully.
//
// # Run phases
//
// A run moves through Idle, Resolving, Extracting, Validating and Reporting
// and back to Idle. Extracting and Validating repeat once per field. For a
// required field the emptiness check runs first, then the declared
// validators in order; no validator is skipped because an earlier one failed.
//
// # Failures
//
// Findings are data and end up in the Report. A failing schema source, an
// unregistered validator name, a malformed field constraint or a missing
// file resolver abort the run and are returned as errors. A single file that
// cannot be loaded is recorded as a validator.FileUnavailable finding.
package entityvalidator
