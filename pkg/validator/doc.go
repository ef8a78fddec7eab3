// Package validator implements the per-field validator chain and the error
// collector of the entity validation engine.
//
// A Validator inspects one field value, described by an Input, and returns
// zero or more Error values. Errors are data: they carry a message template
// with named %{...} placeholders, a translation key and the parameters, and
// are rendered only when a report is produced. A non-nil error returned next
// to them means the check itself could not run, for example because a field
// constraint is malformed.
//
// # Built-in validators
//
//   - Required reports an empty value and always runs first for required fields.
//   - MultiValueNotEmpty reports each empty element of a sequence with its delta.
//   - TypeConformance checks values against the declared fieldspec.ValueKind.
//   - ImageDimensions checks referenced images against min and max resolution.
//   - FileExtension checks referenced file names against an allow-list.
//
// Every validator except Required passes empty values. Validators reading
// stored binaries report a lookup failure of a single file as FileUnavailable
// and continue with the next file.
//
// # Registry
//
// Field specs reference validators by name. NewRegistry installs the built-ins,
// custom validators are added with Register:
//
//	reg := validator.NewRegistry(storage)
//	reg.Register("sku", validator.Func(func(ctx context.Context, in validator.Input) ([]validator.Error, error) {
//	    return validator.Apply(validator.Rule{
//	        Check: func() bool { return strings.HasPrefix(in.Value.String(), "SKU-") },
//	        Error: validator.NewError(in.Field.Name, validator.TypeMismatch, "validation.sku", "%{field} must start with SKU-", nil),
//	    }), nil
//	}))
//
// # Collector
//
// Collector groups errors by field in the order fields first reported. Squash
// renders all errors through an i18n.Formatter and joins them with newlines.
// The bundled catalogs returned by Translations cover the built-in keys.
package validator
