package entityvalidator

import (
	"log/slog"

	"github.com/dmitrymomot/entityvalidator/pkg/fieldspec"
	"github.com/dmitrymomot/entityvalidator/pkg/file"
	"github.com/dmitrymomot/entityvalidator/pkg/i18n"
	"github.com/dmitrymomot/entityvalidator/pkg/validator"
)

// Option configures a Validator.
type Option func(*Validator)

// WithVariant sets the initial variant.
func WithVariant(variant string) Option {
	return func(v *Validator) {
		v.variant = variant
	}
}

// WithRegistry replaces the built-in validator registry. The resolver given
// with WithResolver is not used by a custom registry. Validators added with
// WithValidator go to a private copy of r, so r itself is never modified.
func WithRegistry(r *validator.Registry) Option {
	return func(v *Validator) {
		if r != nil {
			v.registry = r
		}
	}
}

// WithResolver sets the file resolver of the built-in image and file validators.
func WithResolver(r file.Resolver) Option {
	return func(v *Validator) {
		v.resolver = r
	}
}

// WithValidator registers a custom validator next to the built-ins.
func WithValidator(name fieldspec.ValidatorName, check validator.Validator) Option {
	return func(v *Validator) {
		v.custom = append(v.custom, namedValidator{name: name, check: check})
	}
}

// WithFormatter sets the formatter rendering squashed reports, for example a
// translator's i18n.Translator.Formatter.
func WithFormatter(f i18n.Formatter) Option {
	return func(v *Validator) {
		if f != nil {
			v.formatter = f
		}
	}
}

// WithLogger sets the logger. Runs log at debug level, failed file lookups at warn.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}
