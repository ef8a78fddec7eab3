package validator

import (
	"context"
	"slices"
	"strings"

	"github.com/dmitrymomot/entityvalidator/pkg/file"
)

// FileExtension checks the extension of every referenced file against the
// field's space separated allow-list. Extensions compare case-sensitively and
// an empty allow-list disables the check.
func FileExtension(resolver file.Resolver) Validator {
	return Func(func(ctx context.Context, in Input) ([]Error, error) {
		allowed := strings.Fields(in.Field.Settings.FileExtensions)
		if len(allowed) == 0 || in.Value.IsEmpty() {
			return nil, nil
		}

		var errs []Error
		for _, item := range in.Value.Items() {
			ref, ok := Reference(item)
			if !ok {
				continue
			}
			if resolver == nil {
				return nil, ErrResolverNotConfigured
			}

			f, err := resolver.Stat(ctx, ref)
			if err != nil {
				if ctx.Err() != nil {
					return nil, err
				}
				errs = append(errs, fileUnavailable(in.Field.Name, ref, err))
				continue
			}

			ext := file.Extension(f.Filename)
			errs = append(errs, Apply(Rule{
				Check: func() bool { return slices.Contains(allowed, ext) },
				Error: NewError(in.Field.Name, DisallowedFileExtension, KeyDisallowedExtension, TemplateDisallowedExtension, map[string]any{
					"reference":  ref,
					"file-name":  f.Filename,
					"extension":  ext,
					"extensions": in.Field.Settings.FileExtensions,
				}),
			})...)
		}
		return errs, nil
	})
}
