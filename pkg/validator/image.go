package validator

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/entityvalidator/pkg/fieldspec"
	"github.com/dmitrymomot/entityvalidator/pkg/file"
)

// ImageDimensions checks every referenced image against the field's maximum
// and minimum resolution. Width and height are checked independently, and a
// missing bound disables its half of the check.
func ImageDimensions(resolver file.Resolver) Validator {
	return Func(func(ctx context.Context, in Input) ([]Error, error) {
		maxRes, hasMax, err := resolutionSetting(in.Field.Settings.MaxResolution)
		if err != nil {
			return nil, fmt.Errorf("%w: field %s: max resolution: %w", ErrInvalidConstraint, in.Field.Name, err)
		}
		minRes, hasMin, err := resolutionSetting(in.Field.Settings.MinResolution)
		if err != nil {
			return nil, fmt.Errorf("%w: field %s: min resolution: %w", ErrInvalidConstraint, in.Field.Name, err)
		}
		if (!hasMax && !hasMin) || in.Value.IsEmpty() {
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

			dim, err := file.ImageDimensions(ctx, resolver, ref)
			if err != nil {
				if ctx.Err() != nil {
					return nil, err
				}
				errs = append(errs, fileUnavailable(in.Field.Name, ref, err))
				continue
			}

			params := map[string]any{
				"reference": ref,
				"width":     dim.Width,
				"height":    dim.Height,
			}
			if hasMax {
				params["max-width"] = maxRes.Width
				params["max-height"] = maxRes.Height
			}
			if hasMin {
				params["min-width"] = minRes.Width
				params["min-height"] = minRes.Height
			}

			errs = append(errs, Apply(
				Rule{
					Check: func() bool { return !hasMax || dim.Width <= maxRes.Width },
					Error: NewError(in.Field.Name, ImageTooLarge, KeyImageTooWide, TemplateImageTooWide, params),
				},
				Rule{
					Check: func() bool { return !hasMax || dim.Height <= maxRes.Height },
					Error: NewError(in.Field.Name, ImageTooLarge, KeyImageTooTall, TemplateImageTooTall, params),
				},
				Rule{
					Check: func() bool { return !hasMin || dim.Width >= minRes.Width },
					Error: NewError(in.Field.Name, ImageTooSmall, KeyImageTooNarrow, TemplateImageTooNarrow, params),
				},
				Rule{
					Check: func() bool { return !hasMin || dim.Height >= minRes.Height },
					Error: NewError(in.Field.Name, ImageTooSmall, KeyImageTooShort, TemplateImageTooShort, params),
				},
			)...)
		}
		return errs, nil
	})
}

func resolutionSetting(s string) (fieldspec.Resolution, bool, error) {
	if s == "" {
		return fieldspec.Resolution{}, false, nil
	}
	res, err := fieldspec.ParseResolution(s)
	if err != nil {
		return fieldspec.Resolution{}, false, err
	}
	return res, true, nil
}
