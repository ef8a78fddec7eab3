package validator

import (
	"context"
	"net/mail"
	"net/url"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrymomot/entityvalidator/pkg/entity"
	"github.com/dmitrymomot/entityvalidator/pkg/fieldspec"
)

// dateLayouts are tried in order for string date values.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.DateTime,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

type kindCheck func(item entity.Value, s fieldspec.Settings) bool

var kindChecks = map[fieldspec.ValueKind]kindCheck{
	fieldspec.KindText:                  isText,
	fieldspec.KindTextLong:              isText,
	fieldspec.KindTextWithSummary:       isText,
	fieldspec.KindInteger:               isInteger,
	fieldspec.KindDecimal:               isNumber,
	fieldspec.KindFloat:                 isNumber,
	fieldspec.KindBoolean:               isBoolean,
	fieldspec.KindListText:              isListText,
	fieldspec.KindListInteger:           isListInteger,
	fieldspec.KindListFloat:             isListFloat,
	fieldspec.KindEntityReference:       isReference,
	fieldspec.KindTaxonomyTermReference: isReference,
	fieldspec.KindDate:                  isDate,
	fieldspec.KindEmail:                 isEmail,
	fieldspec.KindLink:                  isLink,
	fieldspec.KindImage:                 isReference,
	fieldspec.KindFile:                  isReference,
}

// TypeConformance checks every non-empty element against the domain of the
// field's declared kind. Fields without a kind, or with a kind it does not
// know, pass.
var TypeConformance Validator = Func(func(_ context.Context, in Input) ([]Error, error) {
	check, ok := kindChecks[in.Field.Kind]
	if !ok || in.Value.IsEmpty() {
		return nil, nil
	}

	var rules []Rule
	for delta, item := range in.Value.Items() {
		if item.IsEmpty() {
			continue
		}
		finding := typeMismatch(in.Field.Name, item.String())
		if in.Value.IsList() {
			finding.Params["delta"] = delta
		}
		rules = append(rules, Rule{
			Check: func() bool { return check(item, in.Field.Settings) },
			Error: finding,
		})
	}
	return Apply(rules...), nil
})

// memberValue unwraps formatted values stored as {value, format}.
func memberValue(item entity.Value, member string) entity.Value {
	if item.IsMap() {
		return item.Sub(member)
	}
	return item
}

func isText(item entity.Value, s fieldspec.Settings) bool {
	text, ok := memberValue(item, "value").Raw().(string)
	if !ok {
		return false
	}
	return s.MaxLength <= 0 || utf8.RuneCountInString(text) <= s.MaxLength
}

func inRange(n float64, s fieldspec.Settings) bool {
	if s.Min != nil && n < *s.Min {
		return false
	}
	if s.Max != nil && n > *s.Max {
		return false
	}
	return true
}

func isInteger(item entity.Value, s fieldspec.Settings) bool {
	n, ok := toInt(memberValue(item, "value").Raw())
	return ok && inRange(float64(n), s)
}

func isNumber(item entity.Value, s fieldspec.Settings) bool {
	n, ok := toFloat(memberValue(item, "value").Raw())
	return ok && inRange(n, s)
}

func isBoolean(item entity.Value, _ fieldspec.Settings) bool {
	_, ok := toBool(memberValue(item, "value").Raw())
	return ok
}

func isListText(item entity.Value, s fieldspec.Settings) bool {
	v := memberValue(item, "value")
	if v.IsMap() || v.IsList() {
		return false
	}
	return len(s.AllowedValues) == 0 || slices.Contains(s.AllowedValues, v.String())
}

func isListInteger(item entity.Value, s fieldspec.Settings) bool {
	n, ok := toInt(memberValue(item, "value").Raw())
	if !ok || !inRange(float64(n), s) {
		return false
	}
	if len(s.AllowedValues) == 0 {
		return true
	}
	return slices.ContainsFunc(s.AllowedValues, func(allowed string) bool {
		a, ok := toInt(allowed)
		return ok && a == n
	})
}

func isListFloat(item entity.Value, s fieldspec.Settings) bool {
	n, ok := toFloat(memberValue(item, "value").Raw())
	if !ok || !inRange(n, s) {
		return false
	}
	if len(s.AllowedValues) == 0 {
		return true
	}
	return slices.ContainsFunc(s.AllowedValues, func(allowed string) bool {
		a, ok := toFloat(allowed)
		return ok && a == n
	})
}

func isReference(item entity.Value, _ fieldspec.Settings) bool {
	_, ok := Reference(item)
	return ok
}

func isDate(item entity.Value, _ fieldspec.Settings) bool {
	switch raw := memberValue(item, "value").Raw().(type) {
	case time.Time:
		return !raw.IsZero()
	case string:
		s := strings.TrimSpace(raw)
		for _, layout := range dateLayouts {
			if _, err := time.Parse(layout, s); err == nil {
				return true
			}
		}
		return false
	default:
		// Unix timestamps
		_, ok := toInt(raw)
		return ok
	}
}

func isEmail(item entity.Value, _ fieldspec.Settings) bool {
	s, ok := memberValue(item, "value").Raw().(string)
	if !ok {
		return false
	}
	s = strings.TrimSpace(s)
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	// Reject display-name forms such as "John <john@example.com>".
	return addr.Address == s
}

func isLink(item entity.Value, _ fieldspec.Settings) bool {
	s, ok := memberValue(item, "url").Raw().(string)
	if !ok || strings.TrimSpace(s) == "" {
		return false
	}
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
