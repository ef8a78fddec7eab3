package i18n

import (
	"fmt"
	"regexp"
)

// Formatter renders a message. key identifies the message in translation
// catalogs; template is used when no translation is known.
type Formatter interface {
	Format(key, template string, params map[string]any) string
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc func(key, template string, params map[string]any) string

func (f FormatterFunc) Format(key, template string, params map[string]any) string {
	return f(key, template, params)
}

// Placeholders substitutes params into the template and ignores the key.
var Placeholders Formatter = FormatterFunc(func(_ string, template string, params map[string]any) string {
	return Sprintf(template, params)
})

// Regex to find named parameters in the form %{name}
var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// Sprintf performs substitution of named placeholders in the form "%{key}".
// Placeholders without a parameter are kept as is.
//
// Example:
//
//	i18n.Sprintf("The delta %{delta} cannot be empty.", map[string]any{"delta": 1})
//	// "The delta 1 cannot be empty."
func Sprintf(template string, params map[string]any) string {
	if len(params) == 0 {
		return template
	}
	return paramRegex.ReplaceAllStringFunc(template, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := params[name]; ok {
			return fmt.Sprint(val)
		}
		return match
	})
}
