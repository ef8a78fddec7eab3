package validator

import (
	"embed"
	"io/fs"
)

//go:embed translations/*.yaml
var translations embed.FS

// Translations returns the bundled message catalogs, one YAML file per
// language, for use with i18n.NewFSAdapter.
func Translations() fs.FS {
	sub, err := fs.Sub(translations, "translations")
	if err != nil {
		panic(err)
	}
	return sub
}
