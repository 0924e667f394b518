// Package dataset embeds the default tagging-schema dataset.
//
// The files follow the id-tagging-schema dist/ layout: fields.json,
// presets.json, deprecated.json, preset_categories.json and
// translations/<locale>.json. A different dataset directory can be
// configured at runtime; this one is used when none is set.
package dataset

import (
	"embed"
	"io/fs"
)

// Name identifies the embedded dataset in stats and logs.
const Name = "embedded"

//go:embed data
var data embed.FS

// FS returns the embedded dataset rooted at the dist/ layout.
func FS() fs.FS {
	sub, err := fs.Sub(data, "data")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return sub
}
