// Package web provides embedded static pages for the built-in UI.
package web

import (
	"embed"
)

//go:embed static
var pagesFS embed.FS

// Page returns the embedded HTML page with the given base name
// (for example "index" or "admin"). Returns nil if no such page exists.
func Page(name string) []byte {
	data, err := pagesFS.ReadFile("static/" + name + ".html")
	if err != nil {
		return nil
	}
	return data
}
