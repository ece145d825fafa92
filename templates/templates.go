// Package templates embeds the HTML templates used to render shoe cards.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// funcs are available to every template.
// css marks theme values as trusted CSS; they come from configuration, never from listings.
var funcs = template.FuncMap{
	"css": func(s string) template.CSS { return template.CSS(s) },
}

// Parse parses all embedded templates. The card fragment is named "shoe_card",
// the standalone page "shoe_grid".
func Parse() (*template.Template, error) {
	return template.New("shoes").Funcs(funcs).ParseFS(files, "*.html")
}
