// Package view holds the console's embedded HTML templates.
package view

import (
	"embed"
	"html/template"

	"github.com/navigatingnc/bid-management-system/internal/util"
	"github.com/navigatingnc/bid-management-system/pkg/bidsheet"
)

//go:embed "templates"
var FS embed.FS

// Page is the chrome every screen shares. Screen data embeds it.
type Page struct {
	Title  string
	Error  string
	Notice string
}

func Templates() *template.Template {
	funcs := template.FuncMap{
		"currency": bidsheet.FormatCurrency,
		"filesize": util.FormatFileSize,
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(FS, "templates/*.tmpl"))
}
