package httpapi

import (
	"embed"
	"html/template"
)

//go:embed web/*.html
var templateFS embed.FS

// loadTemplates parses the embedded page templates. Panics on a bad embed,
// which can only happen at build time.
func loadTemplates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "web/*.html"))
}
