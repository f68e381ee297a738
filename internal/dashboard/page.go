package dashboard

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/index.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// WritePage renders the dashboard page for v.
func WritePage(w io.Writer, v View) error {
	return pageTemplate.Execute(w, v)
}
