package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

type renderer struct {
	templates *template.Template
}

func newRenderer() *renderer {
	t := template.New("").Funcs(template.FuncMap{
		"grade":   formatGrade,
		"percent": formatPercent,
		"days":    formatDays,
	})
	return &renderer{
		templates: template.Must(t.ParseFS(templateFS, "templates/*.html")),
	}
}

func (r *renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

func formatGrade(g *float64) string {
	if g == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *g)
}

func formatPercent(fraction float64) string {
	return fmt.Sprintf("%.0f%%", fraction*100)
}

func formatDays(d *float64) string {
	if d == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f d", *d)
}
