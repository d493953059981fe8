package htmlview

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"BatiDetect/internal/entity"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer turns a View into a full HTML document.
type Renderer struct {
	tmpl     *template.Template
	markdown goldmark.Markdown
}

type errorPage struct {
	Title   string
	Status  int
	Message string
	TraceID string
}

func New() (*Renderer, error) {
	r := &Renderer{
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}

	tmpl, err := template.New("htmlview").Funcs(template.FuncMap{
		"markdown": r.renderMarkdown,
		"number":   formatNumber,
		"hasMap":   hasMap,
	}).Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	if _, err := tmpl.New("error").Parse(errorTemplate); err != nil {
		return nil, fmt.Errorf("failed to parse error template: %w", err)
	}

	r.tmpl = tmpl
	return r, nil
}

func (r *Renderer) Render(w io.Writer, view *entity.View) error {
	return r.tmpl.ExecuteTemplate(w, "page", view)
}

func (r *Renderer) RenderError(w io.Writer, title string, status int, message, traceID string) error {
	return r.tmpl.ExecuteTemplate(w, "error", errorPage{
		Title:   title,
		Status:  status,
		Message: message,
		TraceID: traceID,
	})
}

func (r *Renderer) renderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func formatNumber(format string, v float64) string {
	if format == "" {
		format = "%g"
	}
	return fmt.Sprintf(format, v)
}

func hasMap(blocks []entity.Block) bool {
	for _, b := range blocks {
		if b.Kind == entity.BlockMap {
			return true
		}
		for _, col := range b.Columns {
			if hasMap(col) {
				return true
			}
		}
	}
	return false
}
