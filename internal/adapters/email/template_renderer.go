package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"networkingbude/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

var reportFuncs = map[string]any{
	"date": func(t *time.Time) string {
		if t == nil {
			return "no date"
		}
		return t.Format("Mon Jan 2, 15:04")
	},
	"stamp": func(t time.Time) string { return t.Format(time.RFC1123) },
}

// templateRenderer holds the report templates parsed once from templates/.
// Each message is three files: <name>_subject.txt, <name>.html and <name>.txt.
type templateRenderer struct {
	html *template.Template
	text *texttemplate.Template
}

// NewTemplateRenderer parses the embedded report templates.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{
		html: template.Must(template.New("").Funcs(template.FuncMap(reportFuncs)).ParseFS(templateFS, "templates/*.html")),
		text: texttemplate.Must(texttemplate.New("").Funcs(texttemplate.FuncMap(reportFuncs)).ParseFS(templateFS, "templates/*.txt")),
	}
}

func (r *templateRenderer) Render(name string, data any) (subject, htmlBody, textBody string, err error) {
	if subject, err = r.renderText(name+"_subject.txt", data); err != nil {
		return "", "", "", fmt.Errorf("render %s subject: %w", name, err)
	}
	if htmlBody, err = r.renderHTML(name+".html", data); err != nil {
		return "", "", "", fmt.Errorf("render %s html: %w", name, err)
	}
	if textBody, err = r.renderText(name+".txt", data); err != nil {
		return "", "", "", fmt.Errorf("render %s text: %w", name, err)
	}
	return strings.TrimSpace(subject), htmlBody, textBody, nil
}

func (r *templateRenderer) renderHTML(file string, data any) (string, error) {
	t := r.html.Lookup(file)
	if t == nil {
		return "", fmt.Errorf("no template %s", file)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *templateRenderer) renderText(file string, data any) (string, error) {
	t := r.text.Lookup(file)
	if t == nil {
		return "", fmt.Errorf("no template %s", file)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
