package template

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

type Engine struct {
	tmpl *template.Template
}

func NewEngine() (*Engine, error) {
	tmpl, err := template.New("").Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		ParseFS(templateFiles, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %v", err)
	}
	return &Engine{tmpl: tmpl}, nil
}

// Names returns the names of all embedded templates.
func (e *Engine) Names() ([]string, error) {
	entries, err := fs.ReadDir(templateFiles, "templates")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

func (e *Engine) Evaluate(templateName string, data any) (string, error) {
	var sb strings.Builder
	if err := e.tmpl.ExecuteTemplate(&sb, templateName, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
