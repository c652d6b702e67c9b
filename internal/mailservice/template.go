package mailservice

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sync"
)

//go:embed templates/*
var templateFS embed.FS

// Template parses email templates from the embedded filesystem, caching
// each parsed template after the first use.
type Template struct {
	mu    sync.Mutex
	cache map[string]*template.Template
}

func NewTemplate() *Template {
	return &Template{cache: make(map[string]*template.Template)}
}

// ParseTemplate renders the subject, plainBody, and htmlBody sections of
// the named template with the given data.
func (tp *Template) ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error) {
	t, err := tp.lookup(name)
	if err != nil {
		return nil, nil, nil, err
	}

	var subject, plainBody, htmlBody bytes.Buffer

	if err := t.ExecuteTemplate(&subject, "subject", data); err != nil {
		return nil, nil, nil, err
	}
	if err := t.ExecuteTemplate(&plainBody, "plainBody", data); err != nil {
		return nil, nil, nil, err
	}
	if err := t.ExecuteTemplate(&htmlBody, "htmlBody", data); err != nil {
		return nil, nil, nil, err
	}

	return &subject, &plainBody, &htmlBody, nil
}

func (tp *Template) lookup(name string) (*template.Template, error) {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	if t, ok := tp.cache[name]; ok {
		return t, nil
	}

	t, err := template.New("email").ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("could not parse template: %w", err)
	}

	tp.cache[name] = t

	return t, nil
}
