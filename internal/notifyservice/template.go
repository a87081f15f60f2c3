package notifyservice

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*
var templateFS embed.FS

func NewTemplate() *Template {
	return &Template{}
}

// ParseTemplate renders the subject, plainBody and htmlBody blocks of the named template with data.
func (tp *Template) ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error) {
	t, err := template.New("email").ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not parse template: %w", err)
	}

	var bufs [3]*bytes.Buffer
	for i, block := range []string{"subject", "plainBody", "htmlBody"} {
		bufs[i] = new(bytes.Buffer)
		if err := t.ExecuteTemplate(bufs[i], block, data); err != nil {
			return nil, nil, nil, fmt.Errorf("could not render %s: %w", block, err)
		}
	}

	return bufs[0], bufs[1], bufs[2], nil
}
