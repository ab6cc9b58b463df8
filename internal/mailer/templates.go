package mailer

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

//go:embed templates/*
var templateFS embed.FS

// Render executes the named template set (name_subject.txt, name.html,
// name.txt) with data.
func Render(name string, data any) (subject, html, text string, err error) {
	if subject, err = renderText(name+"_subject.txt", data); err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	if html, err = renderHTML(name+".html", data); err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	if text, err = renderText(name+".txt", data); err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	return strings.TrimSpace(subject), html, text, nil
}

func renderHTML(file string, data any) (string, error) {
	t, err := htmltemplate.ParseFS(templateFS, "templates/"+file)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderText(file string, data any) (string, error) {
	t, err := texttemplate.ParseFS(templateFS, "templates/"+file)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
