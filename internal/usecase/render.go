package usecase

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"
	"time"

	"careerbuddy/internal/domain"
)

// TemplateSet holds the parsed HTML document layouts, one file per document
// type. The premium template choice selects a stylesheet variant inside the
// layout rather than a separate file.
type TemplateSet struct {
	tmpl *template.Template
}

func NewTemplateSet(dir string) (*TemplateSet, error) {
	tmpl, err := template.New("documents").Funcs(template.FuncMap{
		"join": strings.Join,
		"paragraphs": func(s string) []string {
			var out []string
			for _, p := range strings.Split(s, "\n") {
				if strings.TrimSpace(p) != "" {
					out = append(out, p)
				}
			}
			return out
		},
	}).ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &TemplateSet{tmpl: tmpl}, nil
}

type templateData struct {
	Answers     *domain.Answers
	Style       string
	DocumentFor string
	GeneratedAt string
}

func layoutFor(dt domain.DocumentType) string {
	switch dt {
	case domain.DocCover:
		return "cover.html"
	case domain.DocRevamp:
		return "revamp.html"
	case domain.DocCV:
		return "cv.html"
	default:
		return "resume.html"
	}
}

// Build renders the job's answers into the final HTML handed to the PDF
// renderer.
func (s *TemplateSet) Build(job *domain.Job) (string, error) {
	style := job.Answers.Template
	if style == "" {
		style = "classic"
	}
	data := templateData{
		Answers:     job.Answers,
		Style:       style,
		DocumentFor: job.Type.DisplayName(),
		GeneratedAt: time.Now().Format("January 2006"),
	}
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, layoutFor(job.Type), data); err != nil {
		return "", fmt.Errorf("execute %s: %w", layoutFor(job.Type), err)
	}
	return buf.String(), nil
}
