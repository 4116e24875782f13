// Package renderer turns answers into markdown reports and spoken sentences.
//
// Markdown is produced from text/template files embedded in the binary, spoken sentences are
// built in Go. Both are computed from the same view models, see TradeList and Gains.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templates embed.FS

// partials shared by all reports.
var partials = map[string]string{
	"title": "templates/title.md",
}

// RenderTrades renders a list of trades to markdown.
func RenderTrades(l *TradeList) string {
	return renderTemplate("trades", "templates/trades.md", partials, l)
}

// RenderGains renders a realized gains report to markdown.
func RenderGains(g *Gains) string {
	return renderTemplate("gains", "templates/gains.md", partials, g)
}

// RenderClarification renders the answer given when the time period is not understood.
func RenderClarification(c *Clarification) string {
	return renderTemplate("clarification", "templates/clarification.md", nil, c)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
