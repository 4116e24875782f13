package renderer

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// md converts the reports, tables are a GitHub flavored markdown extension.
var md = goldmark.New(goldmark.WithExtensions(extension.Table))

// HTML converts a markdown report to an HTML fragment, for the UI cards.
func HTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
